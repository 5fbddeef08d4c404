package draftsim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/chemdraft/internal/adapters/refdata"
	"github.com/okian/chemdraft/internal/adapters/repository"
	"github.com/okian/chemdraft/internal/domain/types"
)

// PickRequest is the body of a pick.
type PickRequest struct {
	Team      string `json:"team"`
	Character string `json:"character"`
	PickID    string `json:"pick_id,omitempty"`
}

// PickResponse is the answer to a pick.
type PickResponse struct {
	Status string           `json:"status"`
	Pick   *repository.Pick `json:"pick,omitempty"`
}

// Duplicate reports whether the server treated the pick as a replay.
func (p PickResponse) Duplicate() bool { return p.Status == "duplicate" }

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client calls the chemdraft HTTP API. All requests share one rate limiter.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for baseURL issuing at most rps requests per second.
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int) *Client {
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK)
}

// CreateSession starts a draft. Empty teams use the server's configured teams.
func (c *Client) CreateSession(ctx context.Context, teams []string) (repository.Session, error) {
	var body any
	if len(teams) > 0 {
		body = map[string][]string{"teams": teams}
	}
	var sess repository.Session
	err := c.do(ctx, http.MethodPost, "/sessions", body, &sess, http.StatusCreated)
	return sess, err
}

// Session reads a session.
func (c *Client) Session(ctx context.Context, id string) (repository.Session, error) {
	var sess repository.Session
	err := c.do(ctx, http.MethodGet, "/sessions/"+url.PathEscape(id), nil, &sess, http.StatusOK)
	return sess, err
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// Board reads the round-by-round view of a session.
func (c *Client) Board(ctx context.Context, id string) (types.Board, error) {
	var b types.Board
	err := c.do(ctx, http.MethodGet, "/sessions/"+url.PathEscape(id)+"/board", nil, &b, http.StatusOK)
	return b, err
}

// Pick drafts a character. Both accepted (201) and duplicate (200) answers succeed.
func (c *Client) Pick(ctx context.Context, id string, req PickRequest) (PickResponse, error) {
	var res PickResponse
	err := c.do(ctx, http.MethodPost, "/sessions/"+url.PathEscape(id)+"/picks", req, &res,
		http.StatusCreated, http.StatusOK)
	return res, err
}

// Recommend ranks the pool for team.
func (c *Client) Recommend(ctx context.Context, id, team string, limit int) (types.TeamRecommendations, error) {
	path := "/sessions/" + url.PathEscape(id) + "/teams/" + url.PathEscape(team) +
		"/recommendations?limit=" + strconv.Itoa(limit)
	var res types.TeamRecommendations
	err := c.do(ctx, http.MethodGet, path, nil, &res, http.StatusOK)
	return res, err
}

// DataQuality reads the reference data report.
func (c *Client) DataQuality(ctx context.Context) (refdata.Quality, error) {
	var q refdata.Quality
	err := c.do(ctx, http.MethodGet, "/data/quality", nil, &q, http.StatusOK)
	return q, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, want ...int) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	for _, code := range want {
		if resp.StatusCode != code {
			continue
		}
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
		}
		return nil
	}

	var e errorResponse
	_ = json.Unmarshal(data, &e)
	return fmt.Errorf("%w: %s %s: %d %s: %s", ErrUnexpectedStatus, method, path, resp.StatusCode, e.Code, e.Message)
}
