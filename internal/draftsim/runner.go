package draftsim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/chemdraft/internal/domain/types"
	"github.com/okian/chemdraft/pkg/logger"
)

// Stats summarises a simulation run.
type Stats struct {
	Sessions        int64
	Completed       int64
	Failed          int64
	Picks           int64
	Duplicates      int64
	Recommendations int64
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}

// Result describes one finished draft.
type Result struct {
	SessionID string
	Teams     []string
	Rosters   map[string][]string
	Picks     int
}

// Run checks the service, then drafts cfg.Sessions sessions with cfg.Workers
// concurrent workers. Every team takes the top recommendation on its turn in
// snake order, except that a team without a captain takes one on its last
// turn. Run fails with ErrSimulationFailed when any draft fails.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := logger.Named("draftsim")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting draft simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("sessions", cfg.Sessions),
		logger.Int("workers", cfg.Workers),
		logger.Int("rounds", cfg.Rounds),
		logger.Float64("rps", cfg.RPS))

	client := NewClient(cfg.BaseURL, cfg.Timeout, cfg.RPS, cfg.Burst)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				atomic.AddInt64(&stats.Sessions, 1)
				res, err := simulate(ctx, client, cfg, stats)
				if err != nil {
					atomic.AddInt64(&stats.Failed, 1)
					log.Error(ctx, "draft failed", logger.Int("draft", n), logger.Error(err))
					continue
				}
				atomic.AddInt64(&stats.Completed, 1)
				log.Info(ctx, "draft completed",
					logger.Int("draft", n),
					logger.String("session", res.SessionID),
					logger.Int("picks", res.Picks))
			}
		}()
	}

	go func() {
		defer close(jobs)
		for n := 1; n <= cfg.Sessions; n++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- n:
			}
		}
	}()
	wg.Wait()

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "simulation finished",
		logger.Int64("sessions", stats.Sessions),
		logger.Int64("completed", stats.Completed),
		logger.Int64("failed", stats.Failed),
		logger.Int64("picks", stats.Picks),
		logger.Int64("duplicates", stats.Duplicates),
		logger.String("duration", stats.Duration.String()))

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d drafts failed", ErrSimulationFailed, stats.Failed, stats.Sessions)
	}
	return stats, nil
}

// simulate runs one draft end to end and verifies the final session.
func simulate(ctx context.Context, c *Client, cfg *Config, stats *Stats) (Result, error) {
	sess, err := c.CreateSession(ctx, cfg.Teams)
	if err != nil {
		return Result{}, err
	}
	universe := append([]string(nil), sess.Pool...)

	rounds := cfg.Rounds
	if rounds == 0 {
		rounds = (len(universe) + len(sess.Teams) - 1) / len(sess.Teams)
	}

	picks := 0
draft:
	for round := 1; round <= rounds; round++ {
		for _, team := range SnakeOrder(sess.Teams, round) {
			choice, ok, err := choose(ctx, c, sess.ID, team, round == rounds, len(universe))
			if err != nil {
				return Result{}, err
			}
			atomic.AddInt64(&stats.Recommendations, 1)
			if !ok {
				break draft
			}

			req := PickRequest{Team: team, Character: choice.Candidate, PickID: uuid.NewString()}
			if _, err := c.Pick(ctx, sess.ID, req); err != nil {
				return Result{}, err
			}
			picks++
			atomic.AddInt64(&stats.Picks, 1)
			if cfg.Verbose {
				logger.Get().Info(ctx, "pick",
					logger.String("session", sess.ID),
					logger.Int("round", round),
					logger.String("team", team),
					logger.String("character", req.Character),
					logger.Bool("captain", choice.Annotation.Captain),
					logger.Float64("score", choice.TotalScore))
			}

			if cfg.Replay {
				again, err := c.Pick(ctx, sess.ID, req)
				if err != nil {
					return Result{}, err
				}
				if !again.Duplicate() {
					return Result{}, fmt.Errorf("%w: replayed pick %s was applied twice", ErrVerification, req.PickID)
				}
				atomic.AddInt64(&stats.Duplicates, 1)
			}
		}
	}

	final, err := c.Session(ctx, sess.ID)
	if err != nil {
		return Result{}, err
	}
	board, err := c.Board(ctx, sess.ID)
	if err != nil {
		return Result{}, err
	}
	if err := verifySession(final, board, universe, picks); err != nil {
		return Result{}, err
	}

	if !cfg.Keep {
		if err := c.DeleteSession(ctx, sess.ID); err != nil && !errors.Is(err, context.Canceled) {
			return Result{}, err
		}
	}
	return Result{SessionID: final.ID, Teams: final.Teams, Rosters: final.Rosters, Picks: picks}, nil
}

// choose returns the top recommendation for team. On its last turn a team
// still without a captain takes the best captain left, so no team finishes
// the draft holding a captain slot that another team needs.
func choose(ctx context.Context, c *Client, id, team string, lastTurn bool, poolSize int) (types.AnnotatedRecommendation, bool, error) {
	recs, err := c.Recommend(ctx, id, team, 1)
	if err != nil || len(recs.Recommendations) == 0 {
		return types.AnnotatedRecommendation{}, false, err
	}
	top := recs.Recommendations[0]
	if !lastTurn || recs.HasCaptain || top.Annotation.Captain {
		return top, true, nil
	}

	all, err := c.Recommend(ctx, id, team, poolSize)
	if err != nil {
		return types.AnnotatedRecommendation{}, false, err
	}
	for _, r := range all.Recommendations {
		if r.Annotation.Captain {
			return r, true, nil
		}
	}
	return top, true, nil
}

// SnakeOrder returns the pick order of round (1-based): odd rounds follow
// teams, even rounds reverse them.
func SnakeOrder(teams []string, round int) []string {
	out := append([]string(nil), teams...)
	if round%2 == 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
