package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/chemdraft/internal/adapters/repository"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrors(t *testing.T) {
	Convey("Given tagged errors", t, func() {
		Convey("Then WrapKind matches both kind and cause", func() {
			err := WrapKind("api.op", ErrBadRequest, io.EOF)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, io.EOF), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: EOF")
		})

		Convey("Then wrapping nil yields nil", func() {
			So(Wrap("api.op", nil), ShouldBeNil)
			So(WrapKind("api.op", ErrBadRequest, nil), ShouldBeNil)
		})
	})
}

func TestWriteDomainError(t *testing.T) {
	Convey("Given errors raised while handling a request", t, func() {
		write := func(err error) (int, errorResponse) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, "api.op", err)
			var body errorResponse
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			return rec.Code, body
		}

		Convey("When a helper already tagged a bad request", func() {
			r := httptest.NewRequest(http.MethodGet, "/x?limit=-2", nil)
			_, err := queryLimit(r, "api.op", "limit")
			status, body := write(err)

			Convey("Then the operation appears once", func() {
				So(status, ShouldEqual, http.StatusBadRequest)
				So(body.Code, ShouldEqual, "bad_request")
				So(strings.Count(body.Message, "api.op"), ShouldEqual, 1)
				So(body.Message, ShouldEqual, `api.op: bad request: limit must be a non-negative integer, got "-2"`)
			})
		})

		Convey("When a store error reaches the handler", func() {
			status, body := write(fmt.Errorf("%w: %q", repository.ErrUnknownTeam, "Green"))

			Convey("Then it is tagged with the operation", func() {
				So(status, ShouldEqual, http.StatusNotFound)
				So(body.Message, ShouldEqual, `api.op: unknown team: "Green"`)
			})
		})

		Convey("When picks break the draft rules", func() {
			cases := map[error]string{
				repository.ErrInvalidPick:     "invalid_pick",
				repository.ErrPickIDConflict:  "pick_id_conflict",
				repository.ErrCaptainRequired: "captain_rule",
				repository.ErrSecondCaptain:   "captain_rule",
			}

			Convey("Then each answers 409 with its own code", func() {
				for err, code := range cases {
					status, body := write(err)
					So(status, ShouldEqual, http.StatusConflict)
					So(body.Code, ShouldEqual, code)
				}
			})
		})
	})
}

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(429), ShouldEqual, "rate_limit")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(409), ShouldEqual, "conflict")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorSeverity(503), ShouldEqual, "high")
		So(getErrorSeverity(404), ShouldEqual, "medium")
		So(getErrorSeverity(200), ShouldEqual, "low")
	})
}
