package draftsim_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/chemdraft/internal/adapters/http/api"
	"github.com/okian/chemdraft/internal/adapters/refdata"
	service "github.com/okian/chemdraft/internal/app"
	"github.com/okian/chemdraft/internal/domain/model"
	"github.com/okian/chemdraft/internal/draftsim"
	"github.com/okian/chemdraft/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func tables() *refdata.Tables {
	names := []string{"Mario", "Luigi", "Peach", "Daisy", "Yoshi", "Wario", "Waluigi"}
	t := &refdata.Tables{
		Affinity: []model.AffinityRecord{
			{Name: "Mario", Chemistry: []string{"Luigi", "Peach"}, Hate: []string{"Wario"}},
			{Name: "Luigi", Chemistry: []string{"Mario", "Daisy"}},
			{Name: "Peach", Chemistry: []string{"Mario", "Daisy"}},
			{Name: "Daisy", Chemistry: []string{"Peach", "Luigi"}},
			{Name: "Wario", Chemistry: []string{"Waluigi"}, Hate: []string{"Mario"}},
			{Name: "Waluigi", Chemistry: []string{"Wario"}},
		},
	}
	for i, n := range names {
		t.Attributes = append(t.Attributes, model.AttributeRecord{
			Name: n, ChargeHitPower: float64(40 + 5*i), SlapHitPower: float64(70 - 3*i),
			Speed: float64(50 + 2*i), PitchingStamina: float64(60 + i),
		})
	}
	t.Seasons = []model.SeasonRecord{
		{Name: "Mario", SluggingPercentage: 0.6, HomeRuns: 12},
		{Name: "Wario", SluggingPercentage: 0.55, HomeRuns: 15},
	}
	return t
}

func newServer() (*httptest.Server, *service.Service) {
	svc := service.New(service.WithReferenceData(tables()), service.WithTeams([]string{"Red", "Blue"}))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux), svc
}

func TestSnakeOrder(t *testing.T) {
	Convey("Given three teams", t, func() {
		teams := []string{"A", "B", "C"}

		Convey("Then odd rounds keep the order and even rounds reverse it", func() {
			So(draftsim.SnakeOrder(teams, 1), ShouldResemble, []string{"A", "B", "C"})
			So(draftsim.SnakeOrder(teams, 2), ShouldResemble, []string{"C", "B", "A"})
			So(draftsim.SnakeOrder(teams, 3), ShouldResemble, []string{"A", "B", "C"})
			So(teams, ShouldResemble, []string{"A", "B", "C"})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running server", t, func() {
		srv, svc := newServer()
		defer srv.Close()
		defer svc.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cfg := draftsim.NewConfig()
		cfg.BaseURL = srv.URL
		cfg.RPS = 10_000
		cfg.Burst = 100

		Convey("When several full drafts run concurrently", func() {
			cfg.Sessions = 3
			cfg.Workers = 2
			cfg.Teams = []string{"A", "B", "C"}
			stats, err := draftsim.Run(ctx, cfg)

			Convey("Then every draft empties the pool and verifies", func() {
				So(err, ShouldBeNil)
				So(stats.Completed, ShouldEqual, 3)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Picks, ShouldEqual, 21)
				So(stats.Duplicates, ShouldEqual, 21)
			})

			Convey("Then the sessions were deleted", func() {
				So(svc.GetStats()["sessions"], ShouldEqual, 0)
			})
		})

		Convey("When the rounds are limited and sessions kept", func() {
			cfg.Rounds = 2
			cfg.Keep = true
			cfg.Replay = false
			stats, err := draftsim.Run(ctx, cfg)

			Convey("Then each configured team picks twice", func() {
				So(err, ShouldBeNil)
				So(stats.Picks, ShouldEqual, 4)
				So(stats.Duplicates, ShouldEqual, 0)
				So(svc.GetStats()["sessions"], ShouldEqual, 1)
			})
		})

		Convey("When the explicit teams are invalid", func() {
			cfg.Teams = []string{"A", "A"}
			_, err := draftsim.Run(ctx, cfg)

			Convey("Then the run fails", func() {
				So(errors.Is(err, draftsim.ErrSimulationFailed), ShouldBeTrue)
			})
		})
	})

	Convey("Given an invalid configuration", t, func() {
		cfg := draftsim.NewConfig()
		cfg.Workers = 0

		Convey("Then Run rejects it before any request", func() {
			_, err := draftsim.Run(context.Background(), cfg)
			So(errors.Is(err, draftsim.ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given a server that is down", t, func() {
		srv, svc := newServer()
		svc.Stop()
		srv.Close()
		cfg := draftsim.NewConfig()
		cfg.BaseURL = srv.URL
		cfg.Timeout = time.Second

		Convey("Then the health check fails", func() {
			_, err := draftsim.Run(context.Background(), cfg)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given a client", t, func() {
		srv, svc := newServer()
		defer srv.Close()
		defer svc.Stop()
		ctx := context.Background()
		c := draftsim.NewClient(srv.URL, time.Second, 1_000, 10)

		Convey("When a session is created", func() {
			sess, err := c.CreateSession(ctx, nil)
			So(err, ShouldBeNil)

			Convey("Then a pick on an unknown character fails with the server's code", func() {
				_, err := c.Pick(ctx, sess.ID, draftsim.PickRequest{Team: "Red", Character: "Boo"})
				So(errors.Is(err, draftsim.ErrUnexpectedStatus), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "invalid_pick")
			})

			Convey("Then the data quality report is readable", func() {
				q, err := c.DataQuality(ctx)
				So(err, ShouldBeNil)
				So(q.Universe, ShouldEqual, 7)
				So(q.MissingAffinity, ShouldResemble, []string{"Yoshi"})
			})
		})

		Convey("When the session does not exist", func() {
			_, err := c.Session(ctx, "missing")

			Convey("Then the status is reported", func() {
				So(errors.Is(err, draftsim.ErrUnexpectedStatus), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "404")
			})
		})
	})
}
