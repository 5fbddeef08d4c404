package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// gatheredValue returns the value of the first sample of family name whose
// labels include want. Counters, gauges and histogram sample counts are supported.
func gatheredValue(reg *prometheus.Registry, name string, want map[string]string) (float64, bool) {
	families, err := reg.Gather()
	if err != nil {
		return 0, false
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue next
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue(), true
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue(), true
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount()), true
			}
		}
	}
	return 0, false
}

func TestNewManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(reg),
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithHistogramBuckets([]float64{1, 2, 3}),
			WithConstLabels(map[string]string{"env": "test"}),
		)
		So(m, ShouldNotBeNil)

		Convey("When a counter is incremented directly", func() {
			m.picksAccepted.Inc()

			Convey("Then it is exported with the namespace, subsystem and const labels", func() {
				v, ok := gatheredValue(reg, "test_unit_picks_accepted_total", map[string]string{"env": "test"})
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1)
			})
		})

		Convey("When a second manager registers on the same registry", func() {
			Convey("Then registration panics on the duplicate collectors", func() {
				So(func() { NewManager(WithPrometheusRegistry(reg), WithNamespace("test"), WithSubsystem("unit")) }, ShouldPanic)
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global registry", t, func() {
		reg := GetRegistry()

		Convey("When picks are recorded", func() {
			before, _ := gatheredValue(reg, "chemdraft_draft_picks_rejected_total", map[string]string{"reason": "invalid_pick"})
			RecordPickRejected("invalid_pick")
			RecordPickRejected("invalid_pick")

			Convey("Then the labelled counter grows", func() {
				after, ok := gatheredValue(reg, "chemdraft_draft_picks_rejected_total", map[string]string{"reason": "invalid_pick"})
				So(ok, ShouldBeTrue)
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When a recommendation is recorded", func() {
			before, _ := gatheredValue(reg, "chemdraft_draft_recommendations_total", nil)
			RecordRecommendation(1.5, 12)

			Convey("Then the counter and both histograms observe it", func() {
				after, _ := gatheredValue(reg, "chemdraft_draft_recommendations_total", nil)
				So(after-before, ShouldEqual, 1)
				n, ok := gatheredValue(reg, "chemdraft_draft_candidates_ranked", nil)
				So(ok, ShouldBeTrue)
				So(n, ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When gauges are set", func() {
			UpdateSessionsActive(3)
			UpdateReferenceRows("affinity", 54)

			Convey("Then they hold the last value", func() {
				v, _ := gatheredValue(reg, "chemdraft_draft_sessions_active", nil)
				So(v, ShouldEqual, 3)
				v, _ = gatheredValue(reg, "chemdraft_draft_reference_rows", map[string]string{"table": "affinity"})
				So(v, ShouldEqual, 54)
			})
		})

		Convey("Then the remaining helpers do not panic", func() {
			So(func() {
				RecordMissingData("seasons")
				RecordSessionCreated()
				RecordPickAccepted()
				RecordPickDuplicate()
				RecordHTTPRequest("picks", "POST", "201")
				RecordHTTPRequestDuration("picks", "POST", "201", 0.4)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("picks", "POST", "client_error")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})
	})
}
