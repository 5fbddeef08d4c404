package normalize_test

import (
	"testing"

	"github.com/okian/chemdraft/internal/domain/model"
	"github.com/okian/chemdraft/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBatch(t *testing.T) {
	Convey("Given a batch of metric vectors", t, func() {
		in := []model.MetricVector{
			{ChemScore: -1, Slugging: 0.4, Speed: 50, HomeRuns: 3},
			{ChemScore: 2, Slugging: 0.6, Speed: 50, HomeRuns: 0},
			{ChemScore: 0.5, Slugging: 0.5, Speed: 50, HomeRuns: 9},
		}
		out := normalize.Batch(in)

		Convey("Then every scaled value lies in [0,1]", func() {
			So(out, ShouldHaveLength, 3)
			for i := range out {
				for _, m := range model.Metrics {
					v := *m.Ref(&out[i])
					So(v, ShouldBeBetweenOrEqual, 0, 1)
				}
			}
		})

		Convey("Then the extremes map to 0 and 1", func() {
			So(out[0].ChemScore, ShouldEqual, 0)
			So(out[1].ChemScore, ShouldEqual, 1)
			So(out[2].ChemScore, ShouldEqual, 0.5)
			So(out[2].HomeRuns, ShouldEqual, 1)
			So(out[0].HomeRuns, ShouldEqual, 0.33)
		})

		Convey("Then a field with a single value scales to 0", func() {
			for i := range out {
				So(out[i].Speed, ShouldEqual, 0)
				So(out[i].PitchingStamina, ShouldEqual, 0)
			}
		})

		Convey("Then the input is left untouched", func() {
			So(in[0].Speed, ShouldEqual, 50)
		})
	})

	Convey("Given a single candidate", t, func() {
		out := normalize.Batch([]model.MetricVector{{ChemScore: 3, Speed: 70}})

		Convey("Then every scaled metric is 0", func() {
			So(out[0], ShouldResemble, model.MetricVector{})
		})
	})

	Convey("Given an empty batch", t, func() {
		Convey("Then the result is empty", func() {
			So(normalize.Batch(nil), ShouldBeEmpty)
		})
	})
}
