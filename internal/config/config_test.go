package config_test

import (
	"testing"

	"github.com/okian/chemdraft/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Teams, convey.ShouldHaveLength, 8)
			convey.So(cfg.Captains, convey.ShouldHaveLength, 12)
			convey.So(cfg.Captains, convey.ShouldContain, "Bowser Jr")
			convey.So(cfg.DefaultLimit, convey.ShouldEqual, 5)
			convey.So(cfg.OutfieldLimit, convey.ShouldEqual, 10)
			convey.So(cfg.OutfieldMinSpeed, convey.ShouldEqual, 50)
			convey.So(cfg.ChemK, convey.ShouldEqual, 0.9)
			convey.So(cfg.ChemX0, convey.ShouldEqual, 4.5)
			convey.So(cfg.ChemNegativeWeight, convey.ShouldEqual, 0.5)
			convey.So(cfg.FallbackFactor, convey.ShouldEqual, 0.25)
		})

		convey.Convey("Then every call returns an independent copy", func() {
			other := config.New()
			other.Teams[0] = "changed"
			other.Captains[0] = "changed"
			convey.So(cfg.Teams[0], convey.ShouldEqual, "BenR")
			convey.So(cfg.Captains[0], convey.ShouldEqual, "Mario")
		})
	})
}
