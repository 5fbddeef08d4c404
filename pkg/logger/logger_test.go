package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with an unknown format", func() {
			err := InitWithWriter(&bytes.Buffer{}, "xml")

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log format")
			})
		})
	})
}

func TestLoggerJSONOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, "json"), ShouldBeNil)
		ctx := context.Background()

		Convey("When a named logger writes a record", func() {
			Named("engine").Named("chemistry").Warn(ctx, "missing affinity record",
				String("candidate", "Boo"),
				Strings("team", []string{"Mario"}),
				Bool("known", false),
			)

			Convey("Then the record carries component, fields and source", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "missing affinity record")
				So(rec["component"], ShouldEqual, "engine.chemistry")
				So(rec["candidate"], ShouldEqual, "Boo")
				So(rec["known"], ShouldEqual, false)
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(ctx, "dropped")

			Convey("Then info records are suppressed", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		err := SetLevelString("loud")
		So(err, ShouldNotBeNil)
		So(strings.Contains(err.Error(), "loud"), ShouldBeTrue)
	})
}
