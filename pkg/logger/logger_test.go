package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)
		defer func() { _ = Sync() }()

		Convey("When logging at info", func() {
			Get().Info(context.Background(), "market rendered", String("name", "1x2"), Lang(language.German))

			Convey("Then the entry carries message and fields", func() {
				So(buf.String(), ShouldContainSubstring, "market rendered")
				So(buf.String(), ShouldContainSubstring, "name=1x2")
				So(buf.String(), ShouldContainSubstring, "lang=de")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			defer func() { _ = SetLevelString("info") }()
			Get().Warn(context.Background(), "dropped")

			Convey("Then lower levels are filtered", func() {
				So(buf.String(), ShouldNotContainSubstring, "dropped")
			})
		})

		Convey("When the level string is unknown", func() {
			err := SetLevelString("verbose")

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When using a named logger", func() {
			Named("worker").Error(context.Background(), "render failed", Error(errors.New("boom")))

			Convey("Then the group prefixes the fields", func() {
				So(buf.String(), ShouldContainSubstring, "worker.error=boom")
			})
		})
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a JSON logger with source locations", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithJSON(), WithSource()), ShouldBeNil)

		Get().Info(context.Background(), "hello", Int("marketID", 18))

		Convey("Then each entry is a JSON object with the caller", func() {
			var entry map[string]any
			So(json.Unmarshal(buf.Bytes(), &entry), ShouldBeNil)
			So(entry["msg"], ShouldEqual, "hello")
			So(entry["marketID"], ShouldEqual, float64(18))
			So(entry["source"], ShouldContainSubstring, "logger_test.go")
		})
	})
}

func TestNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		l := Nop()

		Convey("Then every method is safe to call", func() {
			So(func() {
				l.Error(context.Background(), "x")
				l.Named("a").Debug(nil, "y") //nolint:staticcheck // nil ctx is tolerated
			}, ShouldNotPanic)
		})
	})
}
