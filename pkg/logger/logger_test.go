package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { _ = Sync() }()

		Convey("Then Get and Named return usable loggers", func() {
			So(Get(), ShouldNotBeNil)
			named := Named("test")
			So(named, ShouldNotBeNil)
			So(func() { named.Info(context.Background(), "test message", String("k", "v")) }, ShouldNotPanic)
		})
	})
}

func TestLoggerNew(t *testing.T) {
	Convey("Given a buffer-backed logger at info level", t, func() {
		var buf bytes.Buffer
		log := New(&buf, slog.LevelInfo)
		ctx := context.Background()

		Convey("When logging at info with fields", func() {
			log.Named("analyzer").Info(ctx, "identified opportunities",
				Op("identify_opportunities"),
				Strings("segments", []string{"techfinance"}),
			)

			Convey("Then the entry carries the message, group and caller", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "identified opportunities")
				So(out, ShouldContainSubstring, "analyzer.op=identify_opportunities")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging an error field", func() {
			log.Error(ctx, "boom", Error(errors.New("collector down")))

			Convey("Then the error text is rendered", func() {
				So(buf.String(), ShouldContainSubstring, "collector down")
				So(buf.String(), ShouldContainSubstring, "level=ERROR")
			})
		})

		Convey("When logging below the configured level", func() {
			log.Debug(ctx, "hidden")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestLoggerNop(t *testing.T) {
	Convey("Given a nop logger", t, func() {
		log := Nop()

		Convey("Then every level is safe to call", func() {
			ctx := context.Background()
			So(func() {
				log.Debug(ctx, "d")
				log.Info(ctx, "i")
				log.Warn(ctx, "w")
				log.Error(ctx, "e")
				log.Named("x").Info(ctx, "named")
			}, ShouldNotPanic)
		})
	})
}

func TestParseLevel(t *testing.T) {
	Convey("Given level names", t, func() {
		cases := map[string]slog.Level{
			"debug":   slog.LevelDebug,
			"":        slog.LevelInfo,
			"INFO":    slog.LevelInfo,
			"warning": slog.LevelWarn,
			" warn ":  slog.LevelWarn,
			"error":   slog.LevelError,
		}
		for name, want := range cases {
			lvl, err := ParseLevel(name)
			So(err, ShouldBeNil)
			So(lvl, ShouldEqual, want)
		}

		Convey("Then unknown names fail", func() {
			_, err := ParseLevel("verbose")
			So(err, ShouldNotBeNil)
			So(SetLevelString("verbose"), ShouldNotBeNil)
			So(SetLevelString("debug"), ShouldBeNil)
		})
	})
}
