package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/okian/marketnames/internal/adapters/http/api"
	"github.com/okian/marketnames/internal/adapters/profile"
	"github.com/okian/marketnames/internal/adapters/sportsapi"
	"github.com/okian/marketnames/internal/config"
	"github.com/okian/marketnames/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestWiring(t *testing.T) {
	convey.Convey("Given configuration from the environment", t, func() {
		_ = os.Setenv("MARKETNAMES_ADDR", ":8088")
		_ = os.Setenv("MARKETNAMES_LANGUAGES", "en,de")
		_ = os.Setenv("MARKETNAMES_WORKER_COUNT", "2")
		defer func() {
			_ = os.Unsetenv("MARKETNAMES_ADDR")
			_ = os.Unsetenv("MARKETNAMES_LANGUAGES")
			_ = os.Unsetenv("MARKETNAMES_WORKER_COUNT")
		}()

		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)
		log := logger.Nop()

		convey.Convey("When no sports API is configured", func() {
			f := newFetcher(cfg, log)

			convey.Convey("Then the demo profiles are served", func() {
				_, ok := f.(*profile.StaticFetcher)
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a sports API URL is configured", func() {
			cfg.SportsAPIURL = "https://api.example.test/v1"
			f := newFetcher(cfg, log)

			convey.Convey("Then the HTTP client is used", func() {
				_, ok := f.(*sportsapi.Client)
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the service is built and served", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			svc, err := newService(cfg, log)
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop(ctx)

			srv := newHTTPServer(cfg.Addr, newMux(api.NewServer(svc, svc, api.WithDefaultLanguage(svc.DefaultLanguage()))))
			ts := httptest.NewServer(srv.Handler)
			defer ts.Close()

			convey.Convey("Then names are rendered over HTTP", func() {
				convey.So(srv.Addr, convey.ShouldEqual, ":8088")
				resp, err := http.Get(ts.URL + "/names/outcome?event_id=sr:match:1&market_id=1&outcome_id=3&lang=de")
				convey.So(err, convey.ShouldBeNil)
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

				buf := new(strings.Builder)
				_, _ = io.Copy(buf, resp.Body)
				convey.So(buf.String(), convey.ShouldContainSubstring, "Mannschaft B")
			})

			convey.Convey("And the API docs are served", func() {
				resp, err := http.Get(ts.URL + "/openapi.yaml")
				convey.So(err, convey.ShouldBeNil)
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When the language list is invalid", func() {
			cfg.Languages = "en,??"
			_, err := newService(cfg, log)

			convey.Convey("Then the service is not built", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
