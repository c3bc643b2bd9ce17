package loadgen_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/adapters/http/api"
	service "github.com/okian/marketnames/internal/app"
	"github.com/okian/marketnames/internal/loadgen"
	"github.com/okian/marketnames/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running service over the demo profiles", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc := service.New(service.WithWorkerCount(4), service.WithLanguages(language.English, language.German))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop(ctx)
		ts := httptest.NewServer(api.NewServer(svc, svc).Handler())
		defer ts.Close()

		Convey("When a load run posts observations", func() {
			stats, err := loadgen.Run(ctx, &loadgen.Config{
				BaseURL:       ts.URL,
				Observations:  100,
				EventIDs:      []string{"sr:match:1"},
				Languages:     []string{"en", "de"},
				Workers:       4,
				Timeout:       5 * time.Second,
				SettleTimeout: 10 * time.Second,
				Seed:          42,
			})

			Convey("Then every observation is accepted and every name stored", func() {
				So(err, ShouldBeNil)
				So(stats.ObservationsAccepted, ShouldEqual, 100)
				So(stats.ObservationsFailed, ShouldEqual, 0)
				So(stats.NamesMissing, ShouldEqual, 0)
				So(stats.NamesStored, ShouldEqual, stats.NamesExpected)
			})
		})

		Convey("When the run expects a language the service does not render", func() {
			stats, err := loadgen.Run(ctx, &loadgen.Config{
				BaseURL:       ts.URL,
				Observations:  5,
				EventIDs:      []string{"sr:match:1"},
				Languages:     []string{"fr"},
				Workers:       1,
				Timeout:       5 * time.Second,
				SettleTimeout: 500 * time.Millisecond,
				Seed:          1,
			})

			Convey("Then the missing names are reported", func() {
				So(errors.Is(err, loadgen.ErrNamesMissing), ShouldBeTrue)
				So(stats.NamesMissing, ShouldEqual, stats.NamesExpected)
			})
		})
	})
}
