package loadgen

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/marketnames/internal/domain/model"
)

func TestGenerateObservations(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		events := []string{"sr:match:1", "sr:match:2"}
		a := generateObservations(200, events, 7)
		b := generateObservations(200, events, 7)

		Convey("Then the draw is reproducible apart from ids", func() {
			So(a, ShouldHaveLength, 200)
			for i := range a {
				So(a[i].MarketID, ShouldEqual, b[i].MarketID)
				So(a[i].Specifiers, ShouldEqual, b[i].Specifiers)
				So(a[i].ObservationID, ShouldNotEqual, b[i].ObservationID)
			}
		})

		Convey("Then every observation is well formed", func() {
			for _, o := range a {
				So(events, ShouldContain, o.EventID)
				So(o.OutcomeIDs, ShouldNotBeEmpty)
				specs, err := model.ParseSpecifiers(o.Specifiers)
				So(err, ShouldBeNil)
				So(specs.String(), ShouldEqual, o.Specifiers)
			}
		})
	})

	Convey("Given two observations of the same market", t, func() {
		obs := []Observation{
			{EventID: "sr:match:1", MarketID: 18, Specifiers: "total=2.5", OutcomeIDs: []string{"12", "13"}},
			{EventID: "sr:match:1", MarketID: 18, Specifiers: "total=2.5", OutcomeIDs: []string{"12", "13"}},
		}

		Convey("Then expected names are counted once per language", func() {
			want := expectedNames(obs, []string{"en", "de"})
			So(want, ShouldHaveLength, 6)
			_, ok := want[nameKey("sr:match:1", 18, "total=2.5", "13", "de")]
			So(ok, ShouldBeTrue)
			for k := range want {
				So(strings.HasPrefix(k, "sr:match:1#18#"), ShouldBeTrue)
			}
		})
	})
}
