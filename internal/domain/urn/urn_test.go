package urn_test

import (
	"errors"
	"testing"

	"github.com/okian/marketnames/internal/domain/nameerr"
	"github.com/okian/marketnames/internal/domain/urn"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given well-formed identifiers", t, func() {
		Convey("Then they parse into their parts", func() {
			u, err := urn.Parse("sr:player:1234")
			So(err, ShouldBeNil)
			So(u.Prefix, ShouldEqual, "sr")
			So(u.Type, ShouldEqual, urn.TypePlayer)
			So(u.ID, ShouldEqual, 1234)
			So(u.IsPlayer(), ShouldBeTrue)
			So(u.String(), ShouldEqual, "sr:player:1234")
		})

		Convey("And types with digits and underscores are accepted", func() {
			u, err := urn.Parse("sr:season_2:7")
			So(err, ShouldBeNil)
			So(u.Type, ShouldEqual, "season_2")
		})

		Convey("And the helpers report the entity type", func() {
			So(urn.MustParse("sr:competitor:1").IsCompetitor(), ShouldBeTrue)
			So(urn.MustParse("sr:match:9").IsMatch(), ShouldBeTrue)
			So(urn.MustParse("sr:stage:9").IsMatch(), ShouldBeFalse)
		})
	})

	Convey("Given malformed identifiers", t, func() {
		for _, in := range []string{
			"", "sr:player", "sr:player:", "sr:player:x", " sr:player:1",
			"sr:player:1 ", "sr:player:1,sr:player:2", "sr:player:2;sr:competitor:1", "sr::1",
		} {
			_, err := urn.Parse(in)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, nameerr.ErrSyntax), ShouldBeTrue)
		}
	})
}
