package model_test

import (
	"errors"
	"testing"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/urn"
	"github.com/smartystreets/goconvey/convey"
)

func TestSpecifiers(t *testing.T) {
	convey.Convey("Given the feed form of specifiers", t, func() {
		convey.Convey("When parsing a valid list", func() {
			s, err := model.ParseSpecifiers("total=2.5|variant=sr:exact_goals:5+")

			convey.Convey("Then every pair is present", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(s["total"], convey.ShouldEqual, "2.5")
				v, ok := s.Variant()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(v, convey.ShouldEqual, "sr:exact_goals:5+")
			})
		})

		convey.Convey("When parsing an empty string", func() {
			s, err := model.ParseSpecifiers("")

			convey.Convey("Then the map is empty", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(s, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a pair has no value separator or repeats a key", func() {
			_, err1 := model.ParseSpecifiers("total")
			_, err2 := model.ParseSpecifiers("a=1|a=2")

			convey.Convey("Then it fails", func() {
				convey.So(errors.Is(err1, model.ErrInvalidSpecifiers), convey.ShouldBeTrue)
				convey.So(errors.Is(err2, model.ErrInvalidSpecifiers), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a score is carried", func() {
			s, err := model.ParseSpecifiers("score=2:1|total=3.5")
			_, bad := model.ParseSpecifiers("score=2:1:0")

			convey.Convey("Then a valid score parses and a malformed one fails", func() {
				convey.So(err, convey.ShouldBeNil)
				sc, ok, err := s.Score()
				convey.So(err, convey.ShouldBeNil)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(sc.String(), convey.ShouldEqual, "2:1")
				convey.So(errors.Is(bad, model.ErrInvalidSpecifiers), convey.ShouldBeTrue)
			})

			convey.Convey("And specifiers without a score report none", func() {
				_, ok, err := model.Specifiers{"total": "1"}.Score()
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given specifiers in any insertion order", t, func() {
		s := model.Specifiers{"setnr": "1", "gamenr": "3"}

		convey.Convey("Then the canonical form is sorted and parses back", func() {
			convey.So(s.String(), convey.ShouldEqual, "gamenr=3|setnr=1")
			back, err := model.ParseSpecifiers(s.String())
			convey.So(err, convey.ShouldBeNil)
			convey.So(back, convey.ShouldResemble, s)
		})

		convey.Convey("And a clone is independent", func() {
			c := s.Clone()
			c["setnr"] = "2"
			convey.So(s["setnr"], convey.ShouldEqual, "1")
		})
	})
}

func TestMarketDescription(t *testing.T) {
	convey.Convey("Given a description with one outcome", t, func() {
		d := &model.MarketDescription{
			ID:    1,
			Names: map[language.Tag]string{language.English: "1x2"},
			Outcomes: []model.OutcomeDescription{
				{ID: "1", Names: map[language.Tag]string{language.English: "{$competitor1}"}},
			},
		}

		convey.Convey("Then names are found per language", func() {
			n, ok := d.Name(language.English)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(n, convey.ShouldEqual, "1x2")
			_, ok = d.Name(language.German)
			convey.So(ok, convey.ShouldBeFalse)

			o, ok := d.OutcomeName("1", language.English)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(o, convey.ShouldEqual, "{$competitor1}")
			_, ok = d.OutcomeName("2", language.English)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given events of different kinds", t, func() {
		convey.So(model.SportEvent{ID: urn.MustParse("sr:match:1")}.IsMatch(), convey.ShouldBeTrue)
		convey.So(model.SportEvent{ID: urn.MustParse("sr:stage:1")}.IsMatch(), convey.ShouldBeFalse)
	})
}
