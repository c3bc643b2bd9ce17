package naming_test

import (
	"errors"
	"testing"

	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/nameerr"
	"github.com/okian/marketnames/internal/domain/naming"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildOperand(t *testing.T) {
	specs := model.Specifiers{"runnr": "2", "total": "2.5", "player": "sr:player:2"}

	Convey("Given a direct lookup", t, func() {
		op, err := naming.BuildOperand(specs, "runnr")
		So(err, ShouldBeNil)

		Convey("Then integer, decimal and text forms resolve", func() {
			i, err := op.Integer()
			So(err, ShouldBeNil)
			So(i, ShouldEqual, 2)

			d, err := op.Decimal()
			So(err, ShouldBeNil)
			So(d.String(), ShouldEqual, "2")

			s, err := op.Text()
			So(err, ShouldBeNil)
			So(s, ShouldEqual, "2")
		})
	})

	Convey("Given a decimal specifier", t, func() {
		op, _ := naming.BuildOperand(specs, "total")

		Convey("Then the decimal form works and the integer form fails", func() {
			d, err := op.Decimal()
			So(err, ShouldBeNil)
			So(d.String(), ShouldEqual, "2.5")

			_, err = op.Integer()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
		})
	})

	Convey("Given a missing or non-numeric specifier", t, func() {
		missing, _ := naming.BuildOperand(specs, "setnr")
		word, _ := naming.BuildOperand(specs, "player")

		Convey("Then every numeric form fails with a resolution error", func() {
			_, err := missing.Integer()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
			_, err = missing.Decimal()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
			_, err = missing.Text()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
			_, err = word.Decimal()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
		})
	})

	Convey("Given numeric specifiers in different literal forms", t, func() {
		forms := model.Specifiers{"hcp": "2.50", "big": "1e3"}

		Convey("Then Number keeps the stored text of a lookup", func() {
			op, _ := naming.BuildOperand(forms, "hcp")
			d, text, err := op.Number()
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "2.50")
			So(d.String(), ShouldEqual, "2.5")
		})

		Convey("And a shifted operand reports the computed value", func() {
			op, _ := naming.BuildOperand(forms, "(hcp+1)")
			_, text, err := op.Number()
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "3.5")
		})

		Convey("And exponent forms are not numbers", func() {
			op, _ := naming.BuildOperand(forms, "big")
			_, err := op.Decimal()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
			_, _, err = op.Number()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
		})
	})

	Convey("Given bounded arithmetic forms", t, func() {
		plus, err := naming.BuildOperand(specs, "(runnr+1)")
		So(err, ShouldBeNil)
		minus, err := naming.BuildOperand(specs, "(total-3)")
		So(err, ShouldBeNil)

		Convey("Then the delta is applied to numeric forms", func() {
			i, err := plus.Integer()
			So(err, ShouldBeNil)
			So(i, ShouldEqual, 3)

			d, err := minus.Decimal()
			So(err, ShouldBeNil)
			So(d.String(), ShouldEqual, "-0.5")
		})

		Convey("And there is no text form", func() {
			_, err := plus.Text()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
		})

		Convey("And a missing inner specifier fails on evaluation", func() {
			op, err := naming.BuildOperand(specs, "(setnr+1)")
			So(err, ShouldBeNil)
			_, err = op.Integer()
			So(errors.Is(err, nameerr.ErrResolution), ShouldBeTrue)
		})
	})

	Convey("Given malformed parenthesized forms", t, func() {
		for _, in := range []string{
			"(runnr+1", "runnr+1)", "((runnr+1))", "(runnr+1+2)", "(runnr+1.5)",
			"(runnr*2)", "(runnr+)", "(+1)", "()", "(runnr)",
		} {
			_, err := naming.BuildOperand(specs, in)

			So(err, ShouldNotBeNil)
			So(errors.Is(err, nameerr.ErrSyntax), ShouldBeTrue)
		}
	})
}
