package naming_test

import (
	"errors"
	"testing"

	"github.com/okian/marketnames/internal/domain/nameerr"
	"github.com/okian/marketnames/internal/domain/naming"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParsePlaceholder(t *testing.T) {
	Convey("Given placeholders with and without operators", t, func() {
		cases := []struct {
			in       string
			operator naming.Operator
			operand  string
		}{
			{"{runnr}", naming.OpNone, "runnr"},
			{"{x}", naming.OpNone, "x"},
			{"{!runnr}", naming.OpOrdinal, "runnr"},
			{"{+hcp}", naming.OpPlus, "hcp"},
			{"{-hcp}", naming.OpMinus, "hcp"},
			{"{$competitor1}", naming.OpEntity, "competitor1"},
			{"{%player}", naming.OpProfile, "player"},
			{"{(runnr+1)}", naming.OpNone, "(runnr+1)"},
			{"{!(inningnr-1)}", naming.OpOrdinal, "(inningnr-1)"},
		}

		Convey("Then operator and operand are split exactly", func() {
			for _, c := range cases {
				ph, err := naming.ParsePlaceholder(c.in)
				So(err, ShouldBeNil)
				So(ph.Operator, ShouldEqual, c.operator)
				So(ph.Operand, ShouldEqual, c.operand)
			}
		})
	})

	Convey("Given malformed placeholders", t, func() {
		for _, in := range []string{"runnr", "{runnr", "runnr}", "{}", "{!}", "{a{b}", "{a}b}", "", "{"} {
			_, err := naming.ParsePlaceholder(in)

			So(err, ShouldNotBeNil)
			So(errors.Is(err, nameerr.ErrSyntax), ShouldBeTrue)
		}
	})
}

func TestParseDescriptor(t *testing.T) {
	Convey("Given a template with two placeholders", t, func() {
		d, err := naming.ParseDescriptor("A{x}B{y}C")

		Convey("Then they are extracted in order with a positional pattern", func() {
			So(err, ShouldBeNil)
			So(d.Placeholders(), ShouldResemble, []string{"{x}", "{y}"})
			So(d.Pattern(), ShouldEqual, "A{0}B{1}C")
			So(d.HasPlaceholders(), ShouldBeTrue)
		})

		Convey("And formatting substitutes fragments by position", func() {
			out, err := d.Format([]string{"1", "2"})
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "A1B2C")
		})

		Convey("And the fragment count must match", func() {
			_, err := d.Format([]string{"1"})
			So(errors.Is(err, nameerr.ErrGeneration), ShouldBeTrue)
		})
	})

	Convey("Given templates at the edges", t, func() {
		Convey("When there are no placeholders", func() {
			d, err := naming.ParseDescriptor("Total goals")
			So(err, ShouldBeNil)
			So(d.HasPlaceholders(), ShouldBeFalse)
			So(d.Pattern(), ShouldEqual, "Total goals")
		})

		Convey("When placeholders are adjacent or at both ends", func() {
			d, err := naming.ParseDescriptor("{a}{b} - {c}")
			So(err, ShouldBeNil)
			So(d.Placeholders(), ShouldResemble, []string{"{a}", "{b}", "{c}"})
			So(d.Pattern(), ShouldEqual, "{0}{1} - {2}")
		})

		Convey("When the template is empty", func() {
			d, err := naming.ParseDescriptor("")
			So(err, ShouldBeNil)
			So(d.Pattern(), ShouldEqual, "")
		})
	})

	Convey("Given unbalanced or nested braces", t, func() {
		for _, in := range []string{"A{x", "A}x", "A{x}}", "{a{b}}", "x{y}z{", "}{"} {
			_, err := naming.ParseDescriptor(in)

			So(err, ShouldNotBeNil)
			So(errors.Is(err, nameerr.ErrSyntax), ShouldBeTrue)
		}
	})
}
