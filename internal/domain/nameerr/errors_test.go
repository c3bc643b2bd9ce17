package nameerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okian/marketnames/internal/domain/nameerr"
	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorKinds(t *testing.T) {
	Convey("Given errors of each kind", t, func() {
		syn := nameerr.Syntax("parse", "{x", "unbalanced brace")
		res := nameerr.Resolution("operand", "runnr", nil, "specifier missing")
		cause := errors.New("catalogue: not found")
		gen := nameerr.Generation("market name", "1", cause, "missing market descriptor")

		Convey("Then each matches only its own sentinel", func() {
			So(errors.Is(syn, nameerr.ErrSyntax), ShouldBeTrue)
			So(errors.Is(syn, nameerr.ErrResolution), ShouldBeFalse)
			So(errors.Is(res, nameerr.ErrResolution), ShouldBeTrue)
			So(errors.Is(res, nameerr.ErrGeneration), ShouldBeFalse)
			So(errors.Is(gen, nameerr.ErrGeneration), ShouldBeTrue)
			So(errors.Is(gen, nameerr.ErrSyntax), ShouldBeFalse)
		})

		Convey("And the cause stays reachable", func() {
			So(errors.Is(gen, cause), ShouldBeTrue)
		})

		Convey("And wrapping keeps the classification", func() {
			wrapped := fmt.Errorf("render: %w", res)
			So(errors.Is(wrapped, nameerr.ErrResolution), ShouldBeTrue)
			So(nameerr.IsKind(wrapped, nameerr.KindResolution), ShouldBeTrue)
			So(nameerr.KindOf(wrapped), ShouldEqual, nameerr.KindResolution)
		})

		Convey("And the message names the op, kind and input", func() {
			So(syn.Error(), ShouldContainSubstring, "parse: syntax error")
			So(syn.Error(), ShouldContainSubstring, `"{x"`)
			So(gen.Error(), ShouldContainSubstring, "catalogue: not found")
		})
	})

	Convey("Given an error of one kind caused by another", t, func() {
		root := errors.New("bad digits")
		inner := nameerr.Resolution("urn", "sr:player:x", root, "malformed")
		syn := nameerr.Syntax("urn", "sr:player:x", "malformed urn")
		gen := nameerr.Generation("outcome name", "sr:player:x", syn, "bad entity outcome")
		res := nameerr.Generation("outcome name", "sr:player:x", inner, "bad entity outcome")

		Convey("Then only the outer kind matches", func() {
			So(errors.Is(gen, nameerr.ErrGeneration), ShouldBeTrue)
			So(errors.Is(gen, nameerr.ErrSyntax), ShouldBeFalse)
			So(errors.Is(res, nameerr.ErrResolution), ShouldBeFalse)
			So(nameerr.KindOf(gen), ShouldEqual, nameerr.KindGeneration)
		})

		Convey("And the nested cause is still reachable and printed", func() {
			So(errors.Is(res, root), ShouldBeTrue)
			So(gen.Error(), ShouldContainSubstring, "malformed urn")
		})
	})

	Convey("Given a plain error", t, func() {
		err := errors.New("boom")

		Convey("Then it has no kind", func() {
			So(nameerr.KindOf(err), ShouldEqual, nameerr.Kind(""))
			So(nameerr.IsKind(err, nameerr.KindSyntax), ShouldBeFalse)
		})
	})
}
