package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/marketnames/internal/adapters/repository"
	"github.com/okian/marketnames/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func name(event string, market int, outcome, lang, text string) types.RenderedName {
	return types.RenderedName{EventID: event, MarketID: market, OutcomeID: outcome, Language: lang, Name: text}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStore(ctx)
		defer s.Close()

		Convey("Then nothing is counted and events are unknown", func() {
			So(s.Count(ctx), ShouldEqual, 0)
			_, err := s.ByEvent(ctx, "sr:match:1")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When names of two events are stored", func() {
			err := s.Put(ctx,
				name("sr:match:1", 18, "13", "en", "under"),
				name("sr:match:1", 1, "", "en", "1x2"),
				name("sr:match:1", 18, "12", "en", "over"),
				name("sr:match:1", 1, "", "de", "1x2 DE"),
				name("sr:match:2", 1, "", "en", "1x2"),
			)
			So(err, ShouldBeNil)

			Convey("Then each event lists its own names in order", func() {
				So(s.Count(ctx), ShouldEqual, 5)
				So(s.Events(), ShouldEqual, 2)

				names, err := s.ByEvent(ctx, "sr:match:1")
				So(err, ShouldBeNil)
				So(names, ShouldHaveLength, 4)
				So(names[0].Language, ShouldEqual, "de")
				So(names[1].Name, ShouldEqual, "1x2")
				So(names[2].OutcomeID, ShouldEqual, "12")
				So(names[3].OutcomeID, ShouldEqual, "13")
			})

			Convey("And a re-rendered name replaces the earlier one", func() {
				So(s.Put(ctx, name("sr:match:1", 1, "", "en", "Match winner")), ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 5)

				names, _ := s.ByEvent(ctx, "sr:match:1")
				So(names[1].Name, ShouldEqual, "Match winner")
			})
		})

		Convey("When a name has no event or language", func() {
			err := s.Put(ctx, name("", 1, "", "en", "x"), name("sr:match:1", 1, "", "en", "y"))

			Convey("Then the whole batch is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidEntry), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a store bounded to two events", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStore(ctx, repository.WithMaxEvents(2))
		defer s.Close()

		So(s.Put(ctx, name("sr:match:1", 1, "", "en", "a")), ShouldBeNil)
		So(s.Put(ctx, name("sr:match:2", 1, "", "en", "b"), name("sr:match:2", 2, "", "en", "c")), ShouldBeNil)

		Convey("When the oldest event is written again before a third arrives", func() {
			So(s.Put(ctx, name("sr:match:1", 2, "", "en", "d")), ShouldBeNil)
			So(s.Put(ctx, name("sr:match:3", 1, "", "en", "e")), ShouldBeNil)

			Convey("Then the least recently written event is dropped", func() {
				So(s.Events(), ShouldEqual, 2)
				So(s.Count(ctx), ShouldEqual, 3)
				_, err := s.ByEvent(ctx, "sr:match:2")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				names, err := s.ByEvent(ctx, "sr:match:1")
				So(err, ShouldBeNil)
				So(names, ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given concurrent writers", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStore(ctx)
		defer s.Close()

		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					_ = s.Put(ctx, name(fmt.Sprintf("sr:match:%d", w), i, "", "en", "n"))
				}
			}()
		}
		wg.Wait()

		Convey("Then every write is counted once", func() {
			So(s.Count(ctx), ShouldEqual, 400)
			So(s.Events(), ShouldEqual, 8)
		})
	})
}
