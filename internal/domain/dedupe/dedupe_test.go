package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/chemdraft/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper[string]()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
				_, ok := d.Lookup(ctx, "s1", "pick-1")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When recording pick ids", func() {
			d := dedupe.NewInMemoryDeduper[string]()

			Convey("And the id is new", func() {
				d.Record(ctx, "s1", "pick-1", "Red:Mario")

				Convey("Then its value can be looked up", func() {
					v, ok := d.Lookup(ctx, "s1", "pick-1")
					So(ok, ShouldBeTrue)
					So(v, ShouldEqual, "Red:Mario")
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the id is recorded again with another value", func() {
				d.Record(ctx, "s1", "pick-1", "Red:Mario")
				d.Record(ctx, "s1", "pick-1", "Blue:Luigi")

				Convey("Then the first value is kept", func() {
					v, _ := d.Lookup(ctx, "s1", "pick-1")
					So(v, ShouldEqual, "Red:Mario")
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the same id is used in another session", func() {
				d.Record(ctx, "s1", "pick-1", "Red:Mario")

				Convey("Then the sessions do not collide", func() {
					_, ok := d.Lookup(ctx, "s2", "pick-1")
					So(ok, ShouldBeFalse)
					d.Record(ctx, "s2", "pick-1", "Red:Peach")
					So(d.Size(), ShouldEqual, 2)
				})
			})
		})

		Convey("When a session is forgotten", func() {
			d := dedupe.NewInMemoryDeduper[int]()
			for i := 0; i < 3; i++ {
				d.Record(ctx, "s1", fmt.Sprintf("pick-%d", i), i)
			}
			d.Record(ctx, "s2", "pick-0", 0)

			removed := d.Forget(ctx, "s1")

			Convey("Then only its ids are dropped", func() {
				So(removed, ShouldEqual, 3)
				So(d.Size(), ShouldEqual, 1)
				_, ok := d.Lookup(ctx, "s2", "pick-0")
				So(ok, ShouldBeTrue)
				_, ok = d.Lookup(ctx, "s1", "pick-0")
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestInMemoryDeduper_Bounded(t *testing.T) {
	ctx := context.Background()

	Convey("Given a deduper bounded to three ids", t, func() {
		d := dedupe.NewInMemoryDeduper[int](dedupe.WithMaxSize(3))

		Convey("When a fourth id is recorded", func() {
			for i, id := range []string{"a", "b", "c", "d"} {
				d.Record(ctx, "s", id, i)
			}

			Convey("Then the oldest id is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				_, ok := d.Lookup(ctx, "s", "a")
				So(ok, ShouldBeFalse)
				v, ok := d.Lookup(ctx, "s", "d")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 3)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper[int](dedupe.WithMaxSize(0))

		Convey("Then it never evicts", func() {
			for i := 0; i < 1000; i++ {
				d.Record(ctx, "s", fmt.Sprintf("id-%d", i), i)
			}
			So(d.Size(), ShouldEqual, 1000)
			_, ok := d.Lookup(ctx, "s", "id-0")
			So(ok, ShouldBeTrue)
		})
	})
}

func TestInMemoryDeduper_Concurrent(t *testing.T) {
	ctx := context.Background()

	Convey("Given many goroutines recording the same id", t, func() {
		d := dedupe.NewInMemoryDeduper[int]()
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				d.Record(ctx, "s", "same", n)
			}(i)
		}
		wg.Wait()

		Convey("Then exactly one value is kept", func() {
			So(d.Size(), ShouldEqual, 1)
			_, ok := d.Lookup(ctx, "s", "same")
			So(ok, ShouldBeTrue)
		})
	})
}
