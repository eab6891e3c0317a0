package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/lumokids/playledger/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSessionGuard(t *testing.T) {
	Convey("Given a new session guard", t, func() {
		ctx := context.Background()

		Convey("When created with defaults", func() {
			g := dedupe.NewSessionGuard()

			Convey("Then it starts empty", func() {
				So(g, ShouldNotBeNil)
				So(g.Size(), ShouldEqual, 0)
			})
		})

		Convey("When a session id is recorded", func() {
			g := dedupe.NewSessionGuard()
			first := g.SeenAndRecord(ctx, "session-1")
			second := g.SeenAndRecord(ctx, "session-1")

			Convey("Then only the first submission is new", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When distinct sessions are recorded", func() {
			g := dedupe.NewSessionGuard()
			So(g.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			So(g.SeenAndRecord(ctx, "b"), ShouldBeFalse)
			So(g.Size(), ShouldEqual, 2)
		})

		Convey("When a session is unrecorded after a failed write", func() {
			g := dedupe.NewSessionGuard()
			So(g.SeenAndRecord(ctx, "retry-me"), ShouldBeFalse)
			g.Unrecord(ctx, "retry-me")

			Convey("Then the retry is treated as new", func() {
				So(g.SeenAndRecord(ctx, "retry-me"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown id", func() {
			g := dedupe.NewSessionGuard()
			g.Unrecord(ctx, "never-seen")
			So(g.Size(), ShouldEqual, 0)
		})
	})
}

func TestSessionGuardWindow(t *testing.T) {
	Convey("Given a guard with a small window", t, func() {
		ctx := context.Background()
		g := dedupe.NewSessionGuard(dedupe.WithWindowSize(3))

		Convey("When more ids arrive than the window holds", func() {
			for i := 0; i < 4; i++ {
				So(g.SeenAndRecord(ctx, fmt.Sprintf("s-%d", i)), ShouldBeFalse)
			}

			Convey("Then the oldest id has been forgotten", func() {
				So(g.Size(), ShouldEqual, 3)
				So(g.SeenAndRecord(ctx, "s-0"), ShouldBeFalse) // evicted, so new again
				So(g.SeenAndRecord(ctx, "s-3"), ShouldBeTrue)  // still in the window
			})
		})
	})
}

func TestSessionGuardConcurrency(t *testing.T) {
	Convey("Given concurrent submissions of the same id", t, func() {
		ctx := context.Background()
		g := dedupe.NewSessionGuard()

		const workers = 16
		var wg sync.WaitGroup
		newCount := make(chan bool, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				newCount <- !g.SeenAndRecord(ctx, "same-session")
			}()
		}
		wg.Wait()
		close(newCount)

		Convey("Then exactly one submission wins", func() {
			wins := 0
			for isNew := range newCount {
				if isNew {
					wins++
				}
			}
			So(wins, ShouldEqual, 1)
			So(g.Size(), ShouldEqual, 1)
		})
	})
}
