package wer_test

import (
	"testing"

	"github.com/okian/verba/internal/domain/wer"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given the word error rate", t, func() {
		Convey("Identical transcripts score zero", func() {
			m := wer.Compute("the quick brown fox", "the quick brown fox")
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldEqual, 0.0)
		})

		Convey("Case and punctuation differences do not count", func() {
			m := wer.Compute("Hello, world!", "hello world")
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldEqual, 0.0)
		})

		Convey("One substitution in three words is one third", func() {
			m := wer.Compute("she likes apples", "she likes oranges")
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldEqual, 0.3333)
		})

		Convey("A deletion counts once", func() {
			m := wer.Compute("I am very happy", "I am happy")
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldEqual, 0.25)
		})

		Convey("An insertion counts once", func() {
			m := wer.Compute("I am happy", "I am so happy")
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldAlmostEqual, 0.3333, 1e-9)
		})

		Convey("Completely different transcripts of equal length score 1", func() {
			m := wer.Compute("one two three", "alpha beta gamma")
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldEqual, 1.0)
		})

		Convey("An empty hypothesis against a reference scores 1", func() {
			m := wer.Compute("one two three", "")
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldEqual, 1.0)
		})

		Convey("An empty reference yields an absent metric", func() {
			So(wer.Compute("", "anything at all").Valid, ShouldBeFalse)
			So(wer.Compute("  ...  ", "anything").Valid, ShouldBeFalse)
		})

		Convey("A long hypothesis can exceed 1.0 (callers clamp)", func() {
			m := wer.Compute("hi", "a b c d e")
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldBeGreaterThan, 1.0)
		})
	})
}
