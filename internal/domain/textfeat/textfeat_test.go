package textfeat_test

import (
	"testing"

	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/internal/domain/textfeat"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given the transcript normalizer", t, func() {
		Convey("It collapses whitespace and fixes punctuation spacing", func() {
			So(textfeat.Normalize("  Hello   world  .  "), ShouldEqual, "Hello world.")
		})

		Convey("It collapses tabs and newlines as well", func() {
			So(textfeat.Normalize("one\ttwo\nthree"), ShouldEqual, "one two three")
		})

		Convey("It removes whitespace before all sentence punctuation", func() {
			So(textfeat.Normalize("wait , what ?  yes !"), ShouldEqual, "wait, what? yes!")
			So(textfeat.Normalize("a ; b : c"), ShouldEqual, "a; b: c")
		})

		Convey("It preserves casing and non-whitespace punctuation", func() {
			So(textfeat.Normalize("I'm Here - OK"), ShouldEqual, "I'm Here - OK")
		})

		Convey("Empty and all-whitespace input yield empty string", func() {
			So(textfeat.Normalize(""), ShouldEqual, "")
			So(textfeat.Normalize("   \t\n "), ShouldEqual, "")
		})
	})
}

func TestDetectFillers(t *testing.T) {
	Convey("Given the filler detector", t, func() {
		Convey("It finds fillers in the canonical sentence", func() {
			count, fillers := textfeat.DetectFillers("Um, I think, you know, it's like really good.")
			So(count, ShouldEqual, 3)
			// Pattern-list order: phrases before single words.
			So(fillers, ShouldResemble, []model.FillerOccurrence{"you know", "um", "like"})
		})

		Convey("It matches repeated-letter variants as one pattern", func() {
			count, fillers := textfeat.DetectFillers("Umm... uhhh, ermm.")
			So(count, ShouldEqual, 3)
			So(fillers, ShouldContain, model.FillerOccurrence("umm"))
			So(fillers, ShouldContain, model.FillerOccurrence("uhhh"))
			So(fillers, ShouldContain, model.FillerOccurrence("ermm"))
		})

		Convey("Phrases are counted as one unit, not per word", func() {
			count, fillers := textfeat.DetectFillers("I mean, kind of a sort of thing.")
			So(count, ShouldEqual, 3)
			So(fillers, ShouldResemble, []model.FillerOccurrence{"i mean", "kind of", "sort of"})
		})

		Convey("Matching is case-insensitive and does not touch the input", func() {
			text := "WELL, So, JUST do it"
			count, _ := textfeat.DetectFillers(text)
			So(count, ShouldEqual, 3)
			So(text, ShouldEqual, "WELL, So, JUST do it")
		})

		Convey("Discourse markers are counted even in legitimate use", func() {
			// Known over-inclusiveness: "so" as a conjunction still counts.
			count, _ := textfeat.DetectFillers("It was late, so we left.")
			So(count, ShouldEqual, 1)
		})

		Convey("No text yields zero fillers", func() {
			count, fillers := textfeat.DetectFillers("")
			So(count, ShouldEqual, 0)
			So(fillers, ShouldBeNil)

			count, fillers = textfeat.DetectFillers("   ")
			So(count, ShouldEqual, 0)
			So(fillers, ShouldBeNil)
		})

		Convey("A word containing a filler substring does not match", func() {
			count, _ := textfeat.DetectFillers("umbrella swell solo justice")
			So(count, ShouldEqual, 0)
		})
	})
}

func TestWordsPerMinute(t *testing.T) {
	Convey("Given the rate calculator", t, func() {
		Convey("It computes WPM for valid inputs", func() {
			wpm := textfeat.WordsPerMinute(50, 30.0)
			So(wpm.Valid, ShouldBeTrue)
			So(wpm.Value, ShouldEqual, 100.0)
		})

		Convey("It rounds to 2 decimals", func() {
			wpm := textfeat.WordsPerMinute(7, 13.0)
			So(wpm.Valid, ShouldBeTrue)
			So(wpm.Value, ShouldEqual, 32.31)
		})

		Convey("Zero or negative duration means absent, not error", func() {
			So(textfeat.WordsPerMinute(10, 0).Valid, ShouldBeFalse)
			So(textfeat.WordsPerMinute(10, -1).Valid, ShouldBeFalse)
		})

		Convey("Negative word count means absent", func() {
			So(textfeat.WordsPerMinute(-1, 30).Valid, ShouldBeFalse)
		})

		Convey("Zero words over a real duration is a present zero", func() {
			wpm := textfeat.WordsPerMinute(0, 30)
			So(wpm.Valid, ShouldBeTrue)
			So(wpm.Value, ShouldEqual, 0.0)
		})
	})
}

func TestSentences(t *testing.T) {
	Convey("Given the sentence statistics", t, func() {
		Convey("It splits on terminal punctuation", func() {
			stats := textfeat.Sentences("Hello. This is a test. It works well.")
			So(stats.SentenceCount, ShouldEqual, 3)
			So(stats.AvgSentenceLength, ShouldEqual, 2.67)
			So(stats.MinSentenceLength, ShouldEqual, 1)
			So(stats.MaxSentenceLength, ShouldEqual, 4)
		})

		Convey("Empty input yields zero stats", func() {
			So(textfeat.Sentences(""), ShouldResemble, model.SentenceStats{})
			So(textfeat.Sentences("  !?  "), ShouldResemble, model.SentenceStats{})
		})
	})
}

func TestCountWords(t *testing.T) {
	Convey("Given the word counter", t, func() {
		So(textfeat.CountWords("one two  three"), ShouldEqual, 3)
		So(textfeat.CountWords(""), ShouldEqual, 0)
	})
}
