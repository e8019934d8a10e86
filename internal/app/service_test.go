package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/verba/internal/app"
	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/pkg/logger"
)

type fakeTranscriber struct {
	signals model.SpeechSignals
	err     error
	calls   atomic.Int64
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (model.SpeechSignals, error) {
	f.calls.Add(1)
	return f.signals, f.err
}

func (f *fakeTranscriber) ModelVersion() string { return "fake-engine-v1" }
func (f *fakeTranscriber) Close() error         { return nil }

type fakeChecker struct {
	findings []model.GrammarFinding
	err      error
}

func (f *fakeChecker) Check(ctx context.Context, text, language string) ([]model.GrammarFinding, error) {
	return f.findings, f.err
}

func (f *fakeChecker) Close() error { return nil }

func startService(t *testing.T, tr *fakeTranscriber, ch *fakeChecker) *service.Service {
	t.Helper()
	svc := service.New(
		service.WithTranscriber(tr),
		service.WithChecker(ch),
		service.WithWorkerCount(2),
		service.WithQueueSize(16),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestServiceAssess(t *testing.T) {
	_ = logger.Init()

	Convey("Given a running assessment service", t, func() {
		ctx := context.Background()

		Convey("A clean fluent transcript scores 100", func() {
			svc := startService(t, &fakeTranscriber{}, &fakeChecker{})

			sub := model.Submission{
				Signals: model.SpeechSignals{
					Transcript:  "This presentation covers the quarterly results in detail today.",
					DurationSec: 4.0,
					Language:    "en-US",
				},
			}
			a, err := svc.Assess(ctx, sub)
			So(err, ShouldBeNil)
			So(a.Result.FinalScore, ShouldEqual, 100.0)
			So(a.Signals.WordCount, ShouldEqual, 9)
			So(a.GrammarErrorCount, ShouldEqual, 0)
			So(a.FillerCount, ShouldEqual, 0)
			So(a.WER.Valid, ShouldBeFalse)
			So(a.WPM.Valid, ShouldBeTrue)
			So(a.WPM.Value, ShouldEqual, 135.0)
			So(a.ModelVersion, ShouldEqual, "fake-engine-v1")
			So(a.GeneratedAt.IsZero(), ShouldBeFalse)
		})

		Convey("Fillers and grammar findings produce deductions", func() {
			findings := []model.GrammarFinding{
				{Message: "agreement error", RuleID: "HE_VERB_AGR"},
			}
			svc := startService(t, &fakeTranscriber{}, &fakeChecker{findings: findings})

			sub := model.Submission{
				Signals: model.SpeechSignals{
					Transcript:  "Um, you know, he go to the store every day now.",
					DurationSec: 5.0,
				},
			}
			a, err := svc.Assess(ctx, sub)
			So(err, ShouldBeNil)
			So(a.GrammarErrorCount, ShouldEqual, 1)
			So(a.GrammarFindings, ShouldHaveLength, 1)
			So(a.FillerCount, ShouldBeGreaterThanOrEqualTo, 2)
			So(a.Result.FinalScore, ShouldBeLessThan, 100.0)
			So(a.Result.FinalScore, ShouldBeGreaterThanOrEqualTo, 0.0)
			So(a.Result.Explanation, ShouldStartWith, "Score: ")
		})

		Convey("A reference transcript activates the word error rate", func() {
			svc := startService(t, &fakeTranscriber{}, &fakeChecker{})

			sub := model.Submission{
				Signals: model.SpeechSignals{
					Transcript:  "the quick brown wolf",
					DurationSec: 2.0,
				},
				ReferenceTranscript: "the quick brown fox",
			}
			a, err := svc.Assess(ctx, sub)
			So(err, ShouldBeNil)
			So(a.WER.Valid, ShouldBeTrue)
			So(a.WER.Value, ShouldEqual, 0.25)
			So(a.Result.Penalties.WER, ShouldBeGreaterThan, 0.0)
		})

		Convey("A failing grammar engine degrades to zero findings", func() {
			svc := startService(t, &fakeTranscriber{}, &fakeChecker{err: errors.New("engine down")})

			sub := model.Submission{
				Signals: model.SpeechSignals{
					Transcript:  "This should still be scored without grammar data.",
					DurationSec: 3.0,
				},
			}
			a, err := svc.Assess(ctx, sub)
			So(err, ShouldBeNil)
			So(a.GrammarErrorCount, ShouldEqual, 0)
			So(a.Result.Penalties.Grammar, ShouldEqual, 0.0)
		})

		Convey("Identical submissions score identically", func() {
			svc := startService(t, &fakeTranscriber{}, &fakeChecker{})

			sub := model.Submission{
				Signals: model.SpeechSignals{
					Transcript:  "Well, basically the team delivered, um, everything on time.",
					DurationSec: 6.5,
				},
			}
			first, err := svc.Assess(ctx, sub)
			So(err, ShouldBeNil)
			second, err := svc.Assess(ctx, sub)
			So(err, ShouldBeNil)

			So(second.Result, ShouldResemble, first.Result)
			So(second.FillerWords, ShouldResemble, first.FillerWords)
		})

		Convey("GetStats reports pipeline state", func() {
			svc := startService(t, &fakeTranscriber{}, &fakeChecker{})

			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["workerCount"], ShouldEqual, 2)
			So(stats["modelVersion"], ShouldEqual, "fake-engine-v1")
			So(stats, ShouldContainKey, "queueLength")
		})

		Convey("Stopping more than once is safe", func() {
			svc := startService(t, &fakeTranscriber{}, &fakeChecker{})

			So(svc.Stop, ShouldNotPanic)
			So(svc.Stop, ShouldNotPanic)
			So(svc.GetStats()["started"], ShouldBeFalse)
		})
	})
}

func TestServiceAssessAudio(t *testing.T) {
	_ = logger.Init()

	Convey("Given a running service and an audio file", t, func() {
		ctx := context.Background()
		audio := filepath.Join(t.TempDir(), "clip.wav")
		So(os.WriteFile(audio, []byte("pretend-audio-bytes"), 0o600), ShouldBeNil)

		Convey("Transcription feeds the pipeline", func() {
			tr := &fakeTranscriber{signals: model.SpeechSignals{
				Transcript:  "hello world from the engine",
				WordCount:   5,
				DurationSec: 2.5,
				Language:    "en",
			}}
			svc := startService(t, tr, &fakeChecker{})

			a, err := svc.AssessAudio(ctx, audio, "")
			So(err, ShouldBeNil)
			So(a.Signals.Transcript, ShouldEqual, "hello world from the engine")
			So(a.Signals.WordCount, ShouldEqual, 5)
			So(tr.calls.Load(), ShouldEqual, 1)
		})

		Convey("Identical audio content hits the transcript cache", func() {
			tr := &fakeTranscriber{signals: model.SpeechSignals{
				Transcript:  "cached words",
				DurationSec: 1.0,
			}}
			svc := startService(t, tr, &fakeChecker{})

			_, err := svc.AssessAudio(ctx, audio, "")
			So(err, ShouldBeNil)
			_, err = svc.AssessAudio(ctx, audio, "")
			So(err, ShouldBeNil)
			So(tr.calls.Load(), ShouldEqual, 1)
		})

		Convey("A transcription failure aborts the assessment", func() {
			tr := &fakeTranscriber{err: errors.New("no audio stream")}
			svc := startService(t, tr, &fakeChecker{})

			_, err := svc.AssessAudio(ctx, audio, "")
			So(err, ShouldNotBeNil)
		})

		Convey("A missing file aborts before the engine is called", func() {
			tr := &fakeTranscriber{}
			svc := startService(t, tr, &fakeChecker{})

			_, err := svc.AssessAudio(ctx, filepath.Join(t.TempDir(), "absent.wav"), "")
			So(err, ShouldNotBeNil)
			So(tr.calls.Load(), ShouldEqual, 0)
		})
	})
}
