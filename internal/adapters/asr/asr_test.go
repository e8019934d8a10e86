package asr_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/verba/internal/adapters/asr"
	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestWhisperTranscriber(t *testing.T) {
	Convey("Given a whisper HTTP engine", t, func() {
		Convey("A successful response yields transcript signals", func(cv C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				cv.So(r.Method, ShouldEqual, http.MethodPost)
				cv.So(r.URL.Path, ShouldEqual, "/inference")
				_, _, err := r.FormFile("file")
				cv.So(err, ShouldBeNil)
				json.NewEncoder(w).Encode(map[string]string{"text": "  hello world  "})
			}))
			defer srv.Close()

			audio := filepath.Join(t.TempDir(), "sample.mp3")
			So(os.WriteFile(audio, []byte("not-really-audio"), 0o600), ShouldBeNil)

			tr := asr.NewWhisperTranscriber(
				asr.WithEndpoint(srv.URL),
				asr.WithModelVersion("whisper-test"),
			)
			defer tr.Close()

			signals, err := tr.Transcribe(context.Background(), audio)
			So(err, ShouldBeNil)
			So(signals.Transcript, ShouldEqual, "hello world")
			So(signals.WordCount, ShouldEqual, 2)
			So(signals.DurationSec, ShouldEqual, 0)
			So(signals.Language, ShouldEqual, "en")
			So(tr.ModelVersion(), ShouldEqual, "whisper-test")
		})

		Convey("An engine error surfaces as a transcription failure", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
			defer srv.Close()

			audio := filepath.Join(t.TempDir(), "sample.wav")
			So(os.WriteFile(audio, []byte("x"), 0o600), ShouldBeNil)

			tr := asr.NewWhisperTranscriber(asr.WithEndpoint(srv.URL))
			defer tr.Close()

			_, err := tr.Transcribe(context.Background(), audio)
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, asr.ErrTranscription)
		})

		Convey("A missing file surfaces as a transcription failure", func() {
			tr := asr.NewWhisperTranscriber()
			defer tr.Close()

			_, err := tr.Transcribe(context.Background(), filepath.Join(t.TempDir(), "absent.wav"))
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, asr.ErrTranscription)
		})
	})
}

func TestTranscriptCache(t *testing.T) {
	Convey("Given a bounded transcript cache", t, func() {
		ctx := context.Background()

		Convey("Put then Get round-trips signals", func() {
			c := asr.NewTranscriptCache(asr.WithCacheMaxSize(10))
			signals := model.SpeechSignals{Transcript: "hello there", WordCount: 2, DurationSec: 1.5, Language: "en"}

			_, ok := c.Get(ctx, "k1")
			So(ok, ShouldBeFalse)

			c.Put(ctx, "k1", signals)
			got, ok := c.Get(ctx, "k1")
			So(ok, ShouldBeTrue)
			So(got, ShouldResemble, signals)
			So(c.Size(), ShouldEqual, 1)
		})

		Convey("Re-putting a key overwrites without growing", func() {
			c := asr.NewTranscriptCache(asr.WithCacheMaxSize(10))
			c.Put(ctx, "k1", model.SpeechSignals{Transcript: "one"})
			c.Put(ctx, "k1", model.SpeechSignals{Transcript: "two"})

			got, ok := c.Get(ctx, "k1")
			So(ok, ShouldBeTrue)
			So(got.Transcript, ShouldEqual, "two")
			So(c.Size(), ShouldEqual, 1)
		})

		Convey("Concurrent readers never observe foreign signals", func() {
			c := asr.NewTranscriptCache(asr.WithCacheMaxSize(1))
			hot := model.SpeechSignals{Transcript: "hot take", WordCount: 2, DurationSec: 1.5, Language: "en"}

			var wg sync.WaitGroup
			var badReads atomic.Int64
			stop := make(chan struct{})

			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for {
						select {
						case <-stop:
							return
						default:
						}
						if got, ok := c.Get(ctx, "hot"); ok && got != hot {
							badReads.Add(1)
						}
					}
				}()
			}

			// Each churn Put evicts and recycles the hot entry's slot.
			for i := 0; i < 2000; i++ {
				c.Put(ctx, "hot", hot)
				c.Put(ctx, fmt.Sprintf("churn-%d", i), model.SpeechSignals{Transcript: "churn"})
			}
			close(stop)
			wg.Wait()

			So(badReads.Load(), ShouldEqual, 0)
		})

		Convey("The bound evicts the most recent entry first", func() {
			c := asr.NewTranscriptCache(asr.WithCacheMaxSize(3))
			for i := 0; i < 3; i++ {
				c.Put(ctx, fmt.Sprintf("k%d", i), model.SpeechSignals{WordCount: i})
			}
			c.Put(ctx, "k3", model.SpeechSignals{WordCount: 3})

			So(c.Size(), ShouldEqual, 3)
			_, ok := c.Get(ctx, "k2")
			So(ok, ShouldBeFalse)
			_, ok = c.Get(ctx, "k0")
			So(ok, ShouldBeTrue)
			_, ok = c.Get(ctx, "k3")
			So(ok, ShouldBeTrue)
		})
	})
}

func TestContentKey(t *testing.T) {
	Convey("Given audio files on disk", t, func() {
		dir := t.TempDir()
		a := filepath.Join(dir, "a.wav")
		b := filepath.Join(dir, "b.wav")
		c := filepath.Join(dir, "c.wav")
		So(os.WriteFile(a, []byte("same bytes"), 0o600), ShouldBeNil)
		So(os.WriteFile(b, []byte("same bytes"), 0o600), ShouldBeNil)
		So(os.WriteFile(c, []byte("other bytes"), 0o600), ShouldBeNil)

		Convey("Identical content hashes to the same key regardless of name", func() {
			ka, err := asr.ContentKey(a)
			So(err, ShouldBeNil)
			kb, err := asr.ContentKey(b)
			So(err, ShouldBeNil)
			kc, err := asr.ContentKey(c)
			So(err, ShouldBeNil)

			So(ka, ShouldEqual, kb)
			So(ka, ShouldNotEqual, kc)
			So(ka, ShouldHaveLength, 64)
		})

		Convey("A missing file is an error", func() {
			_, err := asr.ContentKey(filepath.Join(dir, "absent.wav"))
			So(err, ShouldNotBeNil)
		})
	})
}
