package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/verba/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 256)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.TranscriptCacheSize, convey.ShouldEqual, 1024)
			convey.So(cfg.ASREndpoint, convey.ShouldEqual, "http://localhost:9000")
			convey.So(cfg.GrammarEndpoint, convey.ShouldEqual, "http://localhost:8010")
			convey.So(cfg.GrammarLanguage, convey.ShouldEqual, "en-US")
			convey.So(cfg.EngineTimeoutMS, convey.ShouldEqual, 15_000)
			convey.So(cfg.MaxUploadBytes, convey.ShouldEqual, int64(25<<20))
		})
	})
}
