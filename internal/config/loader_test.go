package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/verba/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"VERBA_CONFIG",
		"VERBA_ADDR",
		"VERBA_LOG_LEVEL",
		"VERBA_QUEUE_SIZE",
		"VERBA_WORKER_COUNT",
		"VERBA_TRANSCRIPT_CACHE_SIZE",
		"VERBA_ASR_ENDPOINT",
		"VERBA_GRAMMAR_ENDPOINT",
		"VERBA_GRAMMAR_LANGUAGE",
		"VERBA_ENGINE_TIMEOUT_MS",
		"VERBA_MAX_UPLOAD_BYTES",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnv(t)

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg, convey.ShouldNotBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 256)
			convey.So(cfg.GrammarLanguage, convey.ShouldEqual, "en-US")
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnv(t)
			t.Setenv("VERBA_ADDR", ":9090")
			t.Setenv("VERBA_QUEUE_SIZE", "64")
			t.Setenv("VERBA_WORKER_COUNT", "8")
			t.Setenv("VERBA_ASR_ENDPOINT", "http://stt:9000")
			t.Setenv("VERBA_GRAMMAR_LANGUAGE", "en-GB")

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
			convey.So(cfg.ASREndpoint, convey.ShouldEqual, "http://stt:9000")
			convey.So(cfg.GrammarLanguage, convey.ShouldEqual, "en-GB")
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnv(t)
			yamlContent := `
addr: ":7070"
queue_size: 128
worker_count: 4
grammar_endpoint: "http://lt:8010"
engine_timeout_ms: 5000
`
			tmpFile := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			t.Setenv("VERBA_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 128)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			convey.So(cfg.GrammarEndpoint, convey.ShouldEqual, "http://lt:8010")
			convey.So(cfg.EngineTimeoutMS, convey.ShouldEqual, 5000)
		})

		convey.Convey("When env vars override the YAML file", func() {
			clearConfigEnv(t)
			yamlContent := "addr: \":7070\"\n"
			tmpFile := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o600), convey.ShouldBeNil)
			t.Setenv("VERBA_CONFIG", tmpFile)
			t.Setenv("VERBA_ADDR", ":6060")

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
		})

		convey.Convey("When the config is invalid", func() {
			clearConfigEnv(t)
			t.Setenv("VERBA_QUEUE_SIZE", "-5")

			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
		})

		convey.Convey("When the config file is missing", func() {
			clearConfigEnv(t)
			t.Setenv("VERBA_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
		})
	})
}
