package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/okian/verba/internal/adapters/http/api"
	"github.com/okian/verba/internal/adapters/http/swagger"
	app "github.com/okian/verba/internal/app"
	"github.com/okian/verba/internal/config"
	"github.com/okian/verba/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("VERBA_ADDR", ":8080")
			t.Setenv("VERBA_QUEUE_SIZE", "100")
			t.Setenv("VERBA_WORKER_COUNT", "4")

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 100)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithWorkerCount(8),
					app.WithQueueSize(64),
					app.WithCacheSize(128),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := app.New()
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startServiceMetricsUpdater(ctx, svc)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When testing system metrics update", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("When testing service metrics update", func() {
			svc := app.New()
			convey.So(func() {
				updateServiceMetrics(svc)
			}, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		t.Setenv("VERBA_ADDR", ":8080")
		t.Setenv("VERBA_QUEUE_SIZE", "100")
		t.Setenv("VERBA_WORKER_COUNT", "2")

		convey.Convey("Then all components should work together", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg, convey.ShouldNotBeNil)

			// Create service without starting to avoid engine dependencies
			svc := app.New(
				app.WithWorkerCount(cfg.WorkerCount),
				app.WithQueueSize(cfg.QueueSize),
				app.WithCacheSize(cfg.TranscriptCacheSize),
			)
			convey.So(svc, convey.ShouldNotBeNil)

			server := api.NewServer(svc, svc, api.WithMaxUploadBytes(cfg.MaxUploadBytes))
			convey.So(server, convey.ShouldNotBeNil)

			mux := http.NewServeMux()
			server.Register(ctx, mux)
			swagger.Register(ctx, mux)

			svc.Stop()
		})
	})
}
