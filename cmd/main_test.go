package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/lumokids/playledger/internal/adapters/http/api"
	"github.com/lumokids/playledger/internal/adapters/kvstore"
	app "github.com/lumokids/playledger/internal/app"
	"github.com/lumokids/playledger/internal/config"
	"github.com/lumokids/playledger/pkg/logger"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PLAYLEDGER_ADDR", ":8080")
			_ = os.Setenv("PLAYLEDGER_STORE_BACKEND", "memory")
			_ = os.Setenv("PLAYLEDGER_DEDUPE_WINDOW", "64")
			defer func() {
				_ = os.Unsetenv("PLAYLEDGER_ADDR")
				_ = os.Unsetenv("PLAYLEDGER_STORE_BACKEND")
				_ = os.Unsetenv("PLAYLEDGER_DEDUPE_WINDOW")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.DedupeWindow, convey.ShouldEqual, 64)
			})
		})

		convey.Convey("When testing store selection", func() {
			ctx := context.Background()

			convey.Convey("Then the memory backend should open", func() {
				cfg := config.New()
				cfg.StoreBackend = config.BackendMemory
				store, err := openStore(ctx, cfg, logger.Get())
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldNotBeNil)
				convey.So(store.Close(), convey.ShouldBeNil)
			})

			convey.Convey("And the leveldb backend should open in a temp dir", func() {
				cfg := config.New()
				cfg.DataDir = t.TempDir()
				store, err := openStore(ctx, cfg, logger.Get())
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldNotBeNil)
				convey.So(store.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithStore(kvstore.NewMemStore()),
					app.WithDedupeWindow(32),
					app.WithLocation(time.UTC),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New(app.WithStore(kvstore.NewMemStore()))
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})
	})
}
