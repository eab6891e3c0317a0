package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumokids/playledger/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"PLAYLEDGER_CONFIG",
		"PLAYLEDGER_LOG_LEVEL",
		"PLAYLEDGER_ADDR",
		"PLAYLEDGER_DATA_DIR",
		"PLAYLEDGER_STORE_BACKEND",
		"PLAYLEDGER_DEDUPE_WINDOW",
		"PLAYLEDGER_TIMEZONE",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it loads successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendLevelDB)
			})
		})

		convey.Convey("When environment variables are set", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PLAYLEDGER_ADDR", ":7070")
			_ = os.Setenv("PLAYLEDGER_STORE_BACKEND", "memory")
			_ = os.Setenv("PLAYLEDGER_DEDUPE_WINDOW", "64")
			_ = os.Setenv("PLAYLEDGER_TIMEZONE", "Europe/Lisbon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.DedupeWindow, convey.ShouldEqual, 64)
				convey.So(cfg.Timezone, convey.ShouldEqual, "Europe/Lisbon")
			})
		})

		convey.Convey("When a YAML file is provided", func() {
			clearConfigEnvVars()
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			yaml := "addr: \":6060\"\nlog_level: debug\ndata_dir: /tmp/ledgers\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("PLAYLEDGER_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/ledgers")
			})

			convey.Convey("And env still beats the file", func() {
				_ = os.Setenv("PLAYLEDGER_ADDR", ":5050")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5050")
			})
		})

		convey.Convey("When the file path is bogus", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PLAYLEDGER_CONFIG", "/does/not/exist.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
		})

		convey.Convey("When an env var breaks validation", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PLAYLEDGER_ADDR", "")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
