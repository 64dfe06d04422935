package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hireloop/evalboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"EVALBOARD_CONFIG",
		"EVALBOARD_ADDR",
		"EVALBOARD_LOG_LEVEL",
		"EVALBOARD_STORE_BACKEND",
		"EVALBOARD_POSTGRES_DSN",
		"EVALBOARD_JWT_SECRET",
		"EVALBOARD_SEARCH_CASE_SENSITIVE",
		"EVALBOARD_RECENT_ATTEMPT_LIMIT",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.SearchCaseSensitive, convey.ShouldBeFalse)
				convey.So(cfg.RecentAttemptLimit, convey.ShouldEqual, 10)
				convey.So(cfg.ActivityFeedLimit, convey.ShouldEqual, 5)
				convey.So(cfg.RecentInterviewLimit, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("EVALBOARD_ADDR", ":8081")
			_ = os.Setenv("EVALBOARD_STORE_BACKEND", "postgres")
			_ = os.Setenv("EVALBOARD_POSTGRES_DSN", "host=localhost user=eval dbname=eval")
			_ = os.Setenv("EVALBOARD_RECENT_ATTEMPT_LIMIT", "20")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendPostgres)
				convey.So(cfg.PostgresDSN, convey.ShouldEqual, "host=localhost user=eval dbname=eval")
				convey.So(cfg.RecentAttemptLimit, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			yaml := "addr: \":7070\"\nlog_level: debug\nsearch_case_sensitive: true\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("EVALBOARD_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.SearchCaseSensitive, convey.ShouldBeTrue)
			})

			convey.Convey("And env vars should override the file", func() {
				_ = os.Setenv("EVALBOARD_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config is invalid", func() {
			clearConfigEnvVars()

			convey.Convey("Then an unknown backend is rejected", func() {
				_ = os.Setenv("EVALBOARD_STORE_BACKEND", "cassandra")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("And postgres without a DSN is rejected", func() {
				_ = os.Setenv("EVALBOARD_STORE_BACKEND", "postgres")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("And an empty addr is rejected", func() {
				_ = os.Setenv("EVALBOARD_ADDR", "")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
