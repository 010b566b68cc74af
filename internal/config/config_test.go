package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/wordlebench/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.WordsToTest, convey.ShouldEqual, 0)
			convey.So(cfg.ExecutionMode, convey.ShouldEqual, "parallel")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MaxTurns, convey.ShouldEqual, 6)
			convey.So(cfg.SignificanceThreshold, convey.ShouldEqual, 0.05)
			convey.So(cfg.BaselineBackend, convey.ShouldEqual, "file")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad key", t, func() {
		cases := map[string]func(*config.Config){
			"log_level":              func(c *config.Config) { c.LogLevel = "loud" },
			"words_to_test":          func(c *config.Config) { c.WordsToTest = -1 },
			"selection":              func(c *config.Config) { c.Selection = "best" },
			"execution_mode":         func(c *config.Config) { c.ExecutionMode = "threads" },
			"worker_count":           func(c *config.Config) { c.WorkerCount = 0 },
			"queue_size":             func(c *config.Config) { c.QueueSize = 0 },
			"max_turns":              func(c *config.Config) { c.MaxTurns = 0 },
			"significance_threshold": func(c *config.Config) { c.SignificanceThreshold = 1 },
			"min_samples":            func(c *config.Config) { c.MinSamples = 0 },
			"baseline_backend":       func(c *config.Config) { c.BaselineBackend = "s3" },
			"baseline_dir":           func(c *config.Config) { c.BaselineDir = "" },
		}

		for key, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, key)
		}

		cfg := config.New()
		cfg.MaxTurns = 2_000_000_000
		convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}
