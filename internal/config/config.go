// Package config resolves the flume runtime configuration from defaults, an
// optional flume.yaml in the working directory, FLUME_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// widthGutter is subtracted from the reported terminal width; emulators
// disagree on how much margin they reserve.
const widthGutter = 7

// minWidth is the lower bound on the width budget handed to the allocator.
const minWidth = 20

// Config is the configuration surface consumed by the pipeline core.
type Config struct {
	// TermWidth is the column budget. Zero means "ask the terminal".
	TermWidth int `mapstructure:"term_width"`

	// FilterField, FilterSubstring and FilterInvert parameterize the
	// where-stage predicate.
	FilterField     string `mapstructure:"filter_field"`
	FilterSubstring string `mapstructure:"filter_substring"`
	FilterInvert    bool   `mapstructure:"filter_invert"`

	// PageCap bounds page size; PageTimeout bounds page accumulation.
	PageCap     int           `mapstructure:"page_cap"`
	PageTimeout time.Duration `mapstructure:"page_timeout"`
}

// Load builds the configuration, optionally binding a command's flag set so
// explicit flags win over file and environment values.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("term_width", 0)
	v.SetDefault("filter_field", "name")
	v.SetDefault("filter_substring", "")
	v.SetDefault("filter_invert", false)
	v.SetDefault("page_cap", 1000)
	v.SetDefault("page_timeout", time.Second)

	v.SetConfigName("flume")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FLUME")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		// Flag names are dashed; config keys are underscored.
		for key, flag := range map[string]string{
			"term_width":       "term-width",
			"filter_field":     "filter-field",
			"filter_substring": "filter-substring",
			"filter_invert":    "filter-invert",
			"page_cap":         "page-cap",
			"page_timeout":     "page-timeout",
		} {
			f := flags.Lookup(flag)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("binding flag %s: %w", flag, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(
		mapstructure.StringToTimeDurationHookFunc(),
	)); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.PageCap < 1 {
		return Config{}, fmt.Errorf("page_cap must be at least 1, got %d", cfg.PageCap)
	}
	if cfg.PageTimeout <= 0 {
		return Config{}, fmt.Errorf("page_timeout must be positive, got %s", cfg.PageTimeout)
	}
	return cfg, nil
}

// ResolveWidth returns the effective width budget: the configured value if
// set, otherwise the terminal's reported width minus a gutter, floored at
// the minimum either way. Non-terminals get the floor.
func (c Config) ResolveWidth() int {
	width := c.TermWidth
	if width == 0 {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w - widthGutter
		}
	}
	if width < minWidth {
		width = minWidth
	}
	return width
}
