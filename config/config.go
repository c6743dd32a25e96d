// Package config loads viewer settings from a YAML file.
package config

import (
	"io/fs"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/linechart"
	"git.sr.ht/~whereswaldon/linegraph/lookup"
	"git.sr.ht/~whereswaldon/linegraph/multiline"
)

// Config is the full viewer configuration. Fields missing from a file keep
// their defaults.
type Config struct {
	Chart     Chart     `yaml:"chart"`
	Multi     Multi     `yaml:"multi"`
	Recompute Recompute `yaml:"recompute"`
}

// Chart configures single-series charts.
type Chart struct {
	// StrokeWidth is in device-independent pixels.
	StrokeWidth  float32 `yaml:"stroke_width"`
	CursorRadius float64 `yaml:"cursor_radius"`
	Precision    int     `yaml:"precision"`
	CurveType    string  `yaml:"curve_type"`
}

// Multi configures the multi-series chart.
type Multi struct {
	LongPressDelay time.Duration `yaml:"long_press_delay"`
	Slop           float64       `yaml:"slop"`
	// ScaleMode is "shared" or "per-series".
	ScaleMode string `yaml:"scale_mode"`
}

// Recompute throttles geometry recomputation.
type Recompute struct {
	// MaxPerSecond of zero disables throttling.
	MaxPerSecond float64 `yaml:"max_per_second"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Chart: Chart{
			StrokeWidth:  2,
			CursorRadius: linechart.DefaultCursorRadius,
			Precision:    lookup.DefaultPrecision,
			CurveType:    string(geom.DefaultCurveType),
		},
		Multi: Multi{
			LongPressDelay: multiline.DefaultLongPressDelay,
			Slop:           10,
			ScaleMode:      multiline.SharedScale.String(),
		},
		Recompute: Recompute{
			MaxPerSecond: 60,
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Chart.StrokeWidth <= 0:
		return errors.Newf("chart.stroke_width must be positive, got %v", c.Chart.StrokeWidth)
	case c.Chart.CursorRadius < 0:
		return errors.Newf("chart.cursor_radius must not be negative, got %v", c.Chart.CursorRadius)
	case c.Chart.Precision < 0 || c.Chart.Precision > 15:
		return errors.Newf("chart.precision must be within [0,15], got %d", c.Chart.Precision)
	case !geom.CurveType(c.Chart.CurveType).Known():
		return errors.Newf("chart.curve_type %q is not supported", c.Chart.CurveType)
	case c.Multi.LongPressDelay < 0:
		return errors.Newf("multi.long_press_delay must not be negative, got %v", c.Multi.LongPressDelay)
	case c.Multi.Slop < 0:
		return errors.Newf("multi.slop must not be negative, got %v", c.Multi.Slop)
	case c.Recompute.MaxPerSecond < 0:
		return errors.Newf("recompute.max_per_second must not be negative, got %v", c.Recompute.MaxPerSecond)
	}
	if _, err := c.Multi.scaleMode(); err != nil {
		return err
	}
	return nil
}

func (m Multi) scaleMode() (multiline.ScaleMode, error) {
	switch m.ScaleMode {
	case multiline.SharedScale.String(), "":
		return multiline.SharedScale, nil
	case multiline.PerSeriesScale.String():
		return multiline.PerSeriesScale, nil
	}
	return 0, errors.Newf("multi.scale_mode %q is not one of %q, %q",
		m.ScaleMode, multiline.SharedScale, multiline.PerSeriesScale)
}

// LineChartOptions returns options for a single-series chart.
func (c Config) LineChartOptions() linechart.Options {
	radius, precision := c.Chart.CursorRadius, c.Chart.Precision
	return linechart.Options{
		CursorRadius: &radius,
		Precision:    &precision,
		CurveType:    geom.CurveType(c.Chart.CurveType),
		Limit:        c.Limit(),
	}
}

// MultiLineOptions returns options for the multi-series chart.
func (c Config) MultiLineOptions() multiline.Options {
	mode, _ := c.Multi.scaleMode()
	delay := c.Multi.LongPressDelay
	if delay == 0 {
		// Zero means immediate here; multiline treats it as unset.
		delay = -1
	}
	return multiline.Options{
		LongPressDelay: delay,
		Slop:           c.Multi.Slop,
		CurveType:      geom.CurveType(c.Chart.CurveType),
		ScaleMode:      mode,
		Limit:          c.Limit(),
	}
}

// Limit is the recompute rate limit.
func (c Config) Limit() rate.Limit {
	if c.Recompute.MaxPerSecond == 0 {
		return rate.Inf
	}
	return rate.Limit(c.Recompute.MaxPerSecond)
}
