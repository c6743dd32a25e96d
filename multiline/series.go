package multiline

import (
	"log/slog"
	"slices"

	"github.com/cockroachdb/errors"

	"git.sr.ht/~whereswaldon/linegraph/geom"
)

// SeriesMap holds named series. Each series must be ascending in X, and a
// series' slice must not be modified after it is handed to a Chart: replace
// it with a new slice instead.
type SeriesMap map[string][]geom.Point

// Keys returns the series names in order.
func (m SeriesMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ScaleMode selects how series are scaled vertically.
type ScaleMode uint8

const (
	// SharedScale traces every series against the minimum and maximum over
	// all series, so equal values sit at equal heights.
	SharedScale ScaleMode = iota
	// PerSeriesScale stretches each series over the full height.
	PerSeriesScale
)

func (m ScaleMode) String() string {
	switch m {
	case SharedScale:
		return "shared"
	case PerSeriesScale:
		return "per-series"
	default:
		return "unknown"
	}
}

// Line selects one series of a SeriesMap for drawing.
type Line struct {
	Key       string
	CurveType geom.CurveType
}

// checkLines drops lines with empty or repeated keys. Such lines are a
// programming error: builds tagged linegraphdebug report them, others log
// and carry on without them.
func checkLines(lines []Line, logger *slog.Logger) ([]Line, error) {
	seen := make(map[string]bool, len(lines))
	kept := make([]Line, 0, len(lines))
	for i, l := range lines {
		var err error
		switch {
		case l.Key == "":
			err = errors.AssertionFailedf("multiline: line %d has no key", i)
		case seen[l.Key]:
			err = errors.AssertionFailedf("multiline: line %d repeats key %q", i, l.Key)
		}
		if err != nil {
			if debugBuild {
				return nil, err
			}
			logger.Error("multiline: dropping line", "err", err)
			continue
		}
		seen[l.Key] = true
		kept = append(kept, l)
	}
	return kept, nil
}
