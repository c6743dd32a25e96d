package backend

import "git.sr.ht/~whereswaldon/linegraph/multiline"

// Dataset is the set of series read from one source, in column order.
type Dataset struct {
	Series []*Series
}

// NewDataset returns a dataset with an empty series per heading.
func NewDataset(headings []string) *Dataset {
	d := &Dataset{Series: make([]*Series, len(headings))}
	for i, h := range headings {
		d.Series[i] = NewSeries(h)
	}
	return d
}

// Headings returns the series names in column order.
func (d *Dataset) Headings() []string {
	out := make([]string, len(d.Series))
	for i, s := range d.Series {
		out[i] = s.Name()
	}
	return out
}

// Initialized reports whether any series has data.
func (d *Dataset) Initialized() bool {
	for _, s := range d.Series {
		if s.Initialized() {
			return true
		}
	}
	return false
}

// Domain spans the X values of every non-empty series.
func (d *Dataset) Domain() (dMin, dMax float64) {
	first := true
	for _, s := range d.Series {
		if !s.Initialized() {
			continue
		}
		sMin, sMax := s.Domain()
		if first {
			dMin, dMax = sMin, sMax
			first = false
			continue
		}
		dMin = min(sMin, dMin)
		dMax = max(sMax, dMax)
	}
	return dMin, dMax
}

// SeriesMap snapshots every series by name. Series that have not changed
// since the previous snapshot keep the same slice.
func (d *Dataset) SeriesMap() multiline.SeriesMap {
	m := make(multiline.SeriesMap, len(d.Series))
	for _, s := range d.Series {
		m[s.Name()] = s.Points()
	}
	return m
}
