package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"

	"git.sr.ht/~whereswaldon/linegraph/geom"
	"git.sr.ht/~whereswaldon/linegraph/multiline"
)

// publishEvery bounds how many rows are parsed between published sessions
// while catching up on a large file.
const publishEvery = 4096

// Session is a snapshot of the data read from one source so far.
type Session struct {
	ID string
	// Name describes the source, usually a file name.
	Name string
	// Keys are the series names in column order.
	Keys   []string
	Series multiline.SeriesMap
	// Rows counts the records accepted so far.
	Rows int
	// Following is set while new rows appended to the source are picked up.
	Following bool
	// Done is set once the source has been read completely and will not
	// change again.
	Done bool
	Err  error
}

// Datasource reads CSV traces: a header row naming the columns, then one
// row per sample. The first column is the x value of the row; each other
// column is a series. Empty cells are skipped.
//
// Only the most recently loaded source is current. Loading another source
// stops reading the previous one.
type Datasource struct {
	appCtx  context.Context
	watcher *fsnotify.Watcher

	lock    sync.Mutex
	latest  *Session
	subs    map[chan Session]struct{}
	cancel  context.CancelFunc
	watched map[string]chan struct{}

	sessionCounter atomic.Int64
}

// NewDatasource returns a datasource whose sources are read until appCtx is
// done.
func NewDatasource(appCtx context.Context) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{
		appCtx:  appCtx,
		watcher: watcher,
		subs:    make(map[chan Session]struct{}),
		watched: make(map[string]chan struct{}),
	}
	go d.dispatchWatchEvents()
	return d, nil
}

// Close stops watching files.
func (d *Datasource) Close() error {
	return d.watcher.Close()
}

func (d *Datasource) dispatchWatchEvents() {
	for {
		select {
		case <-d.appCtx.Done():
			d.watcher.Close()
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
			d.lock.Lock()
			notify, ok := d.watched[filepath.Clean(ev.Name)]
			d.lock.Unlock()
			if ok {
				select {
				case notify <- struct{}{}:
				default:
				}
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		}
	}
}

func (d *Datasource) watch(path string) (<-chan struct{}, func(), error) {
	path = filepath.Clean(path)
	notify := make(chan struct{}, 1)
	d.lock.Lock()
	d.watched[path] = notify
	d.lock.Unlock()
	if err := d.watcher.Add(path); err != nil {
		d.unwatch(path, notify)
		return nil, nil, fmt.Errorf("failed watching %q: %w", path, err)
	}
	return notify, func() { d.unwatch(path, notify) }, nil
}

func (d *Datasource) unwatch(path string, notify chan struct{}) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.watched[path] != notify {
		return
	}
	delete(d.watched, path)
	_ = d.watcher.Remove(path)
}

// Subscribe returns a channel delivering the current session and every later
// one. Slow readers only miss intermediate sessions: the latest is always
// delivered. The channel is closed when ctx is done.
func (d *Datasource) Subscribe(ctx context.Context) <-chan Session {
	ch := make(chan Session, 1)
	d.lock.Lock()
	d.subs[ch] = struct{}{}
	if d.latest != nil {
		ch <- *d.latest
	}
	d.lock.Unlock()
	go func() {
		<-ctx.Done()
		d.lock.Lock()
		defer d.lock.Unlock()
		delete(d.subs, ch)
		close(ch)
	}()
	return ch
}

// Latest returns the current session, if any source has been loaded.
func (d *Datasource) Latest() (Session, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.latest == nil {
		return Session{}, false
	}
	return *d.latest, true
}

func (d *Datasource) publish(s Session) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.latest != nil && d.latest.ID != s.ID {
		// Superseded by a newer source.
		return
	}
	d.latest = &s
	for ch := range d.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

func (d *Datasource) begin(name string) (context.Context, Session) {
	ctx, cancel := context.WithCancel(d.appCtx)
	s := Session{
		ID:   generateSessionID(d.sessionCounter.Add(1)),
		Name: name,
	}
	d.lock.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.latest = &s
	d.lock.Unlock()
	d.publish(s)
	return ctx, s
}

func generateSessionID(n int64) string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000"), ".", "", 1) + "-" + strconv.FormatInt(n, 10)
}

// LoadFromFile asks the user for a trace and reads it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile("csv")
	if err != nil {
		return "", fmt.Errorf("failed choosing trace: %w", err)
	}
	name := "trace"
	if f, ok := file.(interface{ Name() string }); ok {
		name = filepath.Base(f.Name())
	}
	return d.LoadFromStream(name, file), nil
}

// LoadFromStream reads r to its end, then closes it.
func (d *Datasource) LoadFromStream(name string, r io.ReadCloser) string {
	ctx, s := d.begin(name)
	go d.ingest(ctx, s, r, nil)
	return s.ID
}

// LoadPath reads the file at path. If follow is set, rows appended to the
// file later are read as well, until another source is loaded.
func (d *Datasource) LoadPath(path string, follow bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed opening trace: %w", err)
	}
	var changed <-chan struct{}
	var stop func()
	if follow {
		changed, stop, err = d.watch(path)
		if err != nil {
			f.Close()
			return "", err
		}
	}
	ctx, s := d.begin(filepath.Base(path))
	go func() {
		if stop != nil {
			defer stop()
		}
		d.ingest(ctx, s, f, changed)
	}()
	return s.ID, nil
}

// ingest parses source into s, publishing progress as it goes. If changed
// is non-nil, reaching the end of source waits for it to grow instead of
// finishing.
func (d *Datasource) ingest(ctx context.Context, s Session, source io.ReadCloser, changed <-chan struct{}) {
	defer source.Close()
	csvReader := csv.NewReader(NewLineReader(source))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.ReuseRecord = true

	s.Following = changed != nil
	fail := func(err error) {
		s.Err = err
		s.Done = true
		s.Following = false
		d.publish(s)
	}

	var headings []string
	for headings == nil {
		rec, err := csvReader.Read()
		switch {
		case err == nil:
			headings = uniqueHeadings(rec)
		case errors.Is(err, io.EOF) && changed != nil:
			// The header has not been written yet.
			if !waitForChange(ctx, changed) {
				return
			}
		case errors.Is(err, io.EOF):
			fail(fmt.Errorf("trace %q has no header row", s.Name))
			return
		default:
			fail(fmt.Errorf("failed reading CSV headings: %w", err))
			return
		}
	}
	if len(headings) < 2 {
		fail(fmt.Errorf("trace %q has no data columns", s.Name))
		return
	}
	data := NewDataset(headings[1:])
	s.Keys = data.Headings()
	snapshot := func() {
		s.Series = data.SeriesMap()
		d.publish(s)
	}
	snapshot()

	line := 1
	sincePublish := 0
	for {
		if ctx.Err() != nil {
			return
		}
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			if sincePublish > 0 {
				snapshot()
				sincePublish = 0
			}
			if changed == nil {
				s.Done = true
				d.publish(s)
				return
			}
			if !waitForChange(ctx, changed) {
				return
			}
			continue
		} else if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Printf("skipping malformed CSV: %v", err)
				continue
			}
			s.Series = data.SeriesMap()
			fail(fmt.Errorf("failed reading CSV data: %w", err))
			return
		}
		line++
		if parseRow(data, rec, line) {
			s.Rows++
			sincePublish++
		}
		if sincePublish >= publishEvery {
			snapshot()
			sincePublish = 0
		}
	}
}

// parseRow inserts one record into data, reporting whether any value was
// accepted.
func parseRow(data *Dataset, rec []string, line int) bool {
	x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		log.Printf("line %d: failed parsing x value: %v", line, err)
		return false
	}
	accepted := false
	for i, cell := range rec[1:] {
		if i >= len(data.Series) {
			break
		}
		cell = strings.TrimSpace(cell)
		if len(cell) < 1 {
			// Skip null cells.
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			log.Printf("line %d: failed parsing %s=%q: %v", line, data.Series[i].Name(), cell, err)
			continue
		}
		if !data.Series[i].Insert(geom.Pt(x, v)) {
			log.Printf("line %d: dropping out-of-order sample for %s at x=%v", line, data.Series[i].Name(), x)
			continue
		}
		accepted = true
	}
	return accepted
}

func waitForChange(ctx context.Context, changed <-chan struct{}) bool {
	select {
	case <-ctx.Done():
		return false
	case <-changed:
		return true
	}
}

// uniqueHeadings copies rec, numbering repeated names so that every series
// has a distinct key.
func uniqueHeadings(rec []string) []string {
	out := make([]string, len(rec))
	seen := make(map[string]int, len(rec))
	for i, h := range rec {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "column " + strconv.Itoa(i)
		}
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s (%d)", h, n)
		}
		out[i] = h
	}
	return out
}
