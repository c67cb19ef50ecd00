// Package plot turns a backend-neutral line chart description into output.
//
// Widgets build a Chart; the host picks a Backend by name from the
// registry and renders it. The terminal backend draws braille line charts
// with ntcharts, the png and svg backends write image files with go-chart.
package plot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrBackendNotFound is returned by Open for an unregistered backend name.
var ErrBackendNotFound = errors.New("plotting backend not found")

// Point is one observation of a time series.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is a named line, points ordered by time.
type Series struct {
	Name   string
	Points []Point
}

// Chart describes a multi-series time plot.
type Chart struct {
	Title         string
	XLabel        string
	YLabel        string
	LegendTitle   string
	Series        []Series
	Grid          bool
	XTickRotation float64
	LineWidth     float64
	Width         int // pixels, for image backends
	Height        int
}

// TimeRange returns the earliest and latest point time over all series.
func (c Chart) TimeRange() (lo, hi time.Time, ok bool) {
	for _, s := range c.Series {
		for _, p := range s.Points {
			if !ok {
				lo, hi, ok = p.Time, p.Time, true
				continue
			}
			if p.Time.Before(lo) {
				lo = p.Time
			}
			if p.Time.After(hi) {
				hi = p.Time
			}
		}
	}
	return lo, hi, ok
}

// ValueRange returns the smallest and largest point value over all series.
func (c Chart) ValueRange() (lo, hi float64, ok bool) {
	for _, s := range c.Series {
		for _, p := range s.Points {
			if !ok {
				lo, hi, ok = p.Value, p.Value, true
				continue
			}
			lo = min(lo, p.Value)
			hi = max(hi, p.Value)
		}
	}
	return lo, hi, ok
}

// Rendering is what a backend produced: terminal text, a file, or both.
type Rendering struct {
	Backend string
	Text    string
	Path    string
}

// Backend renders charts.
type Backend interface {
	Name() string
	Render(ctx context.Context, c Chart) (Rendering, error)
}

// Options configure a backend when it is opened.
type Options struct {
	OutputDir string // image backends write here
	Columns   int    // terminal chart size in cells
	Rows      int
}

// Factory constructs a backend.
type Factory func(Options) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a backend available under name. Registering a name twice
// replaces the earlier factory.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Open constructs the backend registered under name.
func Open(name string, opts Options) (Backend, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotFound, name)
	}
	return f(opts)
}

// Names lists registered backends in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
