package widget

import (
	"context"

	"github.com/imgajeed76/homeview/internal/plot"
)

// Option configures a widget via functional options.
type Option func(*settings)

type settings struct {
	headRows    int    // explorer head/tail size
	previewRows int    // market filter preview cap
	maxEntities int    // metro trends option cap
	listRows    int    // visible rows of a multi-select
	backend     string // plot backend name
	plotOpts    plot.Options
	chartWidth  int
	chartHeight int
	ctx         context.Context
}

// WithHeadRows sets how many rows head() and tail() show.
func WithHeadRows(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.headRows = n
		}
	}
}

// WithPreviewRows caps the filtered rows the market filter displays.
func WithPreviewRows(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.previewRows = n
		}
	}
}

// WithMaxEntities caps the number of metros offered for selection.
func WithMaxEntities(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxEntities = n
		}
	}
}

// WithListRows sets the maximum visible rows of a multi-select list.
func WithListRows(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.listRows = n
		}
	}
}

// WithBackend selects the plot backend by registry name.
func WithBackend(name string, opts plot.Options) Option {
	return func(s *settings) {
		s.backend = name
		s.plotOpts = opts
	}
}

// WithChartSize sets the nominal chart size in pixels.
func WithChartSize(width, height int) Option {
	return func(s *settings) {
		if width > 0 && height > 0 {
			s.chartWidth = width
			s.chartHeight = height
		}
	}
}

// WithContext sets the context passed to plot backends.
func WithContext(ctx context.Context) Option {
	return func(s *settings) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// applyOptions creates settings from functional options.
func applyOptions(opts []Option) settings {
	s := settings{
		headRows:    5,
		previewRows: 20,
		maxEntities: 100,
		listRows:    12,
		backend:     "terminal",
		chartWidth:  1200,
		chartHeight: 600,
		ctx:         context.Background(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
