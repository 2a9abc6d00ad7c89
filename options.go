package jdx

import (
	"github.com/hupe1980/jdx/compress"
	"github.com/hupe1980/jdx/internal/fs"
	"github.com/hupe1980/jdx/resource"
)

type options struct {
	fs               fs.FileSystem
	logger           *Logger
	metricsCollector MetricsCollector
	compressor       compress.Compressor
	controller       *resource.Controller
	workers          int
}

func newOptions(optFns []Option) options {
	o := options{
		fs:               fs.Default,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		compressor:       compress.Default,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Option configures reads, writes and batch loads.
type Option func(*options)

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &jdx.BasicMetricsCollector{}
//	ds, err := jdx.ReadFile("train.jdx", jdx.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCompressor selects the body compressor used by writes.
//
// Reads ignore this option: the stream format is detected from its magic
// bytes. If nil is passed, compress.Default (zlib at best compression) is used.
func WithCompressor(c compress.Compressor) Option {
	return func(o *options) {
		if c == nil {
			c = compress.Default
		}
		o.compressor = c
	}
}

// WithCompression selects the body compressor by algorithm. Unknown
// algorithms fall back to compress.Default.
func WithCompression(a compress.Algorithm) Option {
	return func(o *options) {
		c, err := compress.For(a)
		if err != nil {
			c = compress.Default
		}
		o.compressor = c
	}
}

// WithWorkers caps the number of inputs MergeAll decodes at once.
// Values below one mean runtime.GOMAXPROCS(0). A resource controller with
// MaxWorkers set applies on top of this.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithResourceController bounds the concurrency, memory and read throughput
// of MergeAll.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// withFileSystem swaps the filesystem used by path-based reads and writes.
func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}
