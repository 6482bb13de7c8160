package celltable

import (
	"github.com/hupe1980/celltable/codec"
	"github.com/hupe1980/celltable/fits"
	"github.com/hupe1980/celltable/table"
)

type options struct {
	format           Format
	logger           *Logger
	metricsCollector MetricsCollector
	comment          string
	comments         []string
	columnNames      []string
	columnTypes      []table.Kind
	fitsFormat       fits.Format
	hduName          string
	codec            codec.Codec
	fetchConcurrency int
	fetchChunkSize   int64
}

func defaultOptions() options {
	return options{
		format:           FormatAuto,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		comment:          "#",
		fitsFormat:       fits.FormatBinary,
		codec:            codec.Default,
	}
}

// Option configures ReadTable and WriteTable.
type Option func(*options)

// WithFormat overrides the format chosen by file name.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithComment sets the comment marker of text files. Default: "#".
func WithComment(marker string) Option {
	return func(o *options) {
		o.comment = marker
	}
}

// WithComments adds comment lines to written text and FITS files.
func WithComments(lines ...string) Option {
	return func(o *options) {
		o.comments = append(o.comments, lines...)
	}
}

// WithColumnNames fixes the column names of text files being read instead
// of detecting them from the header.
func WithColumnNames(names ...string) Option {
	return func(o *options) {
		o.columnNames = names
	}
}

// WithColumnTypes fixes the column types of text files being read instead
// of inferring them from declarations.
func WithColumnTypes(kinds ...table.Kind) Option {
	return func(o *options) {
		o.columnTypes = kinds
	}
}

// WithFITSFormat selects the table layout of FITS files. Default: binary.
func WithFITSFormat(f fits.Format) Option {
	return func(o *options) {
		o.fitsFormat = f
	}
}

// WithHDUName sets the EXTNAME of the written FITS table. By default the
// file name without extensions is used.
func WithHDUName(name string) Option {
	return func(o *options) {
		o.hduName = name
	}
}

// WithCodec configures the codec of JSON files.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithFetchConcurrency downloads files with n concurrent range reads of
// chunkSize bytes before decoding. Zero chunkSize selects
// blobstore.DefaultChunkSize. By default files are streamed.
func WithFetchConcurrency(n int, chunkSize int64) Option {
	return func(o *options) {
		o.fetchConcurrency = n
		o.fetchChunkSize = chunkSize
	}
}
