package lsxstream

import "io"

// Option configures a Reader.
type Option func(*options)

type options struct {
	charsetReader func(charset string, input io.Reader) (io.Reader, error)
	bufferSize    int
	maxDepth      int
	maxAttrs      int
	strict        bool
}

func buildOptions(opts ...Option) options {
	o := options{
		bufferSize: readerBufferSize,
		strict:     true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.bufferSize <= 0 {
		o.bufferSize = readerBufferSize
	}
	return o
}

// WithStrict toggles strict XML parsing. Non-strict mode tolerates unclosed
// elements and HTML entities.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithCharsetReader installs a converter for documents declaring a non-UTF-8 encoding.
func WithCharsetReader(fn func(charset string, input io.Reader) (io.Reader, error)) Option {
	return func(o *options) {
		o.charsetReader = fn
	}
}

// WithBufferSize sets the size of the read buffer.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithMaxDepth caps element nesting. Zero selects the default of 256.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithMaxAttrs caps the attribute count of a single element. Zero selects the
// default of 256.
func WithMaxAttrs(n int) Option {
	return func(o *options) {
		o.maxAttrs = n
	}
}
