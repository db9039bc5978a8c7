package asciifile

import "log/slog"

// Option configures a File.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	precision int
	tokenizer Tokenizer
}

func defaultOptions() options {
	return options{
		logger:    slog.New(slog.DiscardHandler),
		precision: DefaultPrecision,
		tokenizer: Lex,
	}
}

// WithLogger sets the logger used for debug records. A nil logger keeps the
// file silent.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		o.logger = logger
	}
}

// WithPrecision sets the number of digits after the decimal point used when
// writing values. Out of range values are clamped to [1, MaxPrecision].
func WithPrecision(prec int) Option {
	return func(o *options) {
		o.precision = min(max(prec, 1), MaxPrecision)
	}
}

// WithTokenizer replaces the default grammar tokenizer.
func WithTokenizer(tok Tokenizer) Option {
	return func(o *options) {
		if tok != nil {
			o.tokenizer = tok
		}
	}
}
