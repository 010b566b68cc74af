package report

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const defaultBarWidth = 40

// Option customises rendering.
type Option func(*options)

type options struct {
	color    *bool
	barWidth int
}

// WithColor forces colour on or off. By default colour is used only when
// writing to a terminal.
func WithColor(on bool) Option {
	return func(o *options) {
		o.color = &on
	}
}

// WithBarWidth sets the width of the longest histogram bar.
func WithBarWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.barWidth = n
		}
	}
}

func newOptions(w io.Writer, opts []Option) options {
	o := options{barWidth: defaultBarWidth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.color == nil {
		tty := isTerminal(w)
		o.color = &tty
	}
	return o
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
