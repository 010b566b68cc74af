package stats

// Default comparison configuration constants.
const (
	DefaultAlpha      = 0.05
	DefaultMinSamples = 2
)

// Option applies a configuration option to a comparison.
type Option func(*config)

type config struct {
	alpha      float64
	minSamples int
}

// WithAlpha sets the significance threshold. Values outside (0, 1) are ignored.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		if alpha > 0 && alpha < 1 {
			c.alpha = alpha
		}
	}
}

// WithMinSamples sets the minimum outcomes each record needs.
func WithMinSamples(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.minSamples = n
		}
	}
}
