package chart

// Option configures image rendering
type Option func(*config)

type config struct {
	width  int
	height int
}

// WithSize sets the image size in pixels
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		width:  640,
		height: 400,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
