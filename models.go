package gridview

const (
	// DefaultPageSize is the page size a viewer starts with.
	DefaultPageSize = 20

	// DefaultMaxPageSize is the largest page size accepted by default.
	// This protects the remote source from unreasonably large page requests.
	DefaultMaxPageSize = 100
)

// PageSizeOptions are the page sizes offered to users by default.
var PageSizeOptions = []int{5, 10, 20, 50}

// PageConfig holds page size configuration.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := gridview.NewPageConfig().WithMaxSize(50)
//	size := config.EffectiveSize(requested)
type PageConfig struct {
	// DefaultSize is the page size used when none is requested.
	DefaultSize int

	// MaxSize is the maximum allowed page size. Larger requests are capped
	// by EffectiveSize and rejected by Validate.
	MaxSize int
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultSize: 20
// - MaxSize: 100
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize: DefaultPageSize,
		MaxSize:     DefaultMaxPageSize,
	}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size > 0 {
		c.DefaultSize = size
	}
	return c
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = size
	}
	return c
}

// EffectiveSize returns the page size to use, applying defaults and caps.
// - If requested is zero or negative, returns DefaultSize
// - If requested exceeds MaxSize, returns MaxSize
// - Otherwise returns requested
func (c *PageConfig) EffectiveSize(requested int) int {
	if c == nil {
		c = NewPageConfig()
	}

	defaultSize := c.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}

	maxSize := c.maxSize()

	if requested <= 0 {
		return min(defaultSize, maxSize)
	}

	if requested > maxSize {
		return maxSize
	}

	return requested
}

// Validate returns an *InvalidParameterError when size is below 1 or above
// MaxSize. Unlike EffectiveSize, which caps silently, Validate is for
// explicit rejection of invalid requests.
func (c *PageConfig) Validate(size int) error {
	if c == nil {
		c = NewPageConfig()
	}

	if size < 1 {
		return &InvalidParameterError{Name: "pageSize", Value: size, Reason: "must be at least 1"}
	}

	if maxSize := c.maxSize(); size > maxSize {
		return &InvalidParameterError{
			Name:   "pageSize",
			Value:  size,
			Reason: "exceeds maximum allowed page size",
		}
	}

	return nil
}

func (c *PageConfig) maxSize() int {
	if c.MaxSize <= 0 {
		return DefaultMaxPageSize
	}
	return c.MaxSize
}
