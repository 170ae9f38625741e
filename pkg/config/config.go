// Package config holds the tunable constants the extractor and
// quality tools run with.
package config

// Config mirrors the original system's compile-time constants as a
// plain struct with a constructor default, rather than reading a
// config file.
type Config struct {
	TextureWidth  int
	TextureHeight int
	QualityMode   bool

	DepthBufferWidth          int
	DepthBufferHeight         int
	OcclusionCullingThreshold float64

	QualityBlur               bool
	QualityBlurRadius         int
	QualityShowFaultIntensity bool
}

// DefaultConfig returns the extractor's default tunables.
func DefaultConfig() Config {
	return Config{
		TextureWidth:  1024,
		TextureHeight: 1024,
		QualityMode:   false,

		DepthBufferWidth:          256,
		DepthBufferHeight:         256,
		OcclusionCullingThreshold: 0.1,

		QualityBlur:               true,
		QualityBlurRadius:         2,
		QualityShowFaultIntensity: false,
	}
}
