package gobrush

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything Build needs besides the solids.
type Config struct {
	// WorldScale converts map units to world units.
	WorldScale float64
	// WeldThreshold is the map-unit distance under which seam vertices are
	// snapped together. Zero disables welding.
	WeldThreshold   float64
	CullHiddenFaces bool

	DefaultTextureSize int
	TexelScale         float64
	Textures           TextureSizer
	SkipTextures       []string

	ColliderMode ColliderMode

	// Origin is subtracted from all output positions.
	Origin mgl64.Vec3

	SplitEpsilon          float64
	MatchTolerance        float64
	CullDistanceTolerance float64
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		WorldScale:            1,
		WeldThreshold:         DefaultWeldThreshold,
		CullHiddenFaces:       true,
		DefaultTextureSize:    DefaultTextureSize,
		TexelScale:            1,
		ColliderMode:          ColliderBoxAndConvex,
		SplitEpsilon:          DefaultSplitEpsilon,
		MatchTolerance:        DefaultMatchTolerance,
		CullDistanceTolerance: DefaultCullDistanceTolerance,
	}
}

// Validate reports the first out of range field.
func (c Config) Validate() error {
	switch {
	case c.WorldScale <= 0:
		return fmt.Errorf("world scale %g must be positive: %w", c.WorldScale, ErrInvalidConfig)
	case c.WeldThreshold < 0:
		return fmt.Errorf("weld threshold %g must not be negative: %w", c.WeldThreshold, ErrInvalidConfig)
	case c.DefaultTextureSize <= 0:
		return fmt.Errorf("default texture size %d must be positive: %w", c.DefaultTextureSize, ErrInvalidConfig)
	case c.TexelScale <= 0:
		return fmt.Errorf("texel scale %g must be positive: %w", c.TexelScale, ErrInvalidConfig)
	case c.ColliderMode < ColliderNone || c.ColliderMode > ColliderMergedConcave:
		return fmt.Errorf("collider mode %v: %w", c.ColliderMode, ErrInvalidConfig)
	case c.SplitEpsilon <= 0:
		return fmt.Errorf("split epsilon %g must be positive: %w", c.SplitEpsilon, ErrInvalidConfig)
	case c.MatchTolerance <= 0:
		return fmt.Errorf("match tolerance %g must be positive: %w", c.MatchTolerance, ErrInvalidConfig)
	case c.CullDistanceTolerance <= 0:
		return fmt.Errorf("cull distance tolerance %g must be positive: %w", c.CullDistanceTolerance, ErrInvalidConfig)
	}
	return nil
}

func (c Config) vertexOptions() VertexOptions {
	return VertexOptions{
		SplitEpsilon:   c.SplitEpsilon,
		MatchTolerance: c.MatchTolerance,
		WeldThreshold:  c.WeldThreshold,
	}
}

func (c Config) meshOptions() MeshOptions {
	return MeshOptions{
		Scale:              c.WorldScale,
		Origin:             c.Origin,
		TexelScale:         c.TexelScale,
		DefaultTextureSize: c.DefaultTextureSize,
		Textures:           c.Textures,
		SkipTextures:       c.SkipTextures,
	}
}

func (c Config) colliderOptions() ColliderOptions {
	return ColliderOptions{
		Mode:   c.ColliderMode,
		Scale:  c.WorldScale,
		Origin: c.Origin,
	}
}
