package mtree

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gordian-engine/mtree/mthash"
	"github.com/gordian-engine/mtree/mthash/mtshake"
)

// minRecommendedHashWidth is the narrowest hash width, in bytes,
// that does not produce a warning at build time.
const minRecommendedHashWidth = 16

// BuildConfig is the configuration for [Build].
type BuildConfig struct {
	// Engine hashes raw leaf inputs and the combined child bit sequences.
	Engine mthash.Engine

	// HashWidth is the size, in bytes, of every hash in the tree.
	HashWidth int

	// Encoding controls how combined bit sequences are fed to the Engine.
	// Anyone verifying paths against the tree needs the same value;
	// [*Tree.Combiner] returns it along with the other settings.
	Encoding BitEncoding
}

// DefaultBuildConfig returns a config using 128 bits of SHAKE256 output
// and the [UnpackedBits] encoding.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Engine:    mtshake.Engine256{},
		HashWidth: mtshake.DefaultOutputSize,
		Encoding:  UnpackedBits,
	}
}

// Combiner returns the [Combiner] described by c.
func (c BuildConfig) Combiner() Combiner {
	return Combiner{
		Engine:    c.Engine,
		HashWidth: c.HashWidth,
		Encoding:  c.Encoding,
	}
}

// validate panics if there are any illegal settings in the configuration.
// It also warns about any suspect settings.
func (c BuildConfig) validate(log *slog.Logger) {
	var panicErrs error

	if c.Engine == nil {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("BuildConfig.Engine must not be nil"),
		)
	}

	if c.HashWidth <= 0 {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("BuildConfig.HashWidth must be positive (got %d)", c.HashWidth),
		)
	} else if c.HashWidth < minRecommendedHashWidth {
		log.Warn(
			"Hash width is below recommended minimum; collisions may be feasible",
			"hash_width", c.HashWidth,
			"recommended_min", minRecommendedHashWidth,
		)
	}

	if c.Encoding != UnpackedBits && c.Encoding != PackedBits {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("BuildConfig.Encoding has unknown value %d", uint8(c.Encoding)),
		)
	}

	if panicErrs != nil {
		panic(fmt.Errorf("BUG: %w", panicErrs))
	}
}
