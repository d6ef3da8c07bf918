// Package render produces blended frames for the encoder and manages the
// reusable pixel buffers they are drawn into.
package render

import (
	"fmt"
	"image"

	"github.com/Jarutais/slidecast/internal/effects"
)

// Renderer draws one transition frame. Implementations return frames with
// the same bounds as the source images.
type Renderer interface {
	Render(dst, from, to *image.RGBA, effect effects.Effect, progress float64) error
}

// Software is a CPU renderer backed by the effect registry's blend
// functions.
type Software struct{}

func NewSoftware() *Software {
	return &Software{}
}

func (r *Software) Render(dst, from, to *image.RGBA, effect effects.Effect, progress float64) error {
	if from.Bounds() != to.Bounds() {
		return fmt.Errorf(
			"source images have mismatched bounds: %v vs %v",
			from.Bounds(), to.Bounds(),
		)
	}
	if dst.Bounds() != from.Bounds() {
		return fmt.Errorf(
			"destination bounds %v do not match source bounds %v",
			dst.Bounds(), from.Bounds(),
		)
	}

	effect.Apply(dst, from, to, progress)
	return nil
}
