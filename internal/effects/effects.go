// Package effects holds the transition registry. Each effect blends two
// frames under a progress value in [0,1]: progress 0 shows the outgoing
// image untouched, progress 1 the incoming one.
package effects

import (
	"fmt"
	"image"
	"sort"
)

// Blend writes the blend of from and to at the given progress into dst.
// All three images share the same bounds.
type Blend func(dst, from, to *image.RGBA, progress float64)

// Effect is a named transition.
type Effect struct {
	Name  string
	blend Blend
}

// Apply renders the transition at the given progress into dst.
func (e Effect) Apply(dst, from, to *image.RGBA, progress float64) {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	e.blend(dst, from, to, progress)
}

// DefaultName is the transition used when none is specified.
const DefaultName = "crossfade"

var registry = map[string]Blend{
	"crossfade":  crossfade,
	"fadeblack":  fadeBlack,
	"wipeleft":   wipe(dirLeft),
	"wiperight":  wipe(dirRight),
	"wipeup":     wipe(dirUp),
	"wipedown":   wipe(dirDown),
	"slideleft":  slide(dirLeft),
	"slideright": slide(dirRight),
	"circleopen": circleOpen,
	"pixelize":   pixelize,
}

// Lookup resolves a transition by name.
func Lookup(name string) (Effect, error) {
	blend, ok := registry[name]
	if !ok {
		return Effect{}, fmt.Errorf("unknown transition effect %q", name)
	}
	return Effect{Name: name, blend: blend}, nil
}

// Default returns the crossfade transition.
func Default() Effect {
	e, _ := Lookup(DefaultName)
	return e
}

// Names lists all registered transitions in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
