// Package source decodes the input still images and normalizes them to a
// single even-aligned frame size.
package source

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"os"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Load decodes the images at the given paths, preserving order. All frames
// are converted to RGBA and scaled to the first image's dimensions, rounded
// down to even values so the encoder gets a valid yuv420p frame size.
// Decoding runs on up to workers goroutines.
func Load(ctx context.Context, paths []string, workers int) ([]*image.RGBA, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no image paths given")
	}
	if workers < 1 {
		workers = 1
	}

	first, err := decode(paths[0])
	if err != nil {
		return nil, err
	}

	width := first.Bounds().Dx() &^ 1
	height := first.Bounds().Dy() &^ 1
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("image %s is too small: %dx%d", paths[0], width, height)
	}
	target := image.Rect(0, 0, width, height)

	frames := make([]*image.RGBA, len(paths))
	frames[0] = normalize(first, target)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 1; i < len(paths); i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decode(paths[i])
			if err != nil {
				return err
			}
			frames[i] = normalize(img, target)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return frames, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// normalize converts img to RGBA at the target bounds, scaling with
// Catmull-Rom when the sizes differ.
func normalize(img image.Image, target image.Rectangle) *image.RGBA {
	out := image.NewRGBA(target)

	if img.Bounds().Dx() == target.Dx() && img.Bounds().Dy() == target.Dy() {
		draw.Draw(out, target, img, img.Bounds().Min, draw.Src)
		return out
	}

	xdraw.CatmullRom.Scale(out, target, img, img.Bounds(), xdraw.Src, nil)
	return out
}
