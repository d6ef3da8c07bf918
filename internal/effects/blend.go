package effects

import (
	"image"
	"math"
)

type direction int

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
)

// pixelize block size at mid-transition, in pixels
const maxBlockSize = 32

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func crossfade(dst, from, to *image.RGBA, p float64) {
	n := len(dst.Pix)
	for i := 0; i < n; i++ {
		dst.Pix[i] = lerpByte(from.Pix[i], to.Pix[i], p)
	}
}

// fadeBlack dips to black at mid-transition before revealing the incoming
// image, like ffmpeg's fadeblack xfade.
func fadeBlack(dst, from, to *image.RGBA, p float64) {
	n := len(dst.Pix)
	if p < 0.5 {
		// fade the outgoing image down
		scale := 1 - p*2
		for i := 0; i < n; i += 4 {
			dst.Pix[i] = uint8(float64(from.Pix[i]) * scale)
			dst.Pix[i+1] = uint8(float64(from.Pix[i+1]) * scale)
			dst.Pix[i+2] = uint8(float64(from.Pix[i+2]) * scale)
			dst.Pix[i+3] = from.Pix[i+3]
		}
		return
	}
	scale := (p - 0.5) * 2
	for i := 0; i < n; i += 4 {
		dst.Pix[i] = uint8(float64(to.Pix[i]) * scale)
		dst.Pix[i+1] = uint8(float64(to.Pix[i+1]) * scale)
		dst.Pix[i+2] = uint8(float64(to.Pix[i+2]) * scale)
		dst.Pix[i+3] = to.Pix[i+3]
	}
}

// wipe reveals the incoming image behind a straight edge sweeping across
// the frame in the given direction.
func wipe(dir direction) Blend {
	return func(dst, from, to *image.RGBA, p float64) {
		b := dst.Bounds()
		w, h := b.Dx(), b.Dy()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var revealed bool
				switch dir {
				case dirLeft:
					revealed = x >= int(float64(w)*(1-p))
				case dirRight:
					revealed = x < int(float64(w)*p)
				case dirUp:
					revealed = y >= int(float64(h)*(1-p))
				case dirDown:
					revealed = y < int(float64(h)*p)
				}
				off := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
				src := from
				if revealed {
					src = to
				}
				copy(dst.Pix[off:off+4], src.Pix[off:off+4])
			}
		}
	}
}

// slide pushes the outgoing image off-screen while the incoming one
// follows it in.
func slide(dir direction) Blend {
	return func(dst, from, to *image.RGBA, p float64) {
		b := dst.Bounds()
		w, h := b.Dx(), b.Dy()
		shift := int(float64(w) * p)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var srcX int
				var src *image.RGBA
				switch dir {
				case dirLeft:
					srcX = x + shift
					src = from
					if srcX >= w {
						srcX -= w
						src = to
					}
				default: // dirRight
					srcX = x - shift
					src = from
					if srcX < 0 {
						srcX += w
						src = to
					}
				}
				dstOff := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
				srcOff := src.PixOffset(b.Min.X+srcX, b.Min.Y+y)
				copy(dst.Pix[dstOff:dstOff+4], src.Pix[srcOff:srcOff+4])
			}
		}
	}
}

// circleOpen reveals the incoming image inside a circle growing from the
// center of the frame.
func circleOpen(dst, from, to *image.RGBA, p float64) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	cx, cy := float64(w)/2, float64(h)/2
	maxRadius := math.Hypot(cx, cy)
	radius := p * maxRadius
	r2 := radius * radius

	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			off := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			src := from
			if radius > 0 && dx*dx+dy*dy <= r2 {
				src = to
			}
			copy(dst.Pix[off:off+4], src.Pix[off:off+4])
		}
	}
}

// pixelize crossfades through coarse blocks; the block size peaks at
// mid-transition and falls back to single pixels at either end.
func pixelize(dst, from, to *image.RGBA, p float64) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()

	block := 1 + int(maxBlockSize*(1-math.Abs(2*p-1)))
	for y := 0; y < h; y++ {
		sy := (y / block) * block
		for x := 0; x < w; x++ {
			sx := (x / block) * block
			dstOff := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			srcOff := dst.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			dst.Pix[dstOff] = lerpByte(from.Pix[srcOff], to.Pix[srcOff], p)
			dst.Pix[dstOff+1] = lerpByte(from.Pix[srcOff+1], to.Pix[srcOff+1], p)
			dst.Pix[dstOff+2] = lerpByte(from.Pix[srcOff+2], to.Pix[srcOff+2], p)
			dst.Pix[dstOff+3] = lerpByte(from.Pix[srcOff+3], to.Pix[srcOff+3], p)
		}
	}
}
