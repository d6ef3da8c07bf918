package render

import (
	"image"
	"sync"
)

// Pool recycles *image.RGBA frame buffers, keyed by bounds so frames of
// different sizes never alias. Buffers are acquired per frame and must be
// returned once the encoder has consumed them.
type Pool struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

func NewPool() *Pool {
	return &Pool{pools: make(map[string]*sync.Pool)}
}

// Get returns a buffer covering rect, reusing a pooled one when available.
func (p *Pool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.String()

	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[key]
		if !ok {
			pool = &sync.Pool{
				New: func() any {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

// Put returns a buffer to the pool. Nil buffers are ignored.
func (p *Pool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.String()

	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if ok {
		pool.Put(img)
	}
}
