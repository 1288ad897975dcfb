package glod

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"multiverse/src/logx"

	"golang.org/x/sync/errgroup"
)

// TierSizes are the prepared raster sizes, largest first
var TierSizes = []int{64, 32, 16, 8, 4, 2}

// TierOriginal marks the full resolution set
const TierOriginal = 0

// Set maps a piece symbol to its image
type Set map[string]image.Image

// TierFor picks the tier for an on-screen square size in pixels
func TierFor(pixelSize float64) int {
	switch {
	case pixelSize >= 48:
		return TierOriginal
	case pixelSize >= 24:
		return 64
	case pixelSize >= 12:
		return 32
	case pixelSize >= 6:
		return 16
	case pixelSize >= 3:
		return 8
	case pixelSize >= 2:
		return 4
	default:
	}
	return 2
}

type Selector struct {
	tiers map[int]Set
}

// Choose returns the prepared set for the pixel size, never rasterizing
func (s *Selector) Choose(pixelSize float64) Set {
	return s.tiers[TierFor(pixelSize)]
}

func (s *Selector) Tier(size int) Set {
	return s.tiers[size]
}

// Build rasterizes every glyph at every tier. The first failing glyph
// cancels the rest.
func Build(ctx context.Context, glyphs map[string]Glyph) (*Selector, error) {
	sel := &Selector{tiers: make(map[int]Set, len(TierSizes)+1)}
	sel.tiers[TierOriginal] = make(Set, len(glyphs))
	for _, size := range TierSizes {
		sel.tiers[size] = make(Set, len(glyphs))
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for name, glyph := range glyphs {
		g.Go(func() error {
			imgs := make(map[int]image.Image, len(TierSizes)+1)
			orig, err := glyph.Original()
			if err != nil {
				return fmt.Errorf("glyph %s: %w", name, err)
			}
			imgs[TierOriginal] = orig
			for _, size := range TierSizes {
				if err := ctx.Err(); err != nil {
					return err
				}
				img, err := glyph.Rasterize(size)
				if err != nil {
					return fmt.Errorf("glyph %s at %d: %w", name, size, err)
				}
				imgs[size] = img
			}

			mu.Lock()
			defer mu.Unlock()
			for size, img := range imgs {
				sel.tiers[size][name] = img
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sel, nil
}

// Loader builds the selector in the background. Until it is done
// Selector returns nil and the painter leaves pieces out.
type Loader struct {
	logx     logx.Logger
	glyphs   map[string]Glyph
	fallback map[string]Glyph

	sel  atomic.Pointer[Selector]
	done chan struct{}
	err  error
	once sync.Once
}

// NewLoader takes the mapped glyphs and the glyphs to use instead when
// the mapped ones fail to build. Symbols only known to fallback are
// added to the mapped set.
func NewLoader(glyphs, fallback map[string]Glyph, l logx.Logger) *Loader {
	merged := make(map[string]Glyph, len(fallback))
	for k, v := range fallback {
		merged[k] = v
	}
	for k, v := range glyphs {
		merged[k] = v
	}
	return &Loader{
		logx:     l,
		glyphs:   merged,
		fallback: fallback,
		done:     make(chan struct{}),
	}
}

func (ld *Loader) Start(ctx context.Context) {
	ld.once.Do(func() {
		go ld.run(ctx)
	})
}

func (ld *Loader) run(ctx context.Context) {
	defer close(ld.done)

	sel, err := Build(ctx, ld.glyphs)
	if err != nil && ctx.Err() == nil && len(ld.fallback) > 0 {
		ld.logx.Warnf("piece assets: %v, using fallback glyphs", err)
		sel, err = Build(ctx, ld.fallback)
	}
	if err != nil {
		ld.err = err
		ld.logx.Errorf("piece assets: %v", err)
		return
	}
	ld.logx.Infof("piece assets ready: %d glyphs, %d tiers", len(sel.tiers[TierOriginal]), len(TierSizes))
	ld.sel.Store(sel)
}

// Selector is nil until the load finished successfully
func (ld *Loader) Selector() *Selector {
	return ld.sel.Load()
}

// Wait blocks until the load finished or ctx ends
func (ld *Loader) Wait(ctx context.Context) error {
	select {
	case <-ld.done:
		return ld.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
