package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour standard style names
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StylePink       = "pink"
)

var standardStyles = []string{
	StyleDark, StyleLight, StyleNoTTY, StyleASCII, StyleDracula, StyleTokyoNight, StylePink,
}

// rendererPool hands out TermRenderers per option set.
// glamour.TermRenderer is not safe for concurrent Render calls, so each
// caller borrows its own.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[Options]*sync.Pool
}

var globalPool = &rendererPool{
	pools: make(map[Options]*sync.Pool),
}

func (p *rendererPool) getPool(opts Options) *sync.Pool {
	p.mu.RLock()
	if pool, ok := p.pools[opts]; ok {
		p.mu.RUnlock()
		return pool
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.pools[opts]; ok {
		return pool
	}

	pool := &sync.Pool{
		New: func() any {
			renderer, err := createRenderer(opts)
			if err != nil {
				return nil
			}
			return renderer
		},
	}
	p.pools[opts] = pool
	return pool
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.getPool(opts).Get().(*glamour.TermRenderer); ok && r != nil {
		return r, nil
	}
	// New failed; surface the error
	return createRenderer(opts)
}

func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}
	p.getPool(opts).Put(renderer)
}

// IsStandardStyle reports whether style names a glamour built-in
func IsStandardStyle(style string) bool {
	for _, s := range standardStyles {
		if s == style {
			return true
		}
	}
	return false
}

// StandardStyles lists the built-in markdown style names
func StandardStyles() []string {
	out := make([]string, len(standardStyles))
	copy(out, standardStyles)
	return out
}

func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if IsStandardStyle(opts.Style) {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStylePath(opts.Style))
	}

	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	r, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r, nil
}

// ClearCache drops every pooled renderer
func ClearCache() {
	globalPool.mu.Lock()
	globalPool.pools = make(map[Options]*sync.Pool)
	globalPool.mu.Unlock()
}

// CacheSize returns the number of distinct option sets seen
func CacheSize() int {
	globalPool.mu.RLock()
	defer globalPool.mu.RUnlock()
	return len(globalPool.pools)
}
