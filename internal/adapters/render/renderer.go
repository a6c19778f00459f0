// Package render turns a card view-model into a PNG on disk: template
// execution, headless-browser rasterization and an idempotent image cache.
package render

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tabriszx/algoassist/internal/domain/card"
	"github.com/tabriszx/algoassist/pkg/logger"
	"github.com/tabriszx/algoassist/pkg/metrics"
)

//go:embed card.html
var cardTemplate string

const (
	defaultWidth = 1170
	defaultScale = 2.0
)

// Rasterize renders HTML to PNG bytes. The default implementation drives a
// headless Chrome; tests swap in a stub.
type Rasterize func(ctx context.Context, html string, width int, scale float64) ([]byte, error)

// Renderer produces profile card images under a cache directory.
type Renderer struct {
	cardDir   string
	width     int
	scale     float64
	tmpl      *template.Template
	rasterize Rasterize
	log       logger.Logger
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithWidth sets the rasterization viewport width in pixels.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithScale sets the device scale factor.
func WithScale(scale float64) Option {
	return func(r *Renderer) {
		if scale > 0 {
			r.scale = scale
		}
	}
}

// WithRasterize replaces the rasterization backend.
func WithRasterize(fn Rasterize) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.rasterize = fn
		}
	}
}

// WithLogger sets a custom logger for the renderer.
func WithLogger(log logger.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a Renderer writing cards under cardDir.
func New(cardDir string, opts ...Option) (*Renderer, error) {
	tmpl, err := template.New("card").Parse(cardTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	r := &Renderer{
		cardDir:   cardDir,
		width:     defaultWidth,
		scale:     defaultScale,
		tmpl:      tmpl,
		rasterize: chromeRasterize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// CardPath returns where the card image for a display name lives.
func (r *Renderer) CardPath(name string) string {
	return filepath.Join(r.cardDir, name+".png")
}

// Render produces the card image for ctx's identity and returns its path.
// An existing image short-circuits the render entirely; a failed
// rasterization leaves nothing behind.
func (r *Renderer) Render(ctx context.Context, c card.Context) (string, error) {
	out := r.CardPath(c.Name)
	if _, err := os.Stat(out); err == nil {
		metrics.RecordCardCacheHit()
		if r.log != nil {
			r.log.Debug(ctx, "card cache hit", logger.String("name", c.Name))
		}
		return out, nil
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, c); err != nil {
		metrics.RecordRenderError()
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	png, err := r.rasterize(ctx, sb.String(), r.width, r.scale)
	if err != nil {
		metrics.RecordRenderError()
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if err := r.writeAtomic(out, png); err != nil {
		metrics.RecordRenderError()
		return "", err
	}

	metrics.RecordCardRendered()
	if r.log != nil {
		r.log.Info(ctx, "card rendered", logger.String("path", out))
	}
	return out, nil
}

// writeAtomic lands the image under a throwaway name first so a crash or
// full disk never leaves a partial card at the cached path.
func (r *Renderer) writeAtomic(out string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmp := filepath.Join(filepath.Dir(out), fmt.Sprintf(".card-%s.tmp", uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
