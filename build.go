package stacktobasics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

// BuildReport summarizes one static build.
type BuildReport struct {
	Pages   int
	Assets  int
	Elapsed time.Duration
}

// Builder writes every page of a Site as static files.
type Builder struct {
	Site      *Site
	OutputDir string
	StaticDir string
	// Protect lists source paths the output dir must not overlap.
	Protect []string
	Workers int
	Logger  *log.Logger
}

// Build cleans the output dir and writes HTML pages, feeds, the 404 page
// and assets. Pages render in parallel, bounded by Workers.
func (b *Builder) Build(ctx context.Context) (BuildReport, error) {
	start := time.Now()
	if err := cleanOutput(b.OutputDir, b.Protect...); err != nil {
		return BuildReport{}, err
	}

	workers := b.Workers
	if workers <= 0 {
		workers = 1
	}
	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, p := range b.Site.Pages() {
		p := p
		g.Go(func() error {
			if err := b.writeComponent(gctx, p.File(), p); err != nil {
				return fmt.Errorf("stacktobasics: page %s: %w", p.Path, err)
			}
			written.Add(1)
			return nil
		})
	}
	g.Go(func() error {
		return b.writeComponent(gctx, "404.html", Page{Path: "/404", Component: b.Site.NotFoundPage()})
	})
	g.Go(func() error {
		return b.writeStream(strings.TrimPrefix(b.Site.cfg.RSSPath, "/"), b.Site.WriteRSS)
	})
	g.Go(func() error {
		return b.writeStream("sitemap.xml", b.Site.WriteSitemap)
	})
	if err := g.Wait(); err != nil {
		return BuildReport{}, err
	}

	assets, err := b.copyAssets()
	if err != nil {
		return BuildReport{}, err
	}
	report := BuildReport{Pages: int(written.Load()), Assets: assets, Elapsed: time.Since(start)}
	if b.Logger != nil {
		b.Logger.Infof("built %d pages and %d assets into %s in %s", report.Pages, report.Assets, b.OutputDir, report.Elapsed)
	}
	return report, nil
}

func (b *Builder) writeComponent(ctx context.Context, rel string, p Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := p.Component.Render(ctx, &buf); err != nil {
		return err
	}
	return writeFile(filepath.Join(b.OutputDir, filepath.FromSlash(rel)), buf.Bytes())
}

func (b *Builder) writeStream(rel string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fmt.Errorf("stacktobasics: %s: %w", rel, err)
	}
	return writeFile(filepath.Join(b.OutputDir, filepath.FromSlash(rel)), buf.Bytes())
}

// copyAssets copies the embedded stylesheet and then the static dir into
// <out>/public, so user files override embedded ones.
func (b *Builder) copyAssets() (int, error) {
	dst := filepath.Join(b.OutputDir, "public")
	n := 0
	err := fs.WalkDir(EmbeddedAssets, "embedded", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := EmbeddedAssets.ReadFile(p)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(p, "embedded/")
		n++
		return writeFile(filepath.Join(dst, filepath.FromSlash(rel)), data)
	})
	if err != nil {
		return 0, fmt.Errorf("stacktobasics: copy embedded assets: %w", err)
	}
	if b.StaticDir == "" {
		return n, nil
	}
	err = filepath.WalkDir(b.StaticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == b.StaticDir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.StaticDir, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		n++
		return writeFile(filepath.Join(dst, rel), data)
	})
	if err != nil {
		return 0, fmt.Errorf("stacktobasics: copy static assets: %w", err)
	}
	return n, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// cleanOutput removes a previous build. It refuses a dir that is, or holds,
// the working directory, and one that overlaps any protected path.
func cleanOutput(dir string, protect ...string) error {
	if dir == "" {
		return fmt.Errorf("stacktobasics: refusing to clean empty output dir")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if within(abs, wd) {
		return fmt.Errorf("stacktobasics: refusing to clean output dir %q: it contains the working directory", dir)
	}
	for _, p := range protect {
		if p == "" {
			continue
		}
		pabs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		// A protected dir at or above the working dir holds every normal
		// output location, so only containment counts for it.
		if within(abs, pabs) || (within(pabs, abs) && !within(pabs, wd)) {
			return fmt.Errorf("stacktobasics: refusing to clean output dir %q: it overlaps %q", dir, p)
		}
	}
	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("stacktobasics: clean output: %w", err)
	}
	return os.MkdirAll(abs, 0o755)
}

// within reports whether path is parent or lies below it. Both must be
// absolute and clean.
func within(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
