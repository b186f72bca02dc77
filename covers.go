package stacktobasics

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/zinbo/stacktobasics/content"
)

const (
	maxCoverWidth = 800
	jpegQuality   = 80
	coversSubdir  = "covers"
)

// Cover describes one processed cover image.
type Cover struct {
	OriginalName string
	Width        int
	Height       int
	Size         int
}

// processImage decodes an image from src, resizes it to maxCoverWidth when
// wider, and encodes it as JPEG. Returns metadata and the encoded bytes.
func processImage(src io.Reader, originalName string) (Cover, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Cover{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxCoverWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Cover{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return Cover{
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
	}, buf.Bytes(), nil
}

// localCover reports whether a front matter cover refers to a file in the
// content directory rather than a site path or remote URL.
func localCover(cover string) bool {
	return cover != "" && !strings.HasPrefix(cover, "/") && !strings.Contains(cover, "://")
}

// ProcessCovers resizes every local cover image into staticDir/covers as
// <slug>.jpg and points the post at the processed file. Covers whose output
// is newer than the source are left alone.
func ProcessCovers(ctx context.Context, contentDir, staticDir string, posts []content.Post) ([]content.Post, error) {
	out := make([]content.Post, len(posts))
	copy(out, posts)
	dir := filepath.Join(staticDir, coversSubdir)
	for i, p := range out {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !localCover(p.Cover) {
			continue
		}
		src := filepath.Join(contentDir, filepath.FromSlash(p.Cover))
		name := p.Slug + ".jpg"
		dst := filepath.Join(dir, name)
		if err := processCoverFile(src, dst); err != nil {
			return nil, fmt.Errorf("stacktobasics: cover for %s: %w", p.Slug, err)
		}
		out[i].Cover = "/public/" + coversSubdir + "/" + name
	}
	return out, nil
}

func processCoverFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && !dstInfo.ModTime().Before(srcInfo.ModTime()) {
		return nil
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	_, data, err := processImage(f, filepath.Base(src))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create covers dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write cover: %w", err)
	}
	return nil
}
