package pdfutils

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/sync/errgroup"
)

// PreviewOptions control RenderPreviews.
type PreviewOptions struct {
	OutputPath   string
	BaseName     string
	ImageFormat  string
	ImageDPI     int
	ImageQuality int
	Jobs         int
}

// RenderPreviews rasterises every page of the PDF at pdfPath and saves the
// images as <BaseName>-<page>.<ImageFormat> in OutputPath. Pages are
// rendered one after the other, encoding runs on up to Jobs goroutines.
func RenderPreviews(pdfPath string, opts PreviewOptions) ([]string, error) {
	if opts.ImageFormat != "jpg" && opts.ImageFormat != "png" {
		return nil, fmt.Errorf("unsupported image format %q", opts.ImageFormat)
	}
	if opts.ImageDPI <= 0 {
		return nil, fmt.Errorf("invalid DPI %d", opts.ImageDPI)
	}
	if opts.BaseName == "" {
		base := filepath.Base(pdfPath)
		opts.BaseName = base[:len(base)-len(filepath.Ext(base))]
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	imgDoc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, err
	}
	defer imgDoc.Close()

	if err := os.MkdirAll(opts.OutputPath, os.ModePerm); err != nil {
		return nil, err
	}

	g := new(errgroup.Group)
	g.SetLimit(opts.Jobs)

	var paths []string
	for i := 0; i < imgDoc.NumPage(); i++ {
		pageImg, err := imgDoc.ImageDPI(i, float64(opts.ImageDPI))
		if err != nil {
			g.Wait()
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}

		imagePath := filepath.Join(
			opts.OutputPath,
			fmt.Sprintf("%s-%d.%s", opts.BaseName, i+1, opts.ImageFormat),
		)
		paths = append(paths, imagePath)

		g.Go(func() error {
			return WriteImage(pageImg, imagePath, opts.ImageFormat, opts.ImageQuality)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func WriteImage(img image.Image, name string, format string, quality int) error {
	if format == "jpg" {
		return writeJPGImage(img, name, quality)
	}

	return writePNGImage(img, name)
}

func writeJPGImage(img image.Image, name string, quality int) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer fd.Close()
	return jpeg.Encode(fd, img, &jpeg.Options{Quality: quality})
}

func writePNGImage(img image.Image, name string) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer fd.Close()
	return png.Encode(fd, img)
}
