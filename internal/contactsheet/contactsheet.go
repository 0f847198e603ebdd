// Package contactsheet tiles extracted video frames into a single JPEG.
package contactsheet

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"

	"vaultview/internal/frames"
	"vaultview/internal/workers"
)

// ErrNoFrames is returned when there is nothing to tile.
var ErrNoFrames = errors.New("no frames to render")

// Options controls the sheet layout.
type Options struct {
	Columns   int // default 4
	TileWidth int // default 320
	Gap       int // pixels around and between tiles
	Quality   int // JPEG quality, default 85
}

// DefaultOptions returns the layout used when a field is left zero.
func DefaultOptions() Options {
	return Options{Columns: 4, TileWidth: 320, Gap: 4, Quality: 85}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Columns <= 0 {
		o.Columns = d.Columns
	}
	if o.TileWidth <= 0 {
		o.TileWidth = d.TileWidth
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = d.Quality
	}
	return o
}

// Render decodes each frame, scales it to the tile width and lays the tiles
// out left to right, top to bottom in frame order.
func Render(fs []frames.Frame, opts Options) ([]byte, error) {
	if len(fs) == 0 {
		return nil, ErrNoFrames
	}
	opts = opts.withDefaults()

	tiles, err := scaleTiles(fs, opts.TileWidth)
	if err != nil {
		return nil, err
	}
	tileHeight := 0
	for _, tile := range tiles {
		if h := tile.Bounds().Dy(); h > tileHeight {
			tileHeight = h
		}
	}

	cols := opts.Columns
	if len(tiles) < cols {
		cols = len(tiles)
	}
	rows := (len(tiles) + cols - 1) / cols

	width := cols*opts.TileWidth + (cols+1)*opts.Gap
	height := rows*tileHeight + (rows+1)*opts.Gap
	sheet := imaging.New(width, height, color.Black)

	for i, tile := range tiles {
		col, row := i%cols, i/cols
		x := opts.Gap + col*(opts.TileWidth+opts.Gap)
		y := opts.Gap + row*(tileHeight+opts.Gap)
		// center shorter tiles vertically
		y += (tileHeight - tile.Bounds().Dy()) / 2
		sheet = imaging.Paste(sheet, tile, image.Pt(x, y))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, sheet, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode contact sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// scaleTiles decodes and resizes the frames on one goroutine per CPU. The
// error reported is that of the lowest failing frame.
func scaleTiles(fs []frames.Frame, width int) ([]image.Image, error) {
	tiles := make([]image.Image, len(fs))
	errs := make([]error, len(fs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := workers.ForCPU(len(fs)); w > 0; w-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				img, err := imaging.Decode(bytes.NewReader(fs[i].Data))
				if err != nil {
					errs[i] = fmt.Errorf("failed to decode frame %d: %w", fs[i].Index, err)
					continue
				}
				tiles[i] = imaging.Resize(img, width, 0, imaging.Lanczos)
			}
		}()
	}
	for i := range fs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return tiles, nil
}
