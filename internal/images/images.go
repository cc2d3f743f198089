// Package images downloads card art and shrinks it for local use.
package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/zhubert/cardtray/internal/catalog"
	pErrors "github.com/zhubert/cardtray/internal/errors"
	"github.com/zhubert/cardtray/internal/logger"
	"github.com/zhubert/cardtray/internal/scrape"
)

// Format is an output encoding for optimized images.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// Ext returns the file extension for the format, with the dot.
func (f Format) Ext() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

// Options controls downloading and optimization.
type Options struct {
	Dir       string
	Optimize  bool
	Format    Format
	MaxWidth  int
	MaxHeight int
	Quality   int           // JPEG quality, 1-100
	Delay     time.Duration // pause between downloads
}

// DefaultOptions returns the settings used when the user accepts every default.
func DefaultOptions() Options {
	return Options{
		Dir:       "images",
		Optimize:  true,
		Format:    FormatJPEG,
		MaxWidth:  800,
		MaxHeight: 600,
		Quality:   85,
		Delay:     500 * time.Millisecond,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Dir == "" {
		o.Dir = d.Dir
	}
	if o.Format != FormatPNG {
		o.Format = FormatJPEG
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = d.MaxWidth
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = d.MaxHeight
	}
	if o.Quality < 1 || o.Quality > 100 {
		o.Quality = d.Quality
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	return o
}

// Result describes one downloaded card.
type Result struct {
	Name         string
	Path         string
	OriginalSize int
	FinalSize    int
	Err          error
}

// Reduction returns the size saved by optimization as a percentage.
func (r Result) Reduction() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return 100 * float64(r.OriginalSize-r.FinalSize) / float64(r.OriginalSize)
}

// Downloader fetches card images one at a time.
type Downloader struct {
	client *http.Client
	opts   Options
}

// NewDownloader creates a Downloader. A nil client gets a 30s timeout client.
func NewDownloader(client *http.Client, opts Options) *Downloader {
	if client == nil {
		client = scrape.HTTPClient(30 * time.Second)
	}
	return &Downloader{client: client, opts: opts.normalized()}
}

// Options returns the effective options.
func (d *Downloader) Options() Options {
	return d.opts
}

// DownloadAll downloads the image of every card, numbering files from
// startIndex. A failed card is reported in its Result and does not stop the
// rest. onResult, if set, is called after each card.
func (d *Downloader) DownloadAll(ctx context.Context, cards []catalog.Record, startIndex int, onResult func(Result)) ([]Result, error) {
	log := logger.WithComponent("images")

	if err := os.MkdirAll(d.opts.Dir, 0755); err != nil {
		return nil, pErrors.E(pErrors.Op("images.DownloadAll"), pErrors.KindIO, d.opts.Dir, err)
	}

	results := make([]Result, 0, len(cards))
	for i, card := range cards {
		if i > 0 && d.opts.Delay > 0 {
			select {
			case <-time.After(d.opts.Delay):
			case <-ctx.Done():
				return results, pErrors.E(pErrors.Op("images.DownloadAll"), pErrors.KindCanceled, ctx.Err())
			}
		}

		name := FileName(startIndex+i, card, d.opts)
		res := d.Download(ctx, card, name)
		if res.Err != nil {
			log.Warn("download failed", "card", card.Name, "error", res.Err)
		} else {
			log.Info("downloaded", "card", card.Name, "path", res.Path, "bytes", res.FinalSize)
		}
		results = append(results, res)
		if onResult != nil {
			onResult(res)
		}
		if ctx.Err() != nil {
			return results, pErrors.E(pErrors.Op("images.DownloadAll"), pErrors.KindCanceled, ctx.Err())
		}
	}
	return results, nil
}

// Download fetches one card image and writes it under the download dir.
func (d *Downloader) Download(ctx context.Context, card catalog.Record, fileName string) Result {
	res := Result{Name: card.Name}

	data, err := d.get(ctx, card.Image)
	if err != nil {
		res.Err = pErrors.ImageDownloadFailed(card.Image, err)
		return res
	}
	res.OriginalSize = len(data)

	final := data
	if d.opts.Optimize {
		// Optimization failures keep the original bytes
		if optimized, err := Optimize(data, d.opts); err == nil {
			final = optimized
		} else {
			logger.WithComponent("images").Warn("optimize failed, keeping original", "card", card.Name, "error", err)
		}
	}
	res.FinalSize = len(final)

	p := filepath.Join(d.opts.Dir, fileName)
	if err := os.WriteFile(p, final, 0644); err != nil {
		res.Err = pErrors.E(pErrors.Op("images.Download"), pErrors.KindIO, p, err)
		return res
	}
	res.Path = p
	return res
}

func (d *Downloader) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bad status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// FileName builds "NNN_<name><ext>". Optimized files take the extension of
// the output format; otherwise it comes from the image URL's f= parameter
// or its path, defaulting to .png.
func FileName(index int, card catalog.Record, opts Options) string {
	ext := ".png"
	if opts.Optimize {
		ext = opts.normalized().Format.Ext()
	} else if e := urlExt(card.Image); e != "" {
		ext = e
	}
	return fmt.Sprintf("%03d_%s%s", index, scrape.SanitizeFilename(card.Name), ext)
}

func urlExt(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if f := u.Query().Get("f"); f != "" {
		if e := path.Ext(f); e != "" {
			return strings.ToLower(e)
		}
	}
	return strings.ToLower(path.Ext(u.Path))
}

// Optimize decodes data, fits it inside MaxWidth x MaxHeight keeping the
// aspect ratio, and re-encodes it in the configured format. JPEG output
// flattens transparency onto white.
func Optimize(data []byte, opts Options) ([]byte, error) {
	opts = opts.normalized()

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, pErrors.E(pErrors.Op("images.Optimize"), pErrors.KindParse, "decode", err)
	}

	img := Fit(src, opts.MaxWidth, opts.MaxHeight)

	var buf bytes.Buffer
	switch opts.Format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: opts.Quality})
	}
	if err != nil {
		return nil, pErrors.E(pErrors.Op("images.Optimize"), pErrors.KindIO, "encode", err)
	}
	return buf.Bytes(), nil
}

// Fit scales src down to fit inside maxW x maxH. Images already small
// enough are returned unchanged.
func Fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
