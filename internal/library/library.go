// Package library scans a directory of images and decodes them for
// display. Dimensions are read without decoding pixel data; full decodes
// are cached for the current page and its neighbours only.
package library

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/elektrokombinacija/mediaview/internal/geom"
	"github.com/elektrokombinacija/mediaview/internal/viewer/state"
)

var (
	// ErrNoImages is returned by Scan when a directory holds no decodable
	// image.
	ErrNoImages = errors.New("no images")

	// ErrOutOfRange is returned for an image index outside the library.
	ErrOutOfRange = errors.New("index out of range")
)

var extensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// Item describes one image file.
type Item struct {
	Path   string
	Format string

	// Displayed size, after EXIF orientation is applied.
	Width, Height int

	// EXIF orientation 1..8; 1 when absent.
	Orientation int
	Camera      string
}

// Name returns the file name of the item.
func (it Item) Name() string {
	return filepath.Base(it.Path)
}

// Library is an ordered set of images. Image, Retain and Cached are safe
// for concurrent use.
type Library struct {
	Dir   string
	Items []Item

	// Files with a known extension that could not be read
	Skipped []error

	maxDim int

	mu    sync.Mutex
	cache map[int]image.Image
}

// Scan lists the images in dir in file-name order. Decoded images larger
// than maxDim on either side are downscaled; maxDim <= 0 disables that.
func Scan(dir string, maxDim int) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}

	lib := &Library{
		Dir:    dir,
		maxDim: maxDim,
		cache:  make(map[int]image.Image),
	}
	for _, ent := range entries {
		if ent.IsDir() || !extensions[strings.ToLower(filepath.Ext(ent.Name()))] {
			continue
		}
		item, err := Inspect(filepath.Join(dir, ent.Name()))
		if err != nil {
			lib.Skipped = append(lib.Skipped, err)
			continue
		}
		lib.Items = append(lib.Items, item)
	}
	if len(lib.Items) == 0 {
		return nil, fmt.Errorf("library: %s: %w", dir, ErrNoImages)
	}
	return lib, nil
}

// Inspect reads an image's dimensions and EXIF metadata without decoding
// its pixels.
func Inspect(path string) (Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return Item{}, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Item{}, fmt.Errorf("decoding image config of %s: %w", path, err)
	}
	item := Item{
		Path:        path,
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Orientation: 1,
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Item{}, fmt.Errorf("seeking %s for exif: %w", path, err)
	}
	if x, err := exif.Decode(f); err == nil {
		readExif(&item, x)
	}
	if item.Orientation >= 5 {
		item.Width, item.Height = item.Height, item.Width
	}
	return item, nil
}

func readExif(item *Item, x *exif.Exif) {
	if tag, err := x.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil && o >= 1 && o <= 8 {
			item.Orientation = o
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil {
			item.Camera = strings.TrimSpace(strings.TrimRight(s, "\x00"))
		}
	}
}

// Len returns the number of images.
func (l *Library) Len() int {
	return len(l.Items)
}

// Pages returns the library as viewer pages keyed by file name.
func (l *Library) Pages() []state.Page {
	pages := make([]state.Page, len(l.Items))
	for i, it := range l.Items {
		pages[i] = state.Page{
			ID:   it.Name(),
			Size: geom.Sz(float64(it.Width), float64(it.Height)),
		}
	}
	return pages
}

// Index returns the position of the file called name, or -1.
func (l *Library) Index(name string) int {
	for i, it := range l.Items {
		if it.Name() == name {
			return i
		}
	}
	return -1
}

// Image returns image i decoded, upright and downscaled.
func (l *Library) Image(i int) (image.Image, error) {
	l.mu.Lock()
	img, ok := l.cache[i]
	l.mu.Unlock()
	if ok {
		return img, nil
	}
	if i < 0 || i >= len(l.Items) {
		return nil, fmt.Errorf("library: image %d: %w", i, ErrOutOfRange)
	}

	item := l.Items[i]
	f, err := os.Open(item.Path)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	defer f.Close()

	img, _, err = image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("library: decoding %s: %w", item.Name(), err)
	}
	img = Downscale(Orient(img, item.Orientation), l.maxDim)

	l.mu.Lock()
	l.cache[i] = img
	l.mu.Unlock()
	return img, nil
}

// Retain drops cached images that are not i or a neighbour of i.
func (l *Library) Retain(i int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.cache {
		if k < i-1 || k > i+1 {
			delete(l.cache, k)
		}
	}
}

// Cached reports whether image i is decoded.
func (l *Library) Cached(i int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.cache[i]
	return ok
}
