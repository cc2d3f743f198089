// Package catalog loads the list of card records a gallery renders.
//
// A catalog is a JSON array. Each element names a card and points at its
// image, either with the keys written by `cardtray update`
// (name, image, local_image, alt, link) or with the generic keys
// (displayName, imagePath, altText). Loading yields the whole list or an
// error; never a partial list.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	pErrors "github.com/zhubert/cardtray/internal/errors"
	"github.com/zhubert/cardtray/internal/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// Item is one immutable catalog entry.
type Item struct {
	ID          string // Unique per load, even when display names repeat
	ImagePath   string
	AltText     string
	DisplayName string
	Link        string
}

// Record is the on-disk form of a card as written by the updater.
type Record struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	Link       string `json:"link,omitempty"`
	LocalImage string `json:"local_image,omitempty"`
	Alt        string `json:"alt,omitempty"`
}

// wireRecord accepts both key conventions.
type wireRecord struct {
	Record
	DisplayName string `json:"displayName"`
	ImagePath   string `json:"imagePath"`
	AltText     string `json:"altText"`
}

// Loader fetches catalogs over HTTP or from the local filesystem.
type Loader struct {
	httpClient *http.Client
}

// NewLoader creates a Loader with a default HTTP client.
func NewLoader() *Loader {
	return &Loader{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// NewLoaderWithClient creates a Loader with a custom HTTP client (for testing).
func NewLoaderWithClient(client *http.Client) *Loader {
	return &Loader{httpClient: client}
}

// Load reads the catalog at source, which may be an http(s) URL, a file://
// URL or a plain path. Canceling ctx abandons an in-flight fetch.
func (l *Loader) Load(ctx context.Context, source string) ([]Item, error) {
	log := logger.WithComponent("catalog")

	data, err := l.read(ctx, source)
	if err != nil {
		log.Warn("catalog load failed", "source", source, "error", err)
		return nil, err
	}

	items, err := Parse(source, data)
	if err != nil {
		log.Warn("catalog parse failed", "source", source, "error", err)
		return nil, err
	}

	log.Info("catalog loaded", "source", source, "items", len(items))
	return items, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, pErrors.CatalogCanceled(source, err)
	}

	u, err := url.Parse(source)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return l.fetch(ctx, source)
		case "file":
			return readFile(source, u.Path)
		}
	}
	return readFile(source, source)
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, pErrors.CatalogFetchFailed(source, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, pErrors.CatalogCanceled(source, ctxErr)
		}
		return nil, pErrors.CatalogFetchFailed(source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pErrors.CatalogStatus(source, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, pErrors.CatalogCanceled(source, ctxErr)
		}
		return nil, pErrors.CatalogFetchFailed(source, err)
	}
	return data, nil
}

// Local files are reported as network errors too: to the caller a missing
// file and an unreachable URL are the same failure.
func readFile(source, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pErrors.CatalogFetchFailed(source, err)
	}
	return data, nil
}

// Parse decodes catalog JSON and assigns item IDs. The IDs are derived from
// the source, position and name, so reloading the same catalog yields the
// same IDs.
func Parse(source string, data []byte) ([]Item, error) {
	var records []wireRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, pErrors.CatalogParseFailed(source, err)
	}

	items := make([]Item, 0, len(records))
	for i, r := range records {
		item := r.item()
		if item.DisplayName == "" {
			return nil, pErrors.CatalogParseFailed(source, fmt.Errorf("element %d has no display name", i))
		}
		if item.ImagePath == "" {
			return nil, pErrors.CatalogParseFailed(source, fmt.Errorf("element %d (%s) has no image", i, item.DisplayName))
		}
		item.ID = itemID(source, i, item.DisplayName)
		items = append(items, item)
	}
	return items, nil
}

func (r wireRecord) item() Item {
	item := Item{
		DisplayName: firstNonEmpty(r.Name, r.DisplayName),
		ImagePath:   firstNonEmpty(r.LocalImage, r.Image, r.ImagePath),
		AltText:     firstNonEmpty(r.Alt, r.AltText),
		Link:        r.Link,
	}
	item.DisplayName = strings.TrimSpace(item.DisplayName)
	if item.AltText == "" {
		item.AltText = item.DisplayName
	}
	return item
}

func itemID(source string, index int, name string) string {
	key := fmt.Sprintf("%s\x00%d\x00%s", source, index, name)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsCanceled reports whether a Load error came from context cancellation.
func IsCanceled(err error) bool {
	return pErrors.Is(err, pErrors.KindCanceled) || errors.Is(err, context.Canceled)
}
