// Package scrape reads the support card list page of the wiki and keeps the
// local catalog in step with it.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/zhubert/cardtray/internal/catalog"
	pErrors "github.com/zhubert/cardtray/internal/errors"
	"github.com/zhubert/cardtray/internal/logger"
)

const (
	// DefaultListURL is the page listing every support card.
	DefaultListURL = "https://umamusu.wiki/Game:List_of_Support_Cards"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

var spaceRe = regexp.MustCompile(`\s+`)

// HTTPClient returns a client with sane dial and handshake timeouts.
func HTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Fetcher downloads and parses the card list page.
type Fetcher struct {
	client   *http.Client
	backoffs []time.Duration
}

// NewFetcher creates a Fetcher. A nil client gets HTTPClient(25s).
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = HTTPClient(25 * time.Second)
	}
	return &Fetcher{
		client:   client,
		backoffs: []time.Duration{0, 500 * time.Millisecond, 1 * time.Second, 2 * time.Second},
	}
}

// FetchCards fetches listURL and extracts its cards. Network errors and
// 5xx/429 responses are retried with backoff.
func (f *Fetcher) FetchCards(ctx context.Context, listURL string, ssrOnly bool) ([]catalog.Record, error) {
	body, base, err := f.fetch(ctx, listURL)
	if err != nil {
		return nil, pErrors.ScrapeFailed(listURL, err)
	}
	defer body.Close()

	cards, err := ExtractCards(body, base, ssrOnly)
	if err != nil {
		return nil, pErrors.E(pErrors.Op("scrape.FetchCards"), pErrors.KindParse, listURL, err)
	}

	logger.WithComponent("scrape").Info("cards extracted", "url", listURL, "cards", len(cards), "ssrOnly", ssrOnly)
	return cards, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (io.ReadCloser, *url.URL, error) {
	log := logger.WithComponent("scrape")

	var resp *http.Response
	for i, d := range f.backoffs {
		if d > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

		resp, err = f.client.Do(req)
		last := i == len(f.backoffs)-1
		if err != nil {
			if ctx.Err() != nil || last {
				return nil, nil, err
			}
			log.Warn("fetch failed, retrying", "url", rawURL, "attempt", i+1, "error", err)
			continue
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			if last {
				return nil, nil, fmt.Errorf("server error: %s", resp.Status)
			}
			log.Warn("server error, retrying", "url", rawURL, "status", resp.StatusCode)
			continue
		}
		break
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return resp.Body, resp.Request.URL, nil
}

// ExtractCards finds every file span on the page and turns it into a
// record. Names lose their "Game:" prefix; images prefer the 2x srcset
// entry; relative URLs are resolved against base.
func ExtractCards(r io.Reader, base *url.URL, ssrOnly bool) ([]catalog.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	cards := []catalog.Record{}
	doc.Find(`span[typeof="mw:File"]`).Each(func(_ int, span *goquery.Selection) {
		link := span.Find("a").First()
		img := span.Find("img").First()
		if link.Length() == 0 || img.Length() == 0 {
			return
		}

		name := link.AttrOr("title", "")
		name = strings.TrimPrefix(name, "Game:")
		name = strings.TrimSpace(name)
		if ssrOnly && !strings.Contains(name, "SSR") {
			return
		}

		image := resolve(base, img.AttrOr("src", ""))
		if hi := srcset2x(img.AttrOr("srcset", "")); hi != "" {
			image = resolve(base, hi)
		}

		if name == "" || image == "" {
			return
		}
		cards = append(cards, catalog.Record{
			Name:  name,
			Image: image,
			Link:  resolve(base, link.AttrOr("href", "")),
		})
	})
	return cards, nil
}

func srcset2x(srcset string) string {
	for _, entry := range strings.Split(srcset, ",") {
		entry = strings.TrimSpace(entry)
		if strings.HasSuffix(entry, "2x") {
			if fields := strings.Fields(entry); len(fields) > 0 {
				return fields[0]
			}
		}
	}
	return ""
}

func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	ru, err := url.Parse(ref)
	if err != nil || base == nil {
		return ref
	}
	return base.ResolveReference(ru).String()
}

// FindNew returns the cards of current whose names are not in existing.
func FindNew(current, existing []catalog.Record) []catalog.Record {
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Name] = true
	}

	fresh := []catalog.Record{}
	for _, c := range current {
		if !known[c.Name] {
			fresh = append(fresh, c)
		}
	}
	return fresh
}

// Merge returns current with the local image of any card already known
// in existing carried over. Cards that disappeared from the site are dropped.
func Merge(current, existing []catalog.Record) []catalog.Record {
	local := make(map[string]string, len(existing))
	for _, c := range existing {
		if c.LocalImage != "" {
			local[c.Name] = c.LocalImage
		}
	}

	merged := make([]catalog.Record, len(current))
	for i, c := range current {
		if c.LocalImage == "" {
			c.LocalImage = local[c.Name]
		}
		merged[i] = c
	}
	return merged
}

// ApplyLocalImages sets LocalImage on the records named in paths.
func ApplyLocalImages(records []catalog.Record, paths map[string]string) {
	for i := range records {
		if p, ok := paths[records[i].Name]; ok {
			records[i].LocalImage = p
		}
	}
}

// CountLocal returns how many records have a downloaded image.
func CountLocal(records []catalog.Record) int {
	n := 0
	for _, c := range records {
		if c.LocalImage != "" {
			n++
		}
	}
	return n
}

// SanitizeFilename makes a card name safe to use as a file name.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(spaceRe.ReplaceAllString(name, " "))

	if runes := []rune(name); len(runes) > 100 {
		name = string(runes[:100])
	}
	return name
}
