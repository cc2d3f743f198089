package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/cardtray/internal/catalog"
	"github.com/zhubert/cardtray/internal/images"
	"github.com/zhubert/cardtray/internal/scrape"
)

const updateListPage = `<html><body>
<span typeof="mw:File"><a href="/Game:Alpha" title="Game:Alpha (SSR)"><img src="/img/alpha.png"></a></span>
<span typeof="mw:File"><a href="/Game:Beta" title="Game:Beta (SSR)"><img src="/img/beta.png"></a></span>
<span typeof="mw:File"><a href="/Game:Gamma" title="Game:Gamma (SR)"><img src="/img/gamma.png"></a></span>
</body></html>`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: 100, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func newWikiServer(t *testing.T) *httptest.Server {
	t.Helper()
	data := pngBytes(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, updateListPage)
	})
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testUpdateOptions(srv *httptest.Server, dir string) *updateOptions {
	opts := images.DefaultOptions()
	opts.Dir = filepath.Join(dir, "images")
	opts.Delay = 0
	return &updateOptions{
		listURL: srv.URL + "/list",
		output:  filepath.Join(dir, "support_cards.json"),
		images:  opts,
	}
}

func TestRunUpdate_MergesWithExisting(t *testing.T) {
	srv := newWikiServer(t)
	dir := t.TempDir()
	opts := testUpdateOptions(srv, dir)

	existing := []catalog.Record{{Name: "Alpha (SSR)", Image: srv.URL + "/img/alpha.png", LocalImage: "images/001_Alpha.jpg"}}
	if err := catalog.WriteRecords(opts.output, existing); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}

	var out bytes.Buffer
	if err := runUpdate(context.Background(), &out, opts, scrape.NewFetcher(srv.Client())); err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}

	records, err := catalog.ReadRecords(opts.output)
	if err != nil {
		t.Fatalf("Failed to read catalog: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(records))
	}
	if records[0].LocalImage != "images/001_Alpha.jpg" {
		t.Errorf("Expected Alpha to keep its local image, got %q", records[0].LocalImage)
	}
	if records[1].LocalImage != "" {
		t.Errorf("Expected no download without --download, got %q", records[1].LocalImage)
	}

	for _, want := range []string{"Existing catalog: 1 cards", "2 new card(s)", "+ Beta (SSR)", "+ Gamma (SR)", "Saved 3 cards"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestRunUpdate_SSROnly(t *testing.T) {
	srv := newWikiServer(t)
	opts := testUpdateOptions(srv, t.TempDir())
	opts.ssrOnly = true

	var out bytes.Buffer
	if err := runUpdate(context.Background(), &out, opts, scrape.NewFetcher(srv.Client())); err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}

	records, _ := catalog.ReadRecords(opts.output)
	if len(records) != 2 {
		t.Fatalf("Expected 2 SSR cards, got %d", len(records))
	}
	for _, r := range records {
		if !strings.Contains(r.Name, "SSR") {
			t.Errorf("Expected only SSR cards, got %q", r.Name)
		}
	}
}

func TestRunUpdate_DownloadsNewCards(t *testing.T) {
	srv := newWikiServer(t)
	dir := t.TempDir()
	opts := testUpdateOptions(srv, dir)
	opts.download = true

	existing := []catalog.Record{{Name: "Alpha (SSR)", Image: srv.URL + "/img/alpha.png", LocalImage: "kept.jpg"}}
	if err := catalog.WriteRecords(opts.output, existing); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}

	var out bytes.Buffer
	if err := runUpdate(context.Background(), &out, opts, scrape.NewFetcher(srv.Client())); err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}

	records, _ := catalog.ReadRecords(opts.output)
	if records[0].LocalImage != "kept.jpg" {
		t.Errorf("Expected existing card not to be downloaded again, got %q", records[0].LocalImage)
	}
	for _, r := range records[1:] {
		if r.LocalImage == "" {
			t.Errorf("Expected %q to have a local image", r.Name)
			continue
		}
		if _, err := os.Stat(r.LocalImage); err != nil {
			t.Errorf("Expected image file for %q: %v", r.Name, err)
		}
		// New files are numbered after the existing cards
		if base := filepath.Base(r.LocalImage); strings.HasPrefix(base, "001_") {
			t.Errorf("Expected numbering to start after existing cards, got %q", base)
		}
	}
	if !strings.Contains(out.String(), "Downloaded 2 image(s), 0 failed") {
		t.Errorf("Expected download summary, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "(3 with local images)") {
		t.Errorf("Expected local image count, got:\n%s", out.String())
	}
}

func TestRunUpdate_WritesXLSX(t *testing.T) {
	srv := newWikiServer(t)
	dir := t.TempDir()
	opts := testUpdateOptions(srv, dir)
	opts.xlsx = filepath.Join(dir, "cards.xlsx")

	var out bytes.Buffer
	if err := runUpdate(context.Background(), &out, opts, scrape.NewFetcher(srv.Client())); err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}
	if _, err := os.Stat(opts.xlsx); err != nil {
		t.Errorf("Expected xlsx file: %v", err)
	}
}

func TestRunUpdate_BadExistingCatalog(t *testing.T) {
	srv := newWikiServer(t)
	opts := testUpdateOptions(srv, t.TempDir())
	if err := os.WriteFile(opts.output, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runUpdate(context.Background(), &out, opts, scrape.NewFetcher(srv.Client())); err == nil {
		t.Error("Expected an error for a corrupt catalog")
	}
}

func TestValidateQuality(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"85", false},
		{"1", false},
		{"100", false},
		{"0", true},
		{"101", true},
		{"high", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateQuality(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateQuality(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNewUpdateCmd_Defaults(t *testing.T) {
	cmd := newUpdateCmd()

	tests := []struct {
		flag string
		want string
	}{
		{"url", scrape.DefaultListURL},
		{"output", "support_cards.json"},
		{"format", "jpeg"},
		{"quality", "85"},
		{"dir", "images"},
	}
	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("Expected flag --%s", tt.flag)
			continue
		}
		if f.DefValue != tt.want {
			t.Errorf("Flag --%s: expected default %q, got %q", tt.flag, tt.want, f.DefValue)
		}
	}
}
