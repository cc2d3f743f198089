package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/cardtray/internal/catalog"
	"github.com/zhubert/cardtray/internal/export"
	"github.com/zhubert/cardtray/internal/images"
	"github.com/zhubert/cardtray/internal/logger"
	"github.com/zhubert/cardtray/internal/scrape"
	"github.com/zhubert/cardtray/internal/ui"
)

// updateOptions holds the flags of the update command
type updateOptions struct {
	listURL  string
	output   string
	xlsx     string
	ssrOnly  bool
	download bool
	yes      bool
	format   string
	delay    time.Duration
	images   images.Options
}

func newUpdateCmd() *cobra.Command {
	opts := &updateOptions{images: images.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh the support card catalog from the wiki",
		Long: `Fetches the support card list, merges it with the existing catalog file and
optionally downloads the images of new cards.

Cards already in the catalog keep their downloaded images. New images are
numbered after the existing cards. Unless --yes is given, the options are
confirmed interactively first.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(logger.UpdateLogPath); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Close()

			if !opts.yes {
				if err := promptUpdateOptions(opts); err != nil {
					return err
				}
			}
			opts.images.Format = images.Format(opts.format)
			opts.images.Delay = opts.delay
			return runUpdate(cmd.Context(), cmd.OutOrStdout(), opts, nil)
		},
	}

	defaults := images.DefaultOptions()
	f := cmd.Flags()
	f.StringVar(&opts.listURL, "url", scrape.DefaultListURL, "Card list page to scrape")
	f.StringVarP(&opts.output, "output", "o", "support_cards.json", "Catalog file to update")
	f.StringVar(&opts.xlsx, "xlsx", "", "Also write the catalog as an Excel sheet to this path")
	f.BoolVar(&opts.ssrOnly, "ssr-only", false, "Keep only SSR cards")
	f.BoolVar(&opts.download, "download", false, "Download images of new cards")
	f.BoolVarP(&opts.yes, "yes", "y", false, "Skip the interactive prompts")
	f.StringVar(&opts.images.Dir, "dir", defaults.Dir, "Directory for downloaded images")
	f.BoolVar(&opts.images.Optimize, "optimize", defaults.Optimize, "Resize and re-encode downloaded images")
	f.StringVar(&opts.format, "format", string(defaults.Format), "Optimized image format (jpeg or png)")
	f.IntVar(&opts.images.MaxWidth, "max-width", defaults.MaxWidth, "Maximum optimized image width")
	f.IntVar(&opts.images.MaxHeight, "max-height", defaults.MaxHeight, "Maximum optimized image height")
	f.IntVar(&opts.images.Quality, "quality", defaults.Quality, "JPEG quality (1-100)")
	f.DurationVar(&opts.delay, "delay", defaults.Delay, "Pause between image downloads")

	return cmd
}

func promptUpdateOptions(opts *updateOptions) error {
	quality := strconv.Itoa(opts.images.Quality)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Only SSR cards?").
				Value(&opts.ssrOnly),
			huh.NewConfirm().
				Title("Download images of new cards?").
				Value(&opts.download),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Optimize images?").
				Description("Resize to fit the maximum size and re-encode").
				Value(&opts.images.Optimize),
			huh.NewSelect[string]().
				Title("Image format").
				Options(
					huh.NewOption("JPEG", string(images.FormatJPEG)),
					huh.NewOption("PNG", string(images.FormatPNG)),
				).
				Value(&opts.format),
			huh.NewInput().
				Title("JPEG quality").
				Placeholder("85").
				Validate(validateQuality).
				Value(&quality),
		).WithHideFunc(func() bool { return !opts.download }),
	).WithTheme(ui.FormTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	q, err := strconv.Atoi(quality)
	if err != nil {
		return err
	}
	opts.images.Quality = q
	return nil
}

func validateQuality(s string) error {
	q, err := strconv.Atoi(s)
	if err != nil || q < 1 || q > 100 {
		return fmt.Errorf("quality must be a number from 1 to 100")
	}
	return nil
}

// runUpdate fetches the card list and rewrites the catalog. fetcher and the
// downloader client default to real HTTP clients when nil.
func runUpdate(ctx context.Context, out io.Writer, opts *updateOptions, fetcher *scrape.Fetcher) error {
	log := logger.WithComponent("update")

	if fetcher == nil {
		fetcher = scrape.NewFetcher(nil)
	}

	existing, err := catalog.ReadRecords(opts.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Existing catalog: %d cards\n", len(existing))

	current, err := fetcher.FetchCards(ctx, opts.listURL, opts.ssrOnly)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d cards on the site\n", len(current))

	fresh := scrape.FindNew(current, existing)
	merged := scrape.Merge(current, existing)
	log.Info("catalog compared", "existing", len(existing), "current", len(current), "new", len(fresh))

	if len(fresh) == 0 {
		fmt.Fprintln(out, "No new cards.")
	} else {
		fmt.Fprintf(out, "%d new card(s):\n", len(fresh))
		for _, c := range fresh {
			fmt.Fprintf(out, "  + %s\n", c.Name)
		}
	}

	if opts.download && len(fresh) > 0 {
		paths, err := downloadNew(ctx, out, opts, fresh, len(existing)+1)
		scrape.ApplyLocalImages(merged, paths)
		if err != nil {
			// Keep what was downloaded before the interruption
			if werr := catalog.WriteRecords(opts.output, merged); werr != nil {
				log.Error("failed to save partial catalog", "error", werr)
			}
			return err
		}
	}

	if err := catalog.WriteRecords(opts.output, merged); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %d cards to %s (%d with local images)\n", len(merged), opts.output, scrape.CountLocal(merged))

	if opts.xlsx != "" {
		if err := export.WriteCatalogXLSX(opts.xlsx, merged); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", opts.xlsx)
	}
	return nil
}

func downloadNew(ctx context.Context, out io.Writer, opts *updateOptions, fresh []catalog.Record, startIndex int) (map[string]string, error) {
	d := images.NewDownloader(nil, opts.images)
	total := len(fresh)
	done := 0

	results, err := d.DownloadAll(ctx, fresh, startIndex, func(r images.Result) {
		done++
		if r.Err != nil {
			fmt.Fprintf(out, "[%d/%d] %s: %v\n", done, total, r.Name, r.Err)
			return
		}
		if r.OriginalSize != r.FinalSize {
			fmt.Fprintf(out, "[%d/%d] %s (%.1f%% smaller)\n", done, total, r.Name, r.Reduction())
		} else {
			fmt.Fprintf(out, "[%d/%d] %s\n", done, total, r.Name)
		}
	})

	paths := make(map[string]string, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		paths[r.Name] = r.Path
	}
	fmt.Fprintf(out, "Downloaded %d image(s), %d failed\n", len(paths), failed)
	return paths, err
}
