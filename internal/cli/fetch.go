package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cityrent/zufang/internal/output"
	"github.com/cityrent/zufang/internal/stats"
	"github.com/cityrent/zufang/internal/ui"
	"github.com/cityrent/zufang/pkg/models"
)

var (
	pages      int
	delay      time.Duration
	retries    int
	outputPath string
)

const previewRows = 5

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <city>",
	Short: "Fetch rental listings for a city and report the average rent",
	Long: `Walks the paginated listing results for the given city subdomain,
one page at a time with a pause between requests, extracts every well-formed
listing, and prints a preview plus the mean monthly rent.

Pages that answer with a bad status are skipped with a warning; entries
missing a title or price are treated as ad slots and dropped.`,
	Example: `  # Average rent in Shanghai, first page only
  zufang fetch sh

  # Walk five pages in Beijing with a 2s pause between requests
  zufang fetch bj --pages 5 --delay 2s

  # Retry dead pages instead of aborting the run
  zufang fetch sh --pages 10 --retries 2

  # Export everything that was extracted
  zufang fetch sh --pages 3 --output listings.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVarP(&pages, "pages", "p", 1, "Number of result pages to fetch")
	fetchCmd.Flags().DurationVarP(&delay, "delay", "d", time.Second, "Pause between page requests")
	fetchCmd.Flags().IntVar(&retries, "retries", 0, "Retries per page on network failure (0 aborts the run)")
	fetchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Export listings to a file (.csv or .json)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	city := strings.TrimSpace(args[0])
	if city == "" {
		return fmt.Errorf("city must not be empty")
	}

	appCtx := GetApp()
	cfg := appCtx.Config

	// Command flags override whatever config and file provided
	if cmd.Flags().Changed("pages") {
		cfg.Pages = pages
	}
	if cmd.Flags().Changed("delay") {
		cfg.Delay = delay
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retries = retries
	}

	fetcher := appCtx.Fetcher

	// A progress bar only makes sense across several pages
	if cfg.Pages > 1 {
		bar := progressbar.NewOptions(cfg.Pages,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(fmt.Sprintf("fetching %s", city)),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		fetcher.OnPage = func(models.PageResult) {
			_ = bar.Add(1)
		}
	}

	result, err := fetcher.FetchCity(context.Background(), city, cfg.Pages)
	if err != nil {
		return fmt.Errorf("fetch aborted: %w", err)
	}

	if len(result.Listings) == 0 {
		fmt.Println("No data fetched. The site may have blocked the request or returned no listings.")
		return nil
	}

	printPreview(result.Listings)
	printSummary(result)

	avg, ok := stats.AverageRent(result.Listings)
	if ok {
		fmt.Printf("Average monthly rent: %.2f RMB\n", avg)
	} else {
		fmt.Println("No priced listings found; average unavailable.")
	}

	if outputPath != "" {
		return saveListings(result, outputPath)
	}
	return nil
}

// printPreview prints the first few extracted rows.
func printPreview(listings []models.Listing) {
	n := len(listings)
	if n > previewRows {
		n = previewRows
	}

	for i := 0; i < n; i++ {
		l := listings[i]
		price := l.PriceText
		if !l.PriceValid {
			price = price + " (?)"
		}
		fmt.Printf("  %s %s  %s\n", ui.Bold(price), l.Title, ui.Dim(l.Detail))
	}
	if len(listings) > n {
		fmt.Printf("  %s\n", ui.Dim(fmt.Sprintf("... and %d more", len(listings)-n)))
	}
}

// printSummary prints listing counts and the price range.
func printSummary(result *models.FetchResult) {
	s := stats.Summarize(result.Listings)

	skipped := 0
	for _, p := range result.Pages {
		if p.Skipped {
			skipped++
		}
	}

	fmt.Printf("\n%s %d listings across %d pages",
		ui.Success("Fetched"), s.Listings, len(result.Pages))
	if skipped > 0 {
		fmt.Printf(" %s", ui.Warn(fmt.Sprintf("(%d skipped)", skipped)))
	}
	fmt.Println()

	if s.ValidPrices > 0 {
		fmt.Printf("Priced listings: %d (range %.0f-%.0f RMB)\n",
			s.ValidPrices, s.Min, s.Max)
	}
}

func saveListings(result *models.FetchResult, filepath string) error {
	var err error
	switch {
	case strings.HasSuffix(filepath, ".csv"):
		err = output.SaveCSV(result, filepath)
	case strings.HasSuffix(filepath, ".json"):
		err = output.SaveJSON(result, filepath)
	default:
		return fmt.Errorf("unsupported output format: %s (use .csv or .json)", filepath)
	}
	if err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}
	fmt.Printf("Saved to %s\n", filepath)
	return nil
}
