package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cityrent/zufang/internal/app"
	"github.com/cityrent/zufang/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zufang",
	Short: "Scrape rental listings and report average monthly rent",
	Long: `Zufang fetches paginated rental listings from a city-specific
real-estate site, extracts title, price and description for every entry, and
reports the mean monthly rent across everything it saw.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)

	// Lazily initialize the application before running commands (avoid
	// starting it for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		appCtx, err := app.New(cfg)
		if err != nil {
			return err
		}

		SetApp(appCtx)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if appCtx := GetApp(); appCtx != nil {
			appCtx.Close()
			SetApp(nil)
		}
	}

	// Disable the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SilenceUsage = true
}
