package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs in JSON format")
	cmd.PersistentFlags().String("proxy", "", "HTTP/SOCKS5 proxy for page requests (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "10s", "Hard timeout per page request")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("referer", "", "Custom referer header")
	cmd.PersistentFlags().String("config", "", "Path to a YAML configuration file (optional)")
}
