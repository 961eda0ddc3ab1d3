package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "formsync-demo",
		Short: "Demo server for URL query string form state sync",
		Long: `formsync-demo serves a single form page whose state lives on the
server and stays in sync with the browser URL:

  • the URL hydrates the form on load and on history navigation
  • form edits are debounced and written back with history.replaceState
  • excluded fields never touch the URL
  • Prometheus metrics on /metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("formsync-demo %s (%s)\n", version, commit)
		},
	}
}
