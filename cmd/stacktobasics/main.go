// Command stacktobasics indexes, builds and previews the blog.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/zinbo/stacktobasics"
)

var (
	configPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:           "stacktobasics",
	Short:         "Static blog generator for Stack to Basics",
	Long:          "Indexes Markdown posts into SQLite, renders paginated listings, tag pages and posts, and writes them out as a static site or serves them for preview.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", stacktobasics.EnvOr("SITE_CONFIG", "site.yaml"), "Path to the site configuration")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
}

// loadApp reads the configuration and returns an App over it.
func loadApp() (*stacktobasics.App, error) {
	cfg, err := stacktobasics.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	var opts []stacktobasics.Option
	if quiet {
		logger := log.New("stacktobasics")
		logger.SetLevel(log.WARN)
		logger.SetHeader("${time_rfc3339} ${level} ${prefix}")
		opts = append(opts, stacktobasics.WithLogger(logger))
	}
	return stacktobasics.New(cfg, opts...), nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
