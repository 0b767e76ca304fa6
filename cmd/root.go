// Package cmd is the rating-dashboard command line.
package cmd

import (
	"fmt"
	"os"

	"rating-dashboard/domain/repository"
	"rating-dashboard/infrastructure/clients/ratingapi"
	"rating-dashboard/infrastructure/configuration"
	"rating-dashboard/infrastructure/logger"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	baseURL  string
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "rating-dashboard",
		Short:         "Star-rating admin dashboard and widget server",
		Long:          `Serve the rating admin dashboard and the embeddable rating widget.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configuration.LoadEnvFromFile("config.env", ".env")
			configuration.ApplyDefaults(&configuration.C)

			level := opts.logLevel
			if level == "" {
				level = configuration.C.Logger.Level
			}
			if level != "" {
				if err := logger.SetLevel(level); err != nil {
					return err
				}
			}
			if opts.baseURL != "" {
				configuration.C.RatingAPI.BaseURL = opts.baseURL
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "rating API base URL")

	root.AddCommand(newServeCommand())
	root.AddCommand(newRatingsCommand())
	root.AddCommand(newWidgetCommand())
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func newRatingService() repository.IRatingService {
	return ratingapi.NewRatingClient(&ratingapi.Config{
		BaseURL: configuration.C.RatingAPI.BaseURL,
		Timeout: configuration.C.RatingAPI.Timeout,
	})
}
