package cmd

import (
	"fmt"

	"rating-dashboard/infrastructure/configuration"
	"rating-dashboard/infrastructure/widget"
	"rating-dashboard/interfaces/web"

	"github.com/spf13/cobra"
)

func newWidgetCommand() *cobra.Command {
	widgetCmd := &cobra.Command{
		Use:   "widget",
		Short: "Manage the embeddable rating widget",
	}

	var distDir, publicDir string
	var embedded bool
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Copy the widget build into the public directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if distDir == "" {
				distDir = configuration.C.Widget.DistDir
			}
			if publicDir == "" {
				publicDir = configuration.C.Widget.PublicDir
			}
			out := cmd.OutOrStdout()

			if embedded {
				result, err := widget.WriteScript(publicDir, web.WidgetScript())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ %s written to %s\n", result.Name, publicDir)
				return nil
			}

			report, err := widget.Deploy(distDir, publicDir)
			if err != nil {
				return err
			}
			for _, f := range report.Files {
				switch {
				case f.Copied:
					fmt.Fprintf(out, "✓ %s copied to %s\n", f.Name, publicDir)
				case f.Skipped:
					fmt.Fprintf(out, "- %s not built, skipped\n", f.Name)
				default:
					fmt.Fprintf(out, "✗ failed to copy %s: %s\n", f.Name, f.Error)
				}
			}
			fmt.Fprintln(out, "Deployment preparation complete")
			return nil
		},
	}
	deployCmd.Flags().StringVar(&distDir, "dist", "", "directory holding the widget build")
	deployCmd.Flags().StringVar(&publicDir, "public", "", "directory the server publishes the widget from")
	deployCmd.Flags().BoolVar(&embedded, "embedded", false, "publish the script bundled into this binary")

	widgetCmd.AddCommand(deployCmd)
	return widgetCmd
}
