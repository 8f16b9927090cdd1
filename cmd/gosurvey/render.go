package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/philipparndt/gosurvey/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	renderOutput   string
	renderSegments []string
	renderAngles   []string
	renderWidth    int
	renderHeight   int
	renderDark     bool
	renderNoAdj    bool
	renderNoFit    bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render the points, circles and annotations to a file",
	Long: `Render the plot to PNG, JPEG, GIF, TIFF, BMP, SVG or PDF, chosen by the output extension.
PDF export needs a local Chrome or Chromium installation.`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	defaults := viewer.DefaultExportOptions()
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file")
	renderCmd.Flags().StringArrayVar(&renderSegments, "segment", nil, "Segment annotation as FROM:TO (repeatable)")
	renderCmd.Flags().StringArrayVar(&renderAngles, "angle", nil, "Angle annotation as A:VERTEX:C (repeatable)")
	renderCmd.Flags().IntVar(&renderWidth, "width", defaults.Width, "Image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", defaults.Height, "Image height in pixels")
	renderCmd.Flags().BoolVar(&renderDark, "dark", false, "Use the dark theme")
	renderCmd.Flags().BoolVar(&renderNoAdj, "no-adjusted", false, "Hide the adjusted circle")
	renderCmd.Flags().BoolVar(&renderNoFit, "no-best-fit", false, "Hide the best-fit circle")

	renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, args []string) {
	session := openSession(args[0])

	opts := session.Options()
	opts.ShowAdjusted = !renderNoAdj
	opts.ShowBestFit = !renderNoFit
	session.SetOptions(opts)

	for _, arg := range append(append([]string{}, renderSegments...), renderAngles...) {
		if _, err := session.AnnotateIDs(strings.Split(arg, ":")...); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding annotation %q: %v\n", arg, err)
			os.Exit(1)
		}
	}

	export := viewer.DefaultExportOptions()
	export.Width = renderWidth
	export.Height = renderHeight
	if renderDark {
		export.Theme = viewer.DarkTheme()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := session.Export(ctx, renderOutput, export); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %d point(s) and %d annotation(s) to %s\n",
		len(session.Points()), len(session.Annotations()), renderOutput)
}
