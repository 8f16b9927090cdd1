package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosurvey/pkg/analysis"
	"github.com/philipparndt/gosurvey/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	circleUnit       string
	circleCrossCheck bool
)

var circleCmd = &cobra.Command{
	Use:   "circle [file]",
	Short: "Estimate the circle through the points",
	Long: `Compute the adjusted center (mean of the circumcenters of all point triples)
and the algebraic best-fit circle. Each estimate is reported on its own; if one
cannot be computed the other is still shown.`,
	Args: cobra.ExactArgs(1),
	Run:  runCircle,
}

func init() {
	rootCmd.AddCommand(circleCmd)

	circleCmd.Flags().StringVarP(&circleUnit, "unit", "u", "units", "Unit label for lengths")
	circleCmd.Flags().BoolVar(&circleCrossCheck, "cross-check", false, "Also solve the best fit by QR decomposition")
}

func runCircle(cmd *cobra.Command, args []string) {
	session := openSession(args[0])

	fmt.Println("Circle Estimation")
	fmt.Println("=================")
	fmt.Printf("File: %s\n\n", args[0])

	analysis.WriteCircleReport(os.Stdout, session.Report(), circleUnit)

	if !circleCrossCheck {
		return
	}

	fmt.Println()
	fmt.Println("=== Best-fit cross-check (QR) ===")
	qr, err := analysis.CrossCheckBestFit(geometry.Coordinates(session.Points()))
	if err != nil {
		fmt.Printf("Not available: %v\n", err)
		return
	}
	fmt.Printf("Center:       %s\n", analysis.FormatVector(qr.Center))
	fmt.Printf("Radius:       %s\n", analysis.FormatMeasurement(qr.Radius, circleUnit))
}
