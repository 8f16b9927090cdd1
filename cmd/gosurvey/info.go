package main

import (
	"fmt"

	"github.com/philipparndt/gosurvey/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoShortest int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a point file",
	Long:  "Show the point list, bounding box, centroid and pair distance statistics.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoShortest, "shortest", "s", 3, "Number of shortest pairs to list")
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]
	session := openSession(filename)
	pts := session.Points()
	result := analysis.AnalyzePoints(pts)

	fmt.Println("Point File Information")
	fmt.Println("======================")
	if session.Name() != "" {
		fmt.Printf("Name: %s\n", session.Name())
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Points:")
	for _, p := range pts {
		fmt.Printf("  %s\n", p)
	}
	fmt.Printf("  Count: %d (%d with height)\n\n", result.PointCount, result.HeightCount)

	if result.PointCount == 0 {
		return
	}

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))
	fmt.Printf("  Centroid: %s\n", analysis.FormatVector(result.Centroid))
	fmt.Printf("  Width (E): %.6f units\n", result.Dimensions.E)
	fmt.Printf("  Height (N): %.6f units\n", result.Dimensions.N)
	fmt.Printf("  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	if result.PairCount == 0 {
		return
	}

	fmt.Println("Pair Distances:")
	fmt.Printf("  Pairs: %d\n", result.PairCount)
	fmt.Printf("  Minimum: %.6f units\n", result.MinPairLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxPairLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgPairLength)

	if infoShortest > 0 {
		fmt.Println("\nShortest Pairs:")
		for _, pair := range analysis.FindShortestPairs(result, infoShortest) {
			fmt.Printf("  %s - %s: %s (bearing %s)\n", pair.FromID, pair.ToID,
				analysis.FormatMeasurement(pair.Length, ""), analysis.FormatAngle(pair.Bearing))
		}
	}
}
