package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosurvey/internal/measurement"
	"github.com/philipparndt/gosurvey/pkg/geometry"
	"github.com/spf13/cobra"
)

var measureFrom, measureTo string

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure the segment between two points",
	Long: `Measure ΔE, ΔN, distance and bearing from one point to another.
When both points carry a height, ΔH, slope distance and elevation angle are shown too.`,
	Args: cobra.ExactArgs(1),
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().StringVar(&measureFrom, "from", "", "ID of the first point")
	measureCmd.Flags().StringVar(&measureTo, "to", "", "ID of the second point")

	measureCmd.MarkFlagRequired("from")
	measureCmd.MarkFlagRequired("to")
}

func runMeasure(cmd *cobra.Command, args []string) {
	session := openSession(args[0])
	a := lookupPoint(session, measureFrom)
	b := lookupPoint(session, measureTo)

	fmt.Println("Point-to-Point Measurement")
	fmt.Println("==========================")
	fmt.Printf("\nFrom: %s\n", a)
	fmt.Printf("To:   %s\n\n", b)

	m, err := measurement.Resolve(measurement.Segment(0, 1), []geometry.Point{a, b})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error measuring segment: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(measurement.Describe(m))
}
