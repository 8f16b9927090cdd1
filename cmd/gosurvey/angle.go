package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosurvey/internal/measurement"
	"github.com/philipparndt/gosurvey/pkg/geometry"
	"github.com/spf13/cobra"
)

var angleA, angleVertex, angleC string

var angleCmd = &cobra.Command{
	Use:   "angle [file]",
	Short: "Measure the angle at a vertex",
	Long:  "Measure the unsigned angle A-V-C in degrees, in the range [0, 180].",
	Args:  cobra.ExactArgs(1),
	Run:   runAngle,
}

func init() {
	rootCmd.AddCommand(angleCmd)

	angleCmd.Flags().StringVar(&angleA, "a", "", "ID of the first arm point")
	angleCmd.Flags().StringVar(&angleVertex, "vertex", "", "ID of the vertex")
	angleCmd.Flags().StringVar(&angleC, "c", "", "ID of the second arm point")

	angleCmd.MarkFlagRequired("a")
	angleCmd.MarkFlagRequired("vertex")
	angleCmd.MarkFlagRequired("c")
}

func runAngle(cmd *cobra.Command, args []string) {
	session := openSession(args[0])
	a := lookupPoint(session, angleA)
	v := lookupPoint(session, angleVertex)
	c := lookupPoint(session, angleC)

	fmt.Println("Angle Measurement")
	fmt.Println("=================")
	fmt.Println()

	m, err := measurement.Resolve(measurement.Angle(0, 1, 2), []geometry.Point{a, v, c})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error measuring angle: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(measurement.Describe(m))
}
