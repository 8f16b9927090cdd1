package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosurvey/pkg/geometry"
	"github.com/spf13/cobra"
)

var triA, triB, triC, triAngleA, triAngleB float64

var triangleCmd = &cobra.Command{
	Use:   "triangle",
	Short: "Solve a right triangle",
	Long: `Solve a right triangle with the right angle at C from two known values.
Sides a and b are the legs opposite the angles A and B, c is the hypotenuse.
Accepted pairs: (a,b), (a,c), (b,c), (a,A), (b,B), (c,A), (c,B). Angles are in degrees.`,
	Args: cobra.NoArgs,
	Run:  runTriangle,
}

func init() {
	rootCmd.AddCommand(triangleCmd)

	triangleCmd.Flags().Float64Var(&triA, "a", 0, "Leg a")
	triangleCmd.Flags().Float64Var(&triB, "b", 0, "Leg b")
	triangleCmd.Flags().Float64Var(&triC, "c", 0, "Hypotenuse c")
	triangleCmd.Flags().Float64Var(&triAngleA, "A", 0, "Angle A in degrees")
	triangleCmd.Flags().Float64Var(&triAngleB, "B", 0, "Angle B in degrees")
}

func runTriangle(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	known := func(name string, v float64) *float64 {
		if !flags.Changed(name) {
			return nil
		}
		return &v
	}

	t, err := geometry.SolveRightTriangle(geometry.RightTriangleInput{
		A:      known("a", triA),
		B:      known("b", triB),
		C:      known("c", triC),
		AngleA: known("A", triAngleA),
		AngleB: known("B", triAngleB),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error solving triangle: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Right Triangle")
	fmt.Println("==============")
	fmt.Printf("  a: %.6f\n", t.A)
	fmt.Printf("  b: %.6f\n", t.B)
	fmt.Printf("  c: %.6f\n", t.C)
	fmt.Printf("  A: %.6f°\n", t.AngleA)
	fmt.Printf("  B: %.6f°\n", t.AngleB)
	fmt.Printf("  C: 90°\n\n")
	fmt.Printf("  Area: %.6f square units\n", t.Area())
	fmt.Printf("  Perimeter: %.6f units\n", t.Perimeter())
}
