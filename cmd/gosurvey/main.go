package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosurvey/internal/app"
	"github.com/philipparndt/gosurvey/pkg/geometry"
	"github.com/philipparndt/gosurvey/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gosurvey",
	Short: "A CLI tool for circle estimation and survey measurements",
	Long: `gosurvey reads planar survey points and estimates the circle they lie on,
both as the mean of all triple circumcenters and as an algebraic least-squares fit.
It also measures segments and angles between points and renders annotated plots.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openSession loads a point file or exits
func openSession(filename string) *app.Session {
	session, err := app.Open(filename, app.DefaultOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing point file: %v\n", err)
		os.Exit(1)
	}
	return session
}

// lookupPoint resolves a point id or exits
func lookupPoint(session *app.Session, id string) geometry.Point {
	for _, p := range session.Points() {
		if p.ID == id {
			return p
		}
	}
	fmt.Fprintf(os.Stderr, "Error: unknown point %q\n", id)
	os.Exit(1)
	return geometry.Point{}
}
