package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/gosurvey/pkg/analysis"
	"github.com/philipparndt/gosurvey/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchUnit string

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-run the circle report whenever the file changes",
	Args:  cobra.ExactArgs(1),
	Run:   runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchUnit, "unit", "u", "units", "Unit label for lengths")
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]
	session := openSession(filename)
	printWatchReport(session.Name(), session.Report())

	changed := make(chan struct{}, 1)
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	// Reloads run on this goroutine, the callback only signals
	err = fw.Watch(filename, func(string) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching file: %v\n", err)
		os.Exit(1)
	}
	fw.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", filename)
	for {
		select {
		case <-changed:
			if _, err := session.Reload(); err != nil {
				log.Printf("Reload failed: %v", err)
				continue
			}
			printWatchReport(session.Name(), session.Report())
		case <-sig:
			return
		}
	}
}

func printWatchReport(name string, report analysis.CircleReport) {
	fmt.Printf("\n--- %s ---\n", name)
	analysis.WriteCircleReport(os.Stdout, report, watchUnit)
}
