package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelbrot/pkg/batch"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var (
	casesPath string
	outDir    string

	width, height int
	workers       int
	flip          bool
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render a fixed list of Mandelbrot views to PNG files",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	flags := cmd.Flags()
	flags.StringVar(&casesPath, "cases", "", "JSON file of cases; the built-in sample cases when empty")
	flags.StringVarP(&outDir, "out", "o", ".", "directory the images are written to")
	flags.IntVar(&width, "width", batch.DefaultWidth, "image width in pixels")
	flags.IntVar(&height, "height", batch.DefaultHeight, "image height in pixels")
	flags.IntVar(&workers, "workers", 0, "rendering goroutines, 0 for one per CPU")
	flags.BoolVar(&flip, "flip", false, "put the largest imaginary part at the top")

	return cmd
}

func loadCases() ([]batch.Case, error) {
	if casesPath == "" {
		return batch.DefaultCases(), nil
	}

	f, err := os.Open(casesPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cases, err := batch.LoadCases(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", casesPath, err)
	}

	return cases, nil
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	cases, err := loadCases()
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Dir:     outDir,
		Width:   width,
		Height:  height,
		Workers: workers,
		Flip:    flip,
		Log:     log.Default(),
	}

	log.Printf("rendering %d cases into %s", len(cases), outDir)
	err = runner.Run(cmd.Context(), cases)
	if err != nil {
		return err
	}
	log.Printf("done")

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := mainCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
