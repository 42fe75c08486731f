package main

import (
	"context"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/view"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	Width  = 800
	Height = 600

	MaxIterations = 256
)

var (
	viewport escape.Viewport

	width, height int
	maxIter       int32
	workers       int
	flip          bool
	out           string
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one view of the Mandelbrot set to a PNG",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	flags := cmd.Flags()
	flags.Var(view.NewViewportValue(view.Overview, &viewport), "viewport",
		"preset name or minReal,maxReal,minImag,maxImag")
	flags.IntVar(&width, "width", Width, "image width in pixels")
	flags.IntVar(&height, "height", Height, "image height in pixels")
	flags.Int32Var(&maxIter, "iter", MaxIterations, "iteration budget")
	flags.IntVar(&workers, "workers", 0, "rendering goroutines, 0 for one per CPU")
	flags.BoolVar(&flip, "flip", false, "put the largest imaginary part at the top")
	flags.StringVarP(&out, "out", "o", "mandelbrot.png", "output file")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	start := time.Now()
	counts, err := escape.Render(cmd.Context(), escape.Grid{Width: width, Height: height}, viewport, maxIter,
		escape.WithWorkers(workers))
	if err != nil {
		return err
	}

	img := palette.Image(counts, width, height, maxIter, flip)
	err = palette.SavePNG(out, img)
	if err != nil {
		return err
	}

	log.Printf("%s (%dx%d, %s, max_iter=%d) in %s", out, width, height, viewport, maxIter,
		time.Since(start).Round(time.Millisecond))

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
