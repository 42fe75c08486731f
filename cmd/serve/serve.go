package main

import (
	"context"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelbrot/internal/server"
	"github.com/willbeason/mandelbrot/pkg/view"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var (
	addr string

	width, height int
	maxIter       int32
	workers       int
	origins       []string
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered views over HTTP and an interactive websocket viewer",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", ":8080", "listen address")
	flags.IntVar(&width, "width", 700, "default image width in pixels")
	flags.IntVar(&height, "height", 500, "default image height in pixels")
	flags.Int32Var(&maxIter, "iter", view.DefaultMaxIter, "default iteration budget")
	flags.IntVar(&workers, "workers", 0, "rendering goroutines per request, 0 for one per CPU")
	flags.StringSliceVar(&origins, "origin", nil, "extra websocket origin patterns to accept")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	srv := server.New(server.Config{
		Addr:           addr,
		Width:          width,
		Height:         height,
		MaxIter:        maxIter,
		Workers:        workers,
		OriginPatterns: origins,
		Log:            log.Default(),
	})

	return srv.ListenAndServe(cmd.Context())
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
