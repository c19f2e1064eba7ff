// Command unsupseg runs the acoustic pattern discovery drivers: embedding
// segments, clustering embeddings, learning convolutional filters and
// sampling random excerpts from frame batches.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
