package main

import (
	"context"
	"errors"
	"os"

	"github.com/MimeLyc/vtt-batch-translator/internal/service"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			service.NewDefaultErrorHandler().Handle(err)
		}
		os.Exit(1)
	}
}
