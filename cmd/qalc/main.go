package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atinylittleshell/qalc/internal/styles"
)

var BUILD_VERSION = "dev"

func main() {
	root := newRootCmd(&app{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		var reported *reportedError
		if errors.As(err, &reported) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, styles.ERROR("error: "+err.Error()))
		os.Exit(1)
	}
}
