// fluf: procedural phone wallpapers.
//
// Usage:
//
//	fluf list
//	fluf generate --style <name|slug> [-o file] [--width px] [--height px] [--thumb] [--seed n]
//	fluf gallery [-o sheet.png] [--dir thumbs/]
//	fluf pick
//	fluf serve [--listen :8080] [--open]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(surveyPicker{})

	// Start process
	if err := app.RunContext(ctx, os.Args); err != nil {
		switch value := err.(type) {
		case cli.ExitCoder:
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(value.ExitCode())
		default:
			fmt.Fprintln(os.Stderr, value.Error())
			os.Exit(1)
		}
	}
}
