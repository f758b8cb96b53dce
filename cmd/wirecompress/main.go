package main

import (
	"fmt"
	"io"
	"os"

	"github.com/iamNilotpal/wirecompress/pkg/errors"
)

func main() {
	if err := execute(&app{}, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs the CLI with the given arguments and streams. A failure is
// printed to stderr, and also logged once the logger exists. Metrics are
// logged and the logger synced whether or not the command succeeded.
func execute(a *app, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		if a.log != nil {
			if ve := errors.AsValidationError(err); ve != nil {
				a.log.Errorw("invalid compressor option", "field", ve.Field, "value", ve.Value, "error", ve.Err)
			} else {
				a.log.Errorw("command failed", "error", err)
			}
		}
	}

	a.teardown()
	return err
}
