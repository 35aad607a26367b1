package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tonearm/internal/actions"
	"tonearm/internal/services"
)

var (
	promptColor = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed)
	noteColor   = color.New(color.FgYellow)
)

// runInteractiveLoop drives one numbered-list workflow: prompt, parse,
// apply. Parse errors and recoverable action failures are printed and the
// loop continues; "q" or end of input ends the loop cleanly. The apply
// callback receives each index of a parsed range in ascending order.
func runInteractiveLoop(in io.Reader, out io.Writer, itemCount int, caps actions.CapabilitySet, apply func(index int, action actions.Action) error) error {
	if itemCount == 0 {
		return nil
	}
	scanner := bufio.NewScanner(in)
	for {
		promptColor.Fprintf(out, "> %s, q=quit: ", caps.Help())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cmd, err := actions.Parse(scanner.Text(), itemCount, caps)
		if errors.Is(err, actions.ErrQuit) {
			return nil
		}
		var parseErr *actions.ParseError
		if errors.As(err, &parseErr) {
			errorColor.Fprintf(out, "%s\n", parseErr.Reason)
			continue
		}
		if err != nil {
			return err
		}

		for _, index := range cmd.Indices() {
			if err := apply(index, cmd.Action); err != nil {
				if services.IsRecoverable(err) {
					noteColor.Fprintf(out, "%v\n", err)
					continue
				}
				return err
			}
		}
	}
}
