// consolethread.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"elevsim/elevconsole"
)

// consoleThread reads command lines from in until quit, EOF or ctx is done.
// Commands run one at a time; auto-step ticks run independently.
func consoleThread(ctx context.Context, con *elevconsole.Console, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	fmt.Fprint(out, "> ")
	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-readErr:
			return err

		case line := <-lines:
			err := con.Execute(ctx, line)
			if errors.Is(err, elevconsole.ErrQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintln(out, err)
			}
			fmt.Fprint(out, "> ")
		}
	}
}
