package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/eiannone/keyboard"

	"elevsim/elevconsole"
)

type keyPress struct {
	char rune
	key  keyboard.Key
	err  error
}

// hotkeyThread drives the console from single key presses. Numeric drafts
// keep their defaults (or whatever -env provided) in this mode.
func hotkeyThread(ctx context.Context, con *elevconsole.Console) error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	keys := make(chan keyPress)
	go func() {
		for {
			char, key, err := keyboard.GetKey()
			select {
			case keys <- keyPress{char, key, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	fmt.Fprint(os.Stdout, elevconsole.HotkeyHelp)
	for {
		select {
		case <-ctx.Done():
			return nil

		case kp := <-keys:
			if kp.err != nil {
				return fmt.Errorf("read key: %w", kp.err)
			}
			line, ok := elevconsole.HotkeyCommand(kp.char, kp.key)
			if !ok {
				continue
			}
			err := con.Execute(ctx, line)
			if errors.Is(err, elevconsole.ErrQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintln(os.Stdout, err)
			}
		}
	}
}
