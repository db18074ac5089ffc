package elevconsole

import "github.com/eiannone/keyboard"

const HotkeyHelp = "keys: s=step a=auto c=call r=random p=apply x=reset v=show d=dump ?=help q=quit\n"

var hotkeys = map[rune]string{
	's': "step",
	'a': "auto",
	'c': "call",
	'r': "random",
	'p': "apply",
	'x': "reset",
	'v': "show",
	'd': "dump",
	'?': "help",
	'q': "quit",
}

// HotkeyCommand maps one key press onto a command line using the current drafts.
func HotkeyCommand(char rune, key keyboard.Key) (string, bool) {
	switch key {
	case keyboard.KeyCtrlC, keyboard.KeyEsc:
		return "quit", true
	case keyboard.KeySpace:
		return "step", true
	}
	line, ok := hotkeys[char]
	return line, ok
}
