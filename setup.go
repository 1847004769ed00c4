package main

import (
	"fmt"
	"os"

	"wink/config"

	"golang.org/x/term"
)

// runSetup walks the user through picking an alert threshold and writes
// the result to the config file.
func runSetup(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	seconds, err := selectThreshold(cfg.ThresholdSeconds)
	if err != nil {
		return err
	}
	cfg.ThresholdSeconds = seconds

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Saved: alert after %d seconds without blinking (%s)\n", seconds, path)
	return nil
}

func selectThreshold(current int) (int, error) {
	choices := config.AllowedThresholds

	// Raw mode for arrow key input
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("setting raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	cursor := 0
	for i, s := range choices {
		if s == current {
			cursor = i
		}
	}

	renderList := func() {
		fmt.Print("\r\x1b[J") // clear from cursor to end
		fmt.Print("Alert after how many seconds without a blink? (↑/↓, Enter to confirm):\r\n\r\n")
		for i, s := range choices {
			if i == cursor {
				fmt.Printf("  \x1b[1;36m▶ %ds\x1b[0m\r\n", s)
			} else {
				fmt.Printf("    %ds\r\n", s)
			}
		}
	}

	// Initial render
	renderList()

	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return 0, fmt.Errorf("reading input: %w", err)
		}

		if n == 1 {
			switch buf[0] {
			case 13: // Enter
				fmt.Printf("\r\n")
				term.Restore(fd, oldState)
				return choices[cursor], nil
			case 3: // Ctrl+C
				fmt.Printf("\r\n")
				term.Restore(fd, oldState)
				os.Exit(0)
			case 'j': // vim down
				if cursor < len(choices)-1 {
					cursor++
				}
			case 'k': // vim up
				if cursor > 0 {
					cursor--
				}
			}
		} else if n == 3 && buf[0] == 0x1b && buf[1] == '[' {
			switch buf[2] {
			case 'A': // Up arrow
				if cursor > 0 {
					cursor--
				}
			case 'B': // Down arrow
				if cursor < len(choices)-1 {
					cursor++
				}
			}
		}

		// Redraw: move up to overwrite
		lines := len(choices) + 2
		fmt.Printf("\x1b[%dA", lines)
		renderList()
	}
}
