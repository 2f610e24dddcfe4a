package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// confirm asks a yes/no question on the terminal. assumeYes (--yes)
// skips the prompt; a non-interactive stdin answers no, so scripted
// invocations must opt in explicitly.
func confirm(question string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "refusing destructive run without a terminal; pass --yes to proceed")
		return false
	}

	fmt.Printf("%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
