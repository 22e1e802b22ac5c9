package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bodgit/stegimg/lsb"
	"github.com/mattn/go-isatty"
)

// prompt asks on w whether to carry on decoding an image with bad padding,
// reading a single line from r. Anything other than an answer starting with
// "y" declines.
func prompt(r io.Reader, w io.Writer) lsb.Confirm {
	return func() (bool, error) {
		fmt.Fprintf(w, "Error: Text doesn't start with %d null bytes.\n", lsb.Padding)
		fmt.Fprint(w, "Force try anyways? (y/N): ")

		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}

		return strings.HasPrefix(strings.ToLower(line), "y"), nil
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printMessage writes msg to f. A terminal gets a trailing newline, anything
// else gets the message exactly as it was hidden.
func printMessage(f *os.File, msg string) error {
	if isTerminal(f) {
		_, err := fmt.Fprintln(f, msg)
		return err
	}
	_, err := io.WriteString(f, msg)
	return err
}
