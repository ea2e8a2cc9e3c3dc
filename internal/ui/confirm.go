package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question and reads the answer from in.
// Only "y" or "yes" (any case) confirm; EOF and anything else decline.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprint(out, WarningStyle.Render(question+" [y/N]: "))

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		_, _ = fmt.Fprintln(out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}

	_, _ = fmt.Fprintln(out, SubtleStyle.Render("Operation cancelled."))
	return false
}
