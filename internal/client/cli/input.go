package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText shows prompt on w and reads one line from reader, trimmed.
// A last line without a newline is still returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	fmt.Fprintf(w, "%s: ", prompt)

	line, err := reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal with echo off. The caller
// wipes the returned slice.
func GetPassword(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Enter password: ")
	defer fmt.Fprintln(w)

	return readPassword(int(os.Stdin.Fd()))
}
