package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"keypub/internal/api"
	"keypub/internal/format"
)

// outputFormatter is nil for plain text output.
var outputFormatter format.Formatter

var stdout io.Writer = os.Stdout

// writeStructured writes payload with the selected formatter and reports
// whether it did so. Callers print plain lines when it returns false.
func writeStructured(payload any) (bool, error) {
	if outputFormatter == nil {
		return false, nil
	}
	return true, outputFormatter.Write(stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(stdout, format, args...)
	return err
}

func writeKeyDetail(key api.KeyResponse) error {
	if ok, err := writeStructured(key); ok {
		return err
	}

	lines := []string{
		fmt.Sprintf("id: %s", key.ID),
		fmt.Sprintf("public_key: %s", key.PublicKey),
	}
	if key.Note != "" {
		lines = append(lines, fmt.Sprintf("note: %s", key.Note))
	}
	if key.OpenSSH != "" {
		lines = append(lines, fmt.Sprintf("openssh: %s", key.OpenSSH))
	}
	lines = append(lines, fmt.Sprintf("share_url: %s", key.ShareURL))

	return writePlain("%s\n", strings.Join(lines, "\n"))
}
