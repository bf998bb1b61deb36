// Package keyfmt renders stored public keys in alternative text encodings
// for display. It never checks that a key is a valid curve point.
package keyfmt

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"

	"keypub/internal/models"
)

// AuthorizedKey returns the OpenSSH authorized_keys line for a Base64 Ed25519
// public key, e.g. "ssh-ed25519 AAAAC3Nza... comment".
func AuthorizedKey(publicKey, comment string) (string, error) {
	raw, err := base64.StdEncoding.Strict().DecodeString(publicKey)
	if err != nil {
		return "", fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != models.PublicKeyRawBytes {
		return "", fmt.Errorf("expected %d-byte key, got %d", models.PublicKeyRawBytes, len(raw))
	}

	pk, err := ssh.NewPublicKey(ed25519.PublicKey(raw))
	if err != nil {
		return "", fmt.Errorf("encode ssh public key: %w", err)
	}

	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pk)))
	comment = sanitizeComment(comment)
	if comment != "" {
		line += " " + comment
	}
	return line, nil
}

// sanitizeComment keeps the authorized_keys line on a single line.
func sanitizeComment(comment string) string {
	return strings.Join(strings.Fields(comment), " ")
}
