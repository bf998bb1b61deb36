package validation

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func encodedKey(n int) string {
	return base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x5a}, n))
}

func TestPublicKey(t *testing.T) {
	valid := encodedKey(32)

	tests := []struct {
		name string
		raw  string
		want string
		rule error
	}{
		{name: "valid", raw: valid, want: valid},
		{name: "trimmed", raw: "  " + valid + "\n", want: valid},
		{name: "empty", raw: "", rule: ErrEmpty},
		{name: "blank", raw: " \t\n ", rule: ErrEmpty},
		{name: "inner space", raw: valid[:10] + " " + valid[10:], rule: ErrInvalidChars},
		{name: "inner tab", raw: valid[:10] + "\t" + valid[10:], rule: ErrInvalidChars},
		{name: "control char", raw: valid[:10] + "\x00" + valid[10:], rule: ErrInvalidChars},
		{name: "unicode space", raw: valid[:10] + "\u00a0" + valid[10:], rule: ErrInvalidChars},
		{name: "too long", raw: strings.Repeat("A", 1004), rule: ErrTooLong},
		{name: "not base64", raw: "not-base64!!", rule: ErrNotBase64},
		{name: "bad padding", raw: valid[:len(valid)-1], rule: ErrNotBase64},
		{name: "non-canonical trailing bits", raw: strings.Repeat("A", 42) + "B=", rule: ErrNotBase64},
		{name: "canonical zero key", raw: strings.Repeat("A", 43) + "=", want: strings.Repeat("A", 43) + "="},
		{name: "16 bytes", raw: encodedKey(16), rule: ErrWrongKeyLength},
		{name: "33 bytes", raw: encodedKey(33), rule: ErrWrongKeyLength},
		{name: "31 bytes", raw: encodedKey(31), rule: ErrWrongKeyLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PublicKey(tt.raw)
			if tt.rule != nil {
				if !errors.Is(err, tt.rule) {
					t.Fatalf("expected %v, got %v", tt.rule, err)
				}
				if !IsValidationError(err) {
					t.Fatalf("expected validation error type, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPublicKeyAcceptedDecodesTo32Bytes(t *testing.T) {
	for _, raw := range []string{encodedKey(32), base64.StdEncoding.EncodeToString(make([]byte, 32))} {
		key, err := PublicKey(raw)
		if err != nil {
			t.Fatalf("validate %q: %v", raw, err)
		}
		decoded, err := base64.StdEncoding.DecodeString(key)
		if err != nil {
			t.Fatalf("decode accepted key: %v", err)
		}
		if len(decoded) != 32 {
			t.Fatalf("expected 32 bytes, got %d", len(decoded))
		}
	}
}

func TestPublicKeyMessages(t *testing.T) {
	_, err := PublicKey("")
	if err == nil || err.Error() != "public_key must not be empty" {
		t.Fatalf("unexpected message: %v", err)
	}
	_, err = PublicKey(encodedKey(16))
	if err == nil || err.Error() != "public_key must be base64 of a 32-byte key (ED25519)" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestNote(t *testing.T) {
	ptr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		raw     *string
		want    string
		wantErr bool
	}{
		{name: "absent", raw: nil, want: ""},
		{name: "empty", raw: ptr(""), want: ""},
		{name: "whitespace only", raw: ptr("   \n\t"), want: ""},
		{name: "trimmed", raw: ptr("  my signing key  "), want: "my signing key"},
		{name: "exactly 100 bytes", raw: ptr(strings.Repeat("n", 100)), want: strings.Repeat("n", 100)},
		{name: "101 bytes", raw: ptr(strings.Repeat("n", 101)), wantErr: true},
		{name: "padded 100 bytes", raw: ptr("  " + strings.Repeat("n", 100) + "  "), want: strings.Repeat("n", 100)},
		{name: "multibyte over limit", raw: ptr(strings.Repeat("公", 34)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Note(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrTooLong) {
					t.Fatalf("expected ErrTooLong, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"3b241101-e2bb-4255-8caf-4136c566a962", false},
		{"3B241101-E2BB-4255-8CAF-4136C566A962", false},
		{"", true},
		{"not-a-uuid", true},
		{"3b241101-e2bb-4255-8caf-4136c566a96", true},
		{"' OR 1=1 --", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := RecordID(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Fatalf("expected ErrInvalidID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.String() != strings.ToLower(tt.raw) {
				t.Fatalf("expected canonical %q, got %q", strings.ToLower(tt.raw), id.String())
			}
		})
	}
}
