package models

const (
	// PublicKeyMaxBytes bounds the stored text of a public key.
	PublicKeyMaxBytes = 1000
	// PublicKeyRawBytes is the decoded length of an Ed25519 public key.
	PublicKeyRawBytes = 32
	// NoteMaxBytes bounds the trimmed note.
	NoteMaxBytes = 100
)
