package models

// KeyRecord is a published signing public key.
type KeyRecord struct {
	ID        string `json:"id"`
	PublicKey string `json:"public_key"`
	Note      string `json:"note,omitempty"`
}

// HasNote reports whether the record carries a note. An empty note is stored as NULL.
func (r KeyRecord) HasNote() bool {
	return r.Note != ""
}
