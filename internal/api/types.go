package api

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// KeyPublishRequest is the payload for publishing a key.
type KeyPublishRequest struct {
	PublicKey string  `json:"public_key"`
	Note      *string `json:"note,omitempty"`
}

// KeyResponse describes a published key.
type KeyResponse struct {
	ID        string `json:"id" yaml:"id"`
	PublicKey string `json:"public_key" yaml:"public_key"`
	Note      string `json:"note,omitempty" yaml:"note,omitempty"`
	ShareURL  string `json:"share_url" yaml:"share_url"`
	OpenSSH   string `json:"openssh,omitempty" yaml:"openssh,omitempty"`
}

// InfoResponse reports server metadata.
type InfoResponse struct {
	SiteHost      string `json:"site_host" yaml:"site_host"`
	SchemaVersion int    `json:"schema_version" yaml:"schema_version"`
	TotalKeys     int    `json:"total_keys" yaml:"total_keys"`
}
