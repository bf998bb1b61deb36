package main

import (
	"keypub/internal/api"
	"keypub/internal/config"
)

// withClient runs fn against the server at cfg.APIURL. Client commands never
// start a server; connection failures surface with a hint to run `keypub srv`.
func withClient(cfg *config.Config, fn func(*api.Client) error) error {
	return fn(api.NewClient(cfg.APIURL))
}
