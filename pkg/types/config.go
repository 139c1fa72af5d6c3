package types

import "errors"

// Default endpoints used when the config file and flags leave them unset.
const (
	DefaultListenAddr = "localhost:8080"
	DefaultServerURL  = "http://localhost:8080"
)

// Config holds the resolved runtime configuration: where the server
// listens, where the SQLite store lives, and which server the client
// commands talk to.
type Config struct {
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	DataDir    string `json:"data_dir" yaml:"data_dir"`
	ServerURL  string `json:"server_url" yaml:"server_url"`
}

// Config validation errors.
var (
	ErrListenAddrEmpty = errors.New("listen_addr must not be empty")
	ErrDataDirEmpty    = errors.New("data_dir must not be empty")
	ErrServerURLEmpty  = errors.New("server_url must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrListenAddrEmpty
	}
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.ServerURL == "" {
		return ErrServerURLEmpty
	}
	return nil
}
