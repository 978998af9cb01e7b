package web

import "github.com/rook-computer/cover/internal/config"

// DefaultListenAddr is used when the configuration names no address.
const DefaultListenAddr = ":8080"

// ServerConfig contains settings for running the preview server.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
	// StaticDir replaces the embedded preview page when set.
	StaticDir    string
	CacheEntries int
}

// NewServerConfig fills a ServerConfig from the loaded application config.
func NewServerConfig(c config.ServerConfig) ServerConfig {
	sc := ServerConfig{
		ListenAddr:   c.ListenAddr,
		DevMode:      c.DevMode,
		StaticDir:    c.StaticDir,
		CacheEntries: c.CacheEntries,
	}
	if sc.ListenAddr == "" {
		sc.ListenAddr = DefaultListenAddr
	}
	return sc
}
