package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
)

// ErrInvalidPatch marks a patch that could not be decoded.
var ErrInvalidPatch = errors.New("invalid cover patch")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AppConfig is everything the binary reads from its config file besides
// the cover patch itself.
type AppConfig struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Output OutputConfig `mapstructure:"output"`
	Server ServerConfig `mapstructure:"server"`
}

type LoggerConfig struct {
	Level       string      `mapstructure:"level"`
	Format      string      `mapstructure:"format"`
	ServiceName string      `mapstructure:"serviceName"`
	LogFile     string      `mapstructure:"logFile"`
	MaxSize     int         `mapstructure:"maxSize"`
	MaxBackups  int         `mapstructure:"maxBackups"`
	MaxAge      int         `mapstructure:"maxAge"`
	Compress    bool        `mapstructure:"compress"`
	AddSource   bool        `mapstructure:"addSource"`
	Colors      ColorConfig `mapstructure:"colors"`
}

// ColorConfig names the console color per log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug"`
	Info   string `mapstructure:"info"`
	Warn   string `mapstructure:"warn"`
	Error  string `mapstructure:"error"`
	DPanic string `mapstructure:"dpanic"`
	Panic  string `mapstructure:"panic"`
	Fatal  string `mapstructure:"fatal"`
}

type OutputConfig struct {
	// Format is "svg" or "png". Empty follows the extension of Path and
	// falls back to svg.
	Format string `mapstructure:"format"`
	// Size is the PNG edge length in pixels.
	Size int `mapstructure:"size"`
	// Path is the output file; empty or "-" writes to stdout.
	Path string `mapstructure:"path"`
}

// ServerConfig contains settings for running the preview server.
type ServerConfig struct {
	ListenAddr   string `mapstructure:"listen"`
	DevMode      bool   `mapstructure:"dev"`
	StaticDir    string `mapstructure:"static"`
	CacheEntries int    `mapstructure:"cacheEntries"`
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.serviceName", "cover")
	v.SetDefault("logger.maxSize", 10)
	v.SetDefault("logger.maxBackups", 3)
	v.SetDefault("logger.maxAge", 28)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	v.SetDefault("output.format", "")
	v.SetDefault("output.size", 1024)
	v.SetDefault("output.path", "")

	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.dev", false)
	v.SetDefault("server.static", "")
	v.SetDefault("server.cacheEntries", 64)
}

// LoadApp decodes the application sections of v.
func LoadApp(v *viper.Viper) (AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadPatch decodes the cover patch stored under key. A missing section is
// not an error and yields a nil patch.
func LoadPatch(v *viper.Viper, key string) (*Patch, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	var p Patch
	if err := v.UnmarshalKey(key, &p); err != nil {
		return nil, fmt.Errorf("%w: section %q: %v", ErrInvalidPatch, key, err)
	}
	return &p, nil
}

// ParsePatchJSON decodes an inline JSON patch. Blank input yields nil.
// Unknown keys and trailing data are rejected so typos do not silently
// fall back to defaults.
func ParsePatchJSON(data []byte) (*Patch, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p Patch
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	var rest any
	if err := dec.Decode(&rest); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after patch", ErrInvalidPatch)
	}
	return &p, nil
}

// EncodeJSON encodes v with the package JSON settings. Field order is the
// struct order, so equal values always encode to equal bytes.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}
