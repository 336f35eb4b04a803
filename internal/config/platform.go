package config

import (
	"os"
	"runtime"
)

// PlatformProvider abstracts the OS lookups the path helpers need.
type PlatformProvider interface {
	GetOS() string
	GetEnv(key string) string
	UserHomeDir() (string, error)
}

// OSPlatformProvider implements PlatformProvider with real OS calls.
type OSPlatformProvider struct{}

func (OSPlatformProvider) GetOS() string                { return runtime.GOOS }
func (OSPlatformProvider) GetEnv(key string) string     { return os.Getenv(key) }
func (OSPlatformProvider) UserHomeDir() (string, error) { return os.UserHomeDir() }

// DefaultPlatform is used by the package-level helpers.
var DefaultPlatform PlatformProvider = OSPlatformProvider{}
