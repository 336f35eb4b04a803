// Package config holds model metadata and the on-disk locations shared by
// the powerline commands.
package config

import (
	"os"
	"path/filepath"
)

const appName = "powerline-footer"

// AgentDir returns the host agent's home directory (~/.pi/agent). The
// PI_CODING_AGENT_DIR variable overrides it.
func AgentDir() string {
	return AgentDirWithPlatform(DefaultPlatform)
}

// AgentDirWithPlatform allows injecting a platform for tests.
func AgentDirWithPlatform(p PlatformProvider) string {
	if dir := p.GetEnv("PI_CODING_AGENT_DIR"); dir != "" {
		return dir
	}
	home, err := p.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pi", "agent")
}

// SessionsDir returns the directory holding session logs.
func SessionsDir() string {
	return SessionsDirWithPlatform(DefaultPlatform)
}

// SessionsDirWithPlatform allows injecting a platform for tests.
func SessionsDirWithPlatform(p PlatformProvider) string {
	dir := AgentDirWithPlatform(p)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "sessions")
}

// UserCacheDir returns the directory for the stash database and state files.
func UserCacheDir() string {
	return UserCacheDirWithPlatform(DefaultPlatform)
}

// UserCacheDirWithPlatform allows injecting a platform for tests.
func UserCacheDirWithPlatform(p PlatformProvider) string {
	home, _ := p.UserHomeDir()
	switch p.GetOS() {
	case "windows":
		if local := p.GetEnv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appName)
		}
		return filepath.Join(home, "."+appName)
	case "darwin":
		return filepath.Join(home, "Library", "Caches", appName)
	default:
		if xdg := p.GetEnv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		return filepath.Join(home, ".cache", appName)
	}
}

// StashDBPath returns the prompt stash database path, creating its directory.
func StashDBPath() string {
	dir := UserCacheDir()
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "stash.db")
}

// UpdateStatePath returns the update checker's state file.
func UpdateStatePath() string {
	return filepath.Join(UserCacheDir(), "update.json")
}

// LogDir returns the default log directory.
func LogDir() string {
	return filepath.Join(UserCacheDir(), "logs")
}
