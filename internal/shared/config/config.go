package config

import "time"

// Options selects the configuration sources to try, in order.
type Options struct {
	YAMLPath string
	EnvPath  string
}

// ConfigProvider exposes typed read access to the loaded configuration.
type ConfigProvider interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration
	IsSet(key string) bool

	// Source reports which file format the configuration came from.
	Source() string

	// OnChange registers a callback invoked after a watched reload.
	OnChange(fn func())
	WatchChanges()
}
