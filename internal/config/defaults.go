package config

// Default configuration values.
const (
	DefaultThemesDir = "themes"
	DefaultOutDir    = "dist"
)
