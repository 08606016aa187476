package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Path    string `mapstructure:"path"`
	Output  string `mapstructure:"output"`
	Shell   string `mapstructure:"shell"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	Colors  bool   `mapstructure:"colors"`
	Wide    string `mapstructure:"wide"`
	Limit   int    `mapstructure:"limit"`
	LogFile string `mapstructure:"log_file"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("path", "~/src/tries")
	viper.SetDefault("output", "print")
	viper.SetDefault("shell", getDefaultShell())
	viper.SetDefault("width", 0)  // 0 = ask the terminal
	viper.SetDefault("height", 0) // 0 = ask the terminal
	viper.SetDefault("colors", true)
	viper.SetDefault("wide", "emoji") // emoji or eastasian
	viper.SetDefault("limit", 0)      // 0 = no limit
	viper.SetDefault("log_file", "")

	viper.SetConfigName("trypick")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "trypick"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("TRY")
	viper.AutomaticEnv()

	// NO_COLORS carries no prefix
	_ = viper.BindEnv("no_colors", "NO_COLORS")

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	if err := viper.Unmarshal(&C); err != nil {
		return err
	}
	C.Colors = GetColors()
	return nil
}

// GetPath returns the tries directory with tilde expansion
func GetPath() string {
	return expandTilde(viper.GetString("path"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path[1:])
	}
	return path
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetShell returns the shell used by exec output
func GetShell() string {
	return viper.GetString("shell")
}

// GetWidth returns the pinned screen width, 0 when unset
func GetWidth() int {
	return max(viper.GetInt("width"), 0)
}

// GetHeight returns the pinned screen height, 0 when unset
func GetHeight() int {
	return max(viper.GetInt("height"), 0)
}

// GetColors reports whether SGR styling is enabled. A non-empty NO_COLORS
// always wins.
func GetColors() bool {
	if viper.GetString("no_colors") != "" {
		return false
	}
	return viper.GetBool("colors")
}

// GetWide returns the wide-character policy name
func GetWide() string {
	return viper.GetString("wide")
}

// GetLimit returns the result cap, 0 for none
func GetLimit() int {
	return max(viper.GetInt("limit"), 0)
}

// GetLogFile returns the debug log path, empty to disable logging
func GetLogFile() string {
	return expandTilde(viper.GetString("log_file"))
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetPath sets path at runtime
func SetPath(path string) {
	viper.Set("path", path)
	C.Path = path
}

// SetColors toggles styling at runtime
func SetColors(enabled bool) {
	viper.Set("colors", enabled)
	if enabled {
		viper.Set("no_colors", "")
	} else {
		viper.Set("no_colors", "1")
	}
	C.Colors = enabled
}

func getDefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}
