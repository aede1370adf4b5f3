package core

import (
	"os"
	"path/filepath"
)

const appName = "intellicomp"

type Paths struct {
	HomeDir    string
	DataDir    string
	ConfigDir  string
	SchemaDir  string
	LogFile    string
	ConfigFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Completion runs on every keystroke; never fail for lack of $HOME.
			homeDir = os.TempDir()
		}

		dataDir := xdgDir("XDG_DATA_HOME", filepath.Join(homeDir, ".local", "share"))
		configDir := xdgDir("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))

		defaultPaths = &Paths{
			HomeDir:    homeDir,
			DataDir:    dataDir,
			ConfigDir:  configDir,
			SchemaDir:  filepath.Join(dataDir, "schemas"),
			LogFile:    filepath.Join(dataDir, appName+".log"),
			ConfigFile: filepath.Join(configDir, "config.toml"),
		}
	}
}

// xdgDir returns $env/intellicomp, or fallback/intellicomp when env is unset
// or relative.
func xdgDir(env, fallback string) string {
	base := os.Getenv(env)
	if base == "" || !filepath.IsAbs(base) {
		base = fallback
	}
	return filepath.Join(base, appName)
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func ConfigDir() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigDir
}

// SchemaDir is where the schema repository is checked out by default.
func SchemaDir() string {
	ensureDefaultPaths()
	return defaultPaths.SchemaDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

// EnsureDataDir creates the data directory so the log file can be opened.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0755)
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
