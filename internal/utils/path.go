package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// AppDirName is the directory name used under the platform config dir.
const AppDirName = "trigram"

// PathResolver resolves config and data paths relative to the user's config
// directory and the executable location
type PathResolver struct {
	fs             afero.Fs
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a path resolver for the running executable
func NewPathResolver(fs afero.Fs) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		fs:             fs,
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

// platformConfigDir returns the appropriate config directory for the platform
func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, ".config", AppDirName)
	}
}

// GetConfigPath returns the full path for a config file, falling back to
// other writable locations when the config dir is not usable
func (pr *PathResolver) GetConfigPath(filename string) string {
	candidates := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+AppDirName),
		filepath.Join(os.TempDir(), AppDirName),
		pr.executableDir,
	}
	for i, dir := range candidates {
		if CheckDirStatus(pr.fs, dir).Writable {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}

// ResolveDataPath finds a data file given relative to the working directory,
// the executable directory or the config directory. Absolute paths are
// returned unchanged.
func (pr *PathResolver) ResolveDataPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	candidates := []string{path, filepath.Join(pr.executableDir, path), filepath.Join(pr.configDir, path)}
	for _, c := range candidates {
		if FileExists(pr.fs, c) {
			return c
		}
	}
	log.Debugf("Data file %s not found in any search path", path)
	return path
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
