package config

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "extmodel.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/extmodel"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger  *slog.Logger
	workDir string
	home    string
}

// NewLoader creates a new configuration loader rooted at the current directory
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger}
	if cwd, err := os.Getwd(); err == nil {
		l.workDir = cwd
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.home = home
	}
	return l
}

// WithDirs overrides the working and home directories used for lookup.
func (l *Loader) WithDirs(workDir, home string) *Loader {
	l.workDir = workDir
	l.home = home
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/extmodel/config.yaml)
// 3. Project config (extmodel.yaml in the working or parent directories)
// 4. Flags
func (l *Loader) Load(flags *Config) (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if userConfig, err := LoadFromFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		projectConfig, err := LoadFromFile(projectConfigPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
		// Relative roots in a project file are relative to that file
		if root := projectConfig.Sources.Root; root != "" && !filepath.IsAbs(root) {
			projectConfig.Sources.Root = filepath.Join(filepath.Dir(projectConfigPath), root)
		}
		if projectConfig.Sources.Root == "" {
			projectConfig.Sources.Root = filepath.Dir(projectConfigPath)
		}
		config.Merge(projectConfig)
	} else {
		l.logger.Debug("No project config found")
	}

	config.Merge(flags)

	if config.Sources.Root == "" {
		if gitRoot := l.detectGitRoot(); gitRoot != "" {
			config.Sources.Root = gitRoot
			l.logger.Debug("Auto-detected git root", slog.String("path", gitRoot))
		} else {
			config.Sources.Root = l.workDir
			l.logger.Debug("Using working directory as source root", slog.String("path", l.workDir))
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()
	if userConfigPath == "" {
		return nil
	}
	if _, err := os.Stat(userConfigPath); err == nil {
		return nil
	}

	if err := DefaultConfig().SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

func (l *Loader) userConfigPath() string {
	if l.home == "" {
		return ""
	}
	return filepath.Join(l.home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for extmodel.yaml in the working and parent directories
func (l *Loader) findProjectConfig() string {
	if l.workDir == "" {
		return ""
	}

	dir := l.workDir
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// detectGitRoot finds the git repository root from the working directory
func (l *Loader) detectGitRoot() string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = l.workDir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
