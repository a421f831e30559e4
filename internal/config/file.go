package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file. Durations use Go syntax ("4s").
type fileConfig struct {
	Dashboard struct {
		BaseURL      string `yaml:"base_url"`
		SessionID    string `yaml:"session_id"`
		DetailsPath  string `yaml:"details_path"`
		EventsPath   string `yaml:"events_path"`
		CreateAction string `yaml:"create_action"`
		Timeout      string `yaml:"timeout"`
	} `yaml:"dashboard"`
	UI struct {
		Width       *int   `yaml:"width"`
		Height      *int   `yaml:"height"`
		Footer      *bool  `yaml:"footer"`
		Refresh     string `yaml:"refresh"`
		NoticeDelay string `yaml:"notice_delay"`
	} `yaml:"ui"`
	Logging struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
		Trace *bool  `yaml:"trace"`
	} `yaml:"logging"`
}

// configPath picks the YAML file to read. An explicit path must exist;
// the XDG default is optional.
func configPath(explicit string, env map[string]string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	base := strings.TrimSpace(env["XDG_CONFIG_HOME"])
	if base == "" {
		home := strings.TrimSpace(env["HOME"])
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "eventdesk", "config.yaml"), false
}

func readFile(path string, required bool) (fileConfig, bool, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return fc, false, nil
		}
		return fc, false, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, false, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, true, nil
}

func (fc fileConfig) apply(cfg *Config) error {
	set := func(v string, dst *string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(fc.Dashboard.BaseURL, &cfg.Dashboard.BaseURL)
	set(fc.Dashboard.SessionID, &cfg.Dashboard.SessionID)
	set(fc.Dashboard.DetailsPath, &cfg.Dashboard.DetailsPath)
	set(fc.Dashboard.EventsPath, &cfg.Dashboard.EventsPath)
	set(fc.Dashboard.CreateAction, &cfg.Dashboard.CreateAction)
	set(fc.Logging.File, &cfg.Logging.FilePath)
	set(fc.Logging.Level, &cfg.Logging.Level)

	var errs []error
	setDuration := func(name, v string, dst *time.Duration) {
		if v = strings.TrimSpace(v); v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = d
	}
	setDuration("dashboard.timeout", fc.Dashboard.Timeout, &cfg.Dashboard.Timeout)
	setDuration("ui.refresh", fc.UI.Refresh, &cfg.App.Refresh)
	setDuration("ui.notice_delay", fc.UI.NoticeDelay, &cfg.App.NoticeDelay)

	if fc.UI.Width != nil {
		cfg.App.Width = *fc.UI.Width
	}
	if fc.UI.Height != nil {
		cfg.App.Height = *fc.UI.Height
	}
	if fc.UI.Footer != nil {
		cfg.App.ShowFooter = *fc.UI.Footer
	}
	if fc.Logging.Trace != nil {
		cfg.Logging.Trace = *fc.Logging.Trace
	}
	return errors.Join(errs...)
}

// readEnvFile reads the .env file named by EVENTDESK_ENV_FILE, or ./.env,
// without touching the process environment. A missing ./.env is ignored.
func readEnvFile(process map[string]string) (map[string]string, error) {
	path := strings.TrimSpace(process[envEnvFile])
	required := path != ""
	if path == "" {
		path = ".env"
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}
