package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/atomicstack/eventdesk/internal/app"
	"github.com/atomicstack/eventdesk/internal/dashboard"
	"github.com/atomicstack/eventdesk/internal/notify"
)

// Config captures runtime configuration for the application.
type Config struct {
	Dashboard Dashboard
	App       app.Config
	Logging   Logging
	// File is the YAML file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Dashboard struct {
	BaseURL      string
	SessionID    string
	DetailsPath  string
	EventsPath   string
	CreateAction string
	Timeout      time.Duration
}

type Logging struct {
	FilePath string
	Trace    bool
	Level    string
}

const (
	envConfig       = "EVENTDESK_CONFIG"
	envEnvFile      = "EVENTDESK_ENV_FILE"
	envBaseURL      = "EVENTDESK_BASE_URL"
	envSessionID    = "EVENTDESK_SESSION_ID"
	envDetailsPath  = "EVENTDESK_DETAILS_PATH"
	envEventsPath   = "EVENTDESK_EVENTS_PATH"
	envCreateAction = "EVENTDESK_CREATE_ACTION"
	envTimeout      = "EVENTDESK_TIMEOUT"
	envRefresh      = "EVENTDESK_REFRESH"
	envNoticeDelay  = "EVENTDESK_NOTICE_DELAY"
	envWidth        = "EVENTDESK_WIDTH"
	envHeight       = "EVENTDESK_HEIGHT"
	envShowFooter   = "EVENTDESK_FOOTER"
	envTrace        = "EVENTDESK_TRACE"
	envLogFile      = "EVENTDESK_LOG_FILE"
	envLogLevel     = "EVENTDESK_LOG_LEVEL"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Dashboard: Dashboard{
			DetailsPath:  dashboard.DefaultDetailsPath,
			EventsPath:   dashboard.DefaultEventsPath,
			CreateAction: dashboard.DefaultCreateAction,
		},
		App: app.Config{
			NoticeDelay: notify.DefaultDelay,
		},
		Logging: Logging{Level: "info"},
	}
}

// RegisterFlags adds the configuration flags to fs. Defaults are left
// empty; only flags set on the command line override lower layers.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("base-url", "", "dashboard root URL, e.g. https://events.example.org")
	fs.String("session-id", "", "value of the dashboard sessionid cookie")
	fs.String("details-path", "", "detail fragment path; {id} is replaced by the event id")
	fs.String("events-path", "", "event list fragment path")
	fs.String("create-action", "", "create-event form action")
	fs.Duration("timeout", 0, "per-request timeout (0 means none)")
	fs.Duration("refresh", 0, "event list refresh interval (0 disables polling)")
	fs.Duration("notice-delay", 0, "how long notifications stay on screen")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("footer", false, "show the key help row")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("log-file", "", "path to the log file")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("eventdesk", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := FromFlags(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// FromFlags layers defaults, the YAML file, the .env file, environ and
// the flags set on fs, in that order.
func FromFlags(fs *pflag.FlagSet, environ []string) (Config, error) {
	process := parseEnv(environ)
	dotenv, err := readEnvFile(process)
	if err != nil {
		return Config{}, err
	}
	env := make(map[string]string, len(dotenv)+len(process))
	for k, v := range dotenv {
		env[k] = v
	}
	for k, v := range process {
		env[k] = v
	}

	cfg := Defaults()

	explicit := ""
	if fs.Changed("config") {
		explicit, _ = fs.GetString("config")
	} else if v := strings.TrimSpace(env[envConfig]); v != "" {
		explicit = v
	}
	path, required := configPath(explicit, env)
	if path != "" {
		file, found, err := readFile(path, required)
		if err != nil {
			return Config{}, err
		}
		if found {
			if err := file.apply(&cfg); err != nil {
				return Config{}, fmt.Errorf("config file %s: %w", path, err)
			}
			cfg.File = path
		}
	}

	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}
	applyFlags(&cfg, fs)
	cfg.Flags = flagValues(fs)
	return cfg, nil
}

func applyEnv(cfg *Config, env map[string]string) error {
	setString := func(key string, dst *string) {
		if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setString(envBaseURL, &cfg.Dashboard.BaseURL)
	setString(envSessionID, &cfg.Dashboard.SessionID)
	setString(envDetailsPath, &cfg.Dashboard.DetailsPath)
	setString(envEventsPath, &cfg.Dashboard.EventsPath)
	setString(envCreateAction, &cfg.Dashboard.CreateAction)
	setString(envLogFile, &cfg.Logging.FilePath)
	setString(envLogLevel, &cfg.Logging.Level)

	var errs []error
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{envTimeout, &cfg.Dashboard.Timeout},
		{envRefresh, &cfg.App.Refresh},
		{envNoticeDelay, &cfg.App.NoticeDelay},
	}
	for _, d := range durations {
		if v := strings.TrimSpace(env[d.key]); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", d.key, err))
				continue
			}
			*d.dst = parsed
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{envWidth, &cfg.App.Width},
		{envHeight, &cfg.App.Height},
	}
	for _, i := range ints {
		if v := strings.TrimSpace(env[i.key]); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", i.key, err))
				continue
			}
			*i.dst = parsed
		}
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{envShowFooter, &cfg.App.ShowFooter},
		{envTrace, &cfg.Logging.Trace},
	}
	for _, b := range bools {
		if v := strings.TrimSpace(env[b.key]); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.key, err))
				continue
			}
			*b.dst = parsed
		}
	}
	return errors.Join(errs...)
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) {
	str := func(name string, dst *string) {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	dur := func(name string, dst *time.Duration) {
		if fs.Changed(name) {
			*dst, _ = fs.GetDuration(name)
		}
	}
	num := func(name string, dst *int) {
		if fs.Changed(name) {
			*dst, _ = fs.GetInt(name)
		}
	}
	flag := func(name string, dst *bool) {
		if fs.Changed(name) {
			*dst, _ = fs.GetBool(name)
		}
	}
	str("base-url", &cfg.Dashboard.BaseURL)
	str("session-id", &cfg.Dashboard.SessionID)
	str("details-path", &cfg.Dashboard.DetailsPath)
	str("events-path", &cfg.Dashboard.EventsPath)
	str("create-action", &cfg.Dashboard.CreateAction)
	dur("timeout", &cfg.Dashboard.Timeout)
	dur("refresh", &cfg.App.Refresh)
	dur("notice-delay", &cfg.App.NoticeDelay)
	num("width", &cfg.App.Width)
	num("height", &cfg.App.Height)
	flag("footer", &cfg.App.ShowFooter)
	flag("trace", &cfg.Logging.Trace)
	str("log-file", &cfg.Logging.FilePath)
	str("log-level", &cfg.Logging.Level)
}

// flagValues records the flags given on the command line for the startup
// trace. The session cookie is never recorded.
func flagValues(fs *pflag.FlagSet) map[string]string {
	values := map[string]string{}
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "session-id" {
			values[f.Name] = "<redacted>"
			return
		}
		values[f.Name] = f.Value.String()
	})
	return values
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	var errs []error
	raw := strings.TrimSpace(cfg.Dashboard.BaseURL)
	if raw == "" {
		errs = append(errs, errors.New("base url is required (--base-url or "+envBaseURL+")"))
	} else if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("base url %q must be absolute", raw))
	}
	if !strings.Contains(cfg.Dashboard.DetailsPath, "{id}") {
		errs = append(errs, fmt.Errorf("details path %q must contain {id}", cfg.Dashboard.DetailsPath))
	}
	if cfg.App.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.Dashboard.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Dashboard.Timeout))
	}
	if cfg.App.Refresh < 0 {
		errs = append(errs, fmt.Errorf("refresh must be >= 0 (got %s)", cfg.App.Refresh))
	}
	if cfg.App.NoticeDelay < 0 {
		errs = append(errs, fmt.Errorf("notice delay must be >= 0 (got %s)", cfg.App.NoticeDelay))
	}
	return errors.Join(errs...)
}

// ClientOptions converts the dashboard section into client options.
func (c Config) ClientOptions() dashboard.Options {
	return dashboard.Options{
		BaseURL:      c.Dashboard.BaseURL,
		SessionID:    c.Dashboard.SessionID,
		DetailsPath:  c.Dashboard.DetailsPath,
		EventsPath:   c.Dashboard.EventsPath,
		CreateAction: c.Dashboard.CreateAction,
		Timeout:      c.Dashboard.Timeout,
	}
}
