package config

import (
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/totegamma/twitton/internal/domain"
)

const (
	EnvConfigPath        = "TWITTON_CONFIG"
	EnvWebDomain         = "WEB_DOMAIN"
	EnvLocalDomain       = "LOCAL_DOMAIN"
	EnvAdminUsername     = "ADMIN_USERNAME"
	EnvAdminPublicKeyPEM = "ADMIN_PUBLIC_KEY_PEM"
	EnvAdminIconURL      = "ADMIN_ICON_URL"
)

type Config struct {
	Server Server `yaml:"server"`
}

type Server struct {
	BindAddr           string `yaml:"bindAddr" validate:"required"`
	ContentNegotiation bool   `yaml:"contentNegotiation"`
	EnableMetrics      bool   `yaml:"enableMetrics"`
	EnableTrace        bool   `yaml:"enableTrace"`
	TraceEndpoint      string `yaml:"traceEndpoint" validate:"required_if=EnableTrace true"`
	MemcachedAddr      string `yaml:"memcachedAddr"`
	CacheTTL           int    `yaml:"cacheTTL" validate:"gte=0"` // seconds, 0 disables expiry
	BodyLimit          string `yaml:"bodyLimit" validate:"required"`
	LogLevel           string `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
}

// Identity holds the raw environment values describing the admin actor.
type Identity struct {
	WebDomain         string `env:"WEB_DOMAIN" validate:"required"`
	LocalDomain       string `env:"LOCAL_DOMAIN" validate:"required"`
	AdminUsername     string `env:"ADMIN_USERNAME" validate:"required"`
	AdminPublicKeyPEM string `env:"ADMIN_PUBLIC_KEY_PEM" validate:"required"`
	AdminIconURL      string `env:"ADMIN_ICON_URL"`
}

// MissingEnvError lists required environment values that were absent or blank.
type MissingEnvError struct {
	Keys []string
}

func (e MissingEnvError) Error() string {
	return "missing env: " + strings.Join(e.Keys, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

func Default() Config {
	return Config{
		Server: Server{
			BindAddr:           "0.0.0.0:8080",
			ContentNegotiation: true,
			EnableMetrics:      true,
			CacheTTL:           600,
			BodyLimit:          "1M",
			LogLevel:           "info",
		},
	}
}

// Load reads the YAML server config at path. A missing or empty file yields the defaults.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case err == nil:
			defer file.Close()
			err = yaml.NewDecoder(file).Decode(&config)
			if err != nil && err != io.EOF {
				return Config{}, errors.Wrapf(err, "failed to decode config %s", path)
			}
		case os.IsNotExist(err):
			slog.Info("config file not found, using defaults", slog.String("path", path), slog.String("module", "config"))
		default:
			return Config{}, errors.Wrapf(err, "failed to open config %s", path)
		}
	}

	if err := validate.Struct(config.Server); err != nil {
		return Config{}, errors.Wrap(err, "invalid server config")
	}

	return config, nil
}

// LoadIdentity reads the admin identity from lookup, normally os.LookupEnv.
func LoadIdentity(lookup func(string) (string, bool)) (domain.Identity, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		if strings.TrimSpace(v) == "" {
			return ""
		}
		return v
	}

	raw := Identity{
		WebDomain:         get(EnvWebDomain),
		LocalDomain:       get(EnvLocalDomain),
		AdminUsername:     get(EnvAdminUsername),
		AdminPublicKeyPEM: get(EnvAdminPublicKeyPEM),
		AdminIconURL:      get(EnvAdminIconURL),
	}

	if err := validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.Identity{}, errors.Wrap(err, "failed to validate identity")
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		sort.Strings(missing)
		return domain.Identity{}, MissingEnvError{Keys: missing}
	}

	var icon *string
	if raw.AdminIconURL != "" {
		icon = &raw.AdminIconURL
	}

	return domain.NewIdentity(
		raw.WebDomain,
		raw.LocalDomain,
		raw.AdminUsername,
		raw.AdminPublicKeyPEM,
		icon,
	), nil
}

func (s Server) CacheTTLDuration() time.Duration {
	if s.CacheTTL <= 0 {
		return -1 // never expire
	}
	return time.Duration(s.CacheTTL) * time.Second
}

func (s Server) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
