package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sunthewhat/easy-cert-portal/common/util"
	"github.com/sunthewhat/easy-cert-portal/internal/spreadsheet"
	"github.com/sunthewhat/easy-cert-portal/type/shared"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath          = "config.yml"
	DefaultRenderTimeout = 60 * time.Second
)

// Load reads, validates and fills in defaults for the config file at path.
func Load(path string) (*shared.Config, error) {
	yml, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(yml)
}

func Parse(yml []byte) (*shared.Config, error) {
	config := new(shared.Config)
	if err := yaml.Unmarshal(yml, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := util.ValidateStruct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(util.GetValidationErrors(err), ", "))
	}

	applyDefaults(config)

	if err := check(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func setDefault[T any](field **T, value T) {
	if *field == nil {
		*field = &value
	}
}

func applyDefaults(c *shared.Config) {
	setDefault(&c.Environment, false)
	setDefault(&c.Timezone, "Local")

	setDefault(&c.Storage.Driver, "local")
	setDefault(&c.Storage.DataDir, "data")
	setDefault(&c.Storage.MinIoSecure, true)
	setDefault(&c.Storage.MinIoBucket, "certificates")

	setDefault(&c.Templates.Dir, "templates")

	setDefault(&c.Upload.Dir, filepath.Join(*c.Storage.DataDir, "uploads"))
	setDefault(&c.Upload.MaxRows, spreadsheet.DefaultMaxRows)

	setDefault(&c.Render.Engine, "browser")
	setDefault(&c.Render.Timeout, DefaultRenderTimeout.String())
	setDefault(&c.Render.ChromePath, "")
	setDefault(&c.Render.SigningCertPath, "")
	setDefault(&c.Render.SigningKeyPath, "")

	setDefault(&c.Mail.Host, "")
	setDefault(&c.Mail.Port, 587)
	setDefault(&c.Mail.User, "")
	setDefault(&c.Mail.Pass, "")
	setDefault(&c.Mail.From, "")
	setDefault(&c.Mail.AttachPDF, false)

	setDefault(&c.Auth.JWTSecret, "")
	setDefault(&c.Auth.AdminPasswordHash, "")
}

func check(c *shared.Config) error {
	if *c.Storage.Driver == "minio" {
		if isEmpty(c.Storage.MinIoEndpoint) || isEmpty(c.Storage.MinIoAccessKey) || isEmpty(c.Storage.MinIoSecretKey) {
			return errors.New("storage driver minio requires minio_endpoint, minio_access_key and minio_secret_key")
		}
	}
	if _, err := RenderTimeout(c); err != nil {
		return err
	}
	if _, err := Location(c); err != nil {
		return err
	}
	if *c.Auth.JWTSecret != "" && *c.Auth.AdminPasswordHash == "" {
		return errors.New("auth.jwt_secret requires auth.admin_password_hash")
	}
	return nil
}

func isEmpty(s *string) bool {
	return s == nil || *s == ""
}

func RenderTimeout(c *shared.Config) (time.Duration, error) {
	d, err := time.ParseDuration(*c.Render.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("render.timeout %q is not a positive duration", *c.Render.Timeout)
	}
	return d, nil
}

func Location(c *shared.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(*c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", *c.Timezone, err)
	}
	return loc, nil
}

// MailSettings returns the SMTP settings from config.
func MailSettings(c *shared.Config) shared.MailSettings {
	return shared.MailSettings{
		Host: *c.Mail.Host,
		Port: *c.Mail.Port,
		User: *c.Mail.User,
		Pass: *c.Mail.Pass,
		From: *c.Mail.From,
	}
}

// AuthEnabled reports whether admin routes require a token.
func AuthEnabled(c *shared.Config) bool {
	return *c.Auth.JWTSecret != ""
}
