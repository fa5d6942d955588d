package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port           string        `yaml:"port"`
	MongoURL       string        `yaml:"mongo_url"`
	DBName         string        `yaml:"db_name"`
	SecretKey      string        `yaml:"secret_key"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	SiteURL        string        `yaml:"site_url"`
	MaxArtists     int           `yaml:"max_artists"`

	Admin      AdminConfig      `yaml:"admin"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	WhatsApp   WhatsAppConfig   `yaml:"whatsapp"`
	Twilio     TwilioConfig     `yaml:"twilio"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AdminConfig is the single admin account. It never lives in the database.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CloudinaryConfig struct {
	URL    string `yaml:"url"`
	Folder string `yaml:"folder"`
}

type WhatsAppConfig struct {
	Token         string `yaml:"token"`
	PhoneNumberID string `yaml:"phone_number_id"`
	TemplateName  string `yaml:"template_name"`
	Language      string `yaml:"language"`
	AdminPhone    string `yaml:"admin_phone"`
	APIVersion    string `yaml:"api_version"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	From       string `yaml:"from"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a config with every optional field filled in.
func Default() *Config {
	return &Config{
		Port:           "9000",
		DBName:         "artfolio",
		TokenTTL:       24 * time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
		SiteURL:        "http://localhost:3000",
		MaxArtists:     10,
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Cloudinary: CloudinaryConfig{Folder: "artfolio"},
		WhatsApp: WhatsAppConfig{
			TemplateName: "hello_world",
			Language:     "en_US",
			APIVersion:   "v18.0",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the config from defaults, an optional .env file, an optional
// YAML file and finally the process environment. Empty paths are skipped.
func Load(envFile, yamlFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if yamlFile != "" {
		data, err := os.ReadFile(yamlFile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", yamlFile, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", yamlFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.MongoURL, "MONGODB_URL")
	setString(&c.DBName, "MONGODB_DB")
	setString(&c.SecretKey, "SECRET_KEY")
	setString(&c.SiteURL, "SITE_URL")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if err := setInt(&c.MaxArtists, "MAX_ARTISTS"); err != nil {
		return err
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}

	setString(&c.Admin.Username, "ADMIN_USERNAME")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	setString(&c.Admin.Email, "ADMIN_EMAIL")

	setString(&c.SMTP.Host, "SMTP_HOST")
	if err := setInt(&c.SMTP.Port, "SMTP_PORT"); err != nil {
		return err
	}
	setString(&c.SMTP.User, "EMAIL_USER")
	setString(&c.SMTP.Password, "EMAIL_PASS")
	setString(&c.SMTP.From, "EMAIL_FROM")
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.User
	}

	setString(&c.Cloudinary.URL, "CLOUDINARY_URL")
	setString(&c.Cloudinary.Folder, "CLOUDINARY_FOLDER")

	setString(&c.WhatsApp.Token, "WHATSAPP_TOKEN")
	setString(&c.WhatsApp.PhoneNumberID, "WHATSAPP_PHONE_NUMBER_ID")
	setString(&c.WhatsApp.TemplateName, "WHATSAPP_TEMPLATE")
	setString(&c.WhatsApp.Language, "WHATSAPP_LANGUAGE")
	setString(&c.WhatsApp.AdminPhone, "WHATSAPP_ADMIN_PHONE")

	setString(&c.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&c.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&c.Twilio.From, "TWILIO_PHONE_NUMBER")

	setString(&c.Logging.Level, "LOG_LEVEL")
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Logging.Development = v == "development"
	}
	return nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.MongoURL == "" {
		missing = append(missing, "MONGODB_URL")
	}
	if c.SecretKey == "" {
		missing = append(missing, "SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
