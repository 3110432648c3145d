package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBDriver string
	DBConn   string
	DBLog    bool
	LogLevel string
	CBRURL   string
	Seed     bool

	UploadDir string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	DigestSchedule  string
	DigestRecipient string
}

// NewConfig loads configuration from environment variables and, when
// CONFIG_FILE is set, from that file. Environment wins over the file.
func NewConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("PORT"),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBConn:          v.GetString("DB_CONN"),
		DBLog:           v.GetBool("DB_LOG"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		CBRURL:          v.GetString("CBR_URL"),
		Seed:            v.GetBool("SEED"),
		UploadDir:       v.GetString("UPLOAD_DIR"),
		SMTPHost:        v.GetString("SMTP_HOST"),
		SMTPPort:        v.GetString("SMTP_PORT"),
		SMTPUsername:    v.GetString("SMTP_USERNAME"),
		SMTPPassword:    v.GetString("SMTP_PASSWORD"),
		SenderEmail:     v.GetString("SENDER_EMAIL"),
		DigestSchedule:  v.GetString("DIGEST_SCHEDULE"),
		DigestRecipient: v.GetString("DIGEST_RECIPIENT"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("UPLOAD_DIR is required")
	}

	return cfg, nil
}

// MailEnabled reports whether outgoing email is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_CONN", "banco.db")
	v.SetDefault("DB_LOG", false)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx")
	v.SetDefault("SEED", true)
	v.SetDefault("UPLOAD_DIR", "upload/cedulas")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("DIGEST_SCHEDULE", "0 7 * * *")
}
