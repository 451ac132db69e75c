// Package config loads the environment and the YAML configuration and installs the logger.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/booking/pkg/logger"
)

// Notification holds the notification provider credentials. Every field is optional:
// absent credentials only fail the notification step of a submission.
type Notification struct {
	TwilioAccountSID  string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `envconfig:"TWILIO_PHONE_NUMBER"`
	ResendAPIKey      string `envconfig:"RESEND_API_KEY"`
	AdminEmail        string `envconfig:"ADMIN_EMAIL"`
}

// MustInit loads .env when present, reads config.yaml and sets up the default logger.
func MustInit() {
	if err := godotenv.Load("./.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic("error while loading .env file: " + err.Error())
	}

	setDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/booking-svc")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()
}

func setDefaults() {
	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("postgres.auto_migrate", true)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.draft_ttl_minutes", 60)
	viper.SetDefault("rabbitmq.enabled", true)
	viper.SetDefault("rabbitmq.host", "rabbitmq")
	viper.SetDefault("rabbitmq.queue", "booking.submissions")
	viper.SetDefault("jaeger.endpoint", "http://jaeger:14268/api/traces")
	viper.SetDefault("notification.sms_base_url", "https://api.twilio.com")
	viper.SetDefault("notification.email_base_url", "https://api.resend.com")
	viper.SetDefault("notification.timeout_seconds", 10)
}

// SetupLogger installs the default slog logger from the logger.* keys.
func SetupLogger() {
	opts := &slog.HandlerOptions{Level: logger.ParseLevel(viper.GetString("logger.level"))}

	var handler slog.Handler
	if viper.GetString("logger.format") == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = logger.NewHandler(opts)
	}
	slog.SetDefault(slog.New(handler))
}

// MustLoadNotification reads the notification credentials from the environment.
func MustLoadNotification() Notification {
	var cfg Notification
	if err := envconfig.Process("", &cfg); err != nil {
		panic("error while reading notification config: " + err.Error())
	}

	return cfg
}
