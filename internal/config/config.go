package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime settings, read from the environment once at startup.
type Config struct {
	Port           string
	RemindersFile  string
	ClientsCSVFile string

	// Upstream Google Apps Script endpoint form submissions are relayed to
	UpstreamFormURL string

	AllowedOrigins []string

	// Hour of day (local time) the daily reminder sweep runs
	ReminderHour int

	MailProvider string // "smtp" or "sendgrid"
	MailFrom     string
	MailFromName string

	SMTPHost     string
	SMTPPort     int
	SMTPSecure   bool
	SMTPUser     string
	SMTPPassword string

	SendGridAPIKey string
}

// Load reads the configuration from environment variables. Required
// variables terminate the process when missing.
func Load() *Config {
	cfg := &Config{
		Port:            getEnvDefault("PORT", "8080"),
		RemindersFile:   getEnvDefault("REMINDERS_FILE", "data/reminders.json"),
		ClientsCSVFile:  getEnvDefault("CLIENTS_CSV_FILE", "data/clients.csv"),
		UpstreamFormURL: getEnvRequired("UPSTREAM_FORM_URL"),
		ReminderHour:    getEnvInt("REMINDER_HOUR", 9),
		MailProvider:    getEnvDefault("MAIL_PROVIDER", "smtp"),
		MailFrom:        getEnvDefault("MAIL_FROM", "noreply@localhost"),
		MailFromName:    getEnvDefault("MAIL_FROM_NAME", "Bookkeeping Reminders"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPSecure:      os.Getenv("SMTP_SECURE") == "true",
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
	}

	if cfg.ReminderHour < 0 || cfg.ReminderHour > 23 {
		log.Fatalf("REMINDER_HOUR must be between 0 and 23, got %d", cfg.ReminderHour)
	}
	if cfg.MailProvider == "sendgrid" && cfg.SendGridAPIKey == "" {
		log.Fatal("SENDGRID_API_KEY is required when MAIL_PROVIDER is sendgrid")
	}

	origins := getEnvDefault("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

// getEnvRequired returns environment variable value or exits if not set
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("Required environment variable %s is not set", key)
	return "" // This line will never execute due to the log.Fatalf above
}

func getEnvDefault(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer, got %q", key, value)
	}
	return n
}
