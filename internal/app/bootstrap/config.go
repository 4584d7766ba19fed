// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for PulseCheck.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: PULSECHECK_MONGO_URI, PULSECHECK_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "pulsecheck", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "pulsecheck-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public base URL for mood links in check-in emails"},
	{Name: "site_name", Default: "PulseCheck", Desc: "Display name used in emails"},

	// Email delivery: Resend API first, SMTP as the fallback transport
	{Name: "resend_api_key", Default: "", Desc: "Resend API key (preferred email transport)"},
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@example.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "PulseCheck", Desc: "From display name"},

	// Noon in South Africa (UTC+2)
	{Name: "daily_send_hour_utc", Default: 10, Desc: "Hour (UTC) for the daily check-in send"},
	{Name: "daily_send_minute_utc", Default: 3, Desc: "Minute for the daily check-in send"},

	{Name: "job_token", Default: "", Desc: "Bearer token for POST /jobs/daily-checkin (blank disables the route)"},

	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PULSECHECK_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PULSECHECK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		BaseURL:  appValues.String("base_url"),
		SiteName: appValues.String("site_name"),

		ResendAPIKey: appValues.String("resend_api_key"),
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		DailySendHourUTC:   appValues.Int("daily_send_hour_utc"),
		DailySendMinuteUTC: appValues.Int("daily_send_minute_utc"),

		JobToken: appValues.String("job_token"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// PulseCheck validates the MongoDB URI format and the daily schedule to
// catch configuration errors before connecting to anything.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.DailySendHourUTC < 0 || appCfg.DailySendHourUTC > 23 {
		return fmt.Errorf("daily_send_hour_utc must be 0-23, got %d", appCfg.DailySendHourUTC)
	}
	if appCfg.DailySendMinuteUTC < 0 || appCfg.DailySendMinuteUTC > 59 {
		return fmt.Errorf("daily_send_minute_utc must be 0-59, got %d", appCfg.DailySendMinuteUTC)
	}

	if appCfg.ResendAPIKey == "" && appCfg.MailSMTPHost == "" {
		logger.Warn("no email transport configured; daily check-in emails will not be sent")
	}

	return nil
}
