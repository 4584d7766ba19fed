// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS); AppConfig is everything specific to PulseCheck. The
// struct is passed to most lifecycle hooks, so any configuration needed
// during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Public base URL, used when building the mood links in check-in emails
	BaseURL string // e.g., "https://pulsecheck.example.com" or "http://localhost:3000"

	// Display name used in email subjects and bodies
	SiteName string

	// Email delivery. The Resend API is preferred when a key is set;
	// otherwise SMTP is used when a host is configured. With neither,
	// the daily send refuses to run.
	ResendAPIKey string
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Daily check-in schedule, in UTC
	DailySendHourUTC   int
	DailySendMinuteUTC int

	// Shared secret for POST /jobs/daily-checkin; blank disables the route
	JobToken string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string
}
