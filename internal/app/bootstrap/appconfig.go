// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS). AppConfig is everything specific to the competition
// back office: database, sessions, storage, mail, OAuth, the staff
// roster, the submission deadlines, and the payment webhook.
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

	// File storage configuration for pitch decks and proposals
	StorageType      string // Storage backend (currently "local")
	StorageLocalPath string // Local storage path (e.g., "./uploads/submissions")
	StorageLocalURL  string // URL prefix for serving local files

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Base URL used to build the OAuth callback
	BaseURL string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Staff roster: the credential emails that resolve to the admin and
	// finance roles. Everyone else is a participant.
	AdminEmail   string
	FinanceEmail string

	// Submission deadlines, parsed from RFC 3339 strings
	Phase1Deadline time.Time
	Phase2Deadline time.Time

	// Event details used in invitation emails and tickets
	EventName    string
	WorkshopInfo string

	// Payment webhook configuration
	PaymentProvider      string // provider label stored with each log record
	PaymentWebhookSecret string // HMAC secret shared with the gateway

	// bcrypt hash of the finance CSV export token (blank disables export)
	FinanceExportTokenHash string
}
