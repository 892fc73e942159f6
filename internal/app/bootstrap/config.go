// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: STARTUPSP_MONGO_URI, STARTUPSP_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "startupsp", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "startupsp-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// File storage for pitch decks and proposals
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local'"},
	{Name: "storage_local_path", Default: "./uploads/submissions", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/files/submissions", Desc: "URL prefix for serving local files"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@startupsprint.in", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Startup Sprint", Desc: "From display name"},

	// Base URL for the OAuth callback
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Staff roster
	{Name: "admin_email", Default: "", Desc: "Credential email that signs in as admin"},
	{Name: "finance_email", Default: "", Desc: "Credential email that signs in as finance"},

	// Submission deadlines (RFC 3339)
	{Name: "phase1_deadline", Default: "", Desc: "Phase-1 submission deadline, RFC 3339"},
	{Name: "phase2_deadline", Default: "", Desc: "Phase-2 submission deadline, RFC 3339"},

	// Event details for invitation emails
	{Name: "event_name", Default: "Startup Sprint", Desc: "Event name used in invitations and tickets"},
	{Name: "workshop_info", Default: "", Desc: "Workshop venue and schedule text for invitations"},

	// Payment webhook
	{Name: "payment_provider", Default: "gateway", Desc: "Payment provider label stored with log records"},
	{Name: "payment_webhook_secret", Default: "", Desc: "HMAC secret shared with the payment gateway"},

	// Finance CSV export
	{Name: "finance_export_token_hash", Default: "", Desc: "bcrypt hash of the finance CSV export token (blank disables export)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, STARTUPSP_* for app), and
// command-line flags, merged with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STARTUPSP", appConfigKeys)
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

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL: appValues.String("base_url"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		AdminEmail:   appValues.String("admin_email"),
		FinanceEmail: appValues.String("finance_email"),

		EventName:    appValues.String("event_name"),
		WorkshopInfo: appValues.String("workshop_info"),

		PaymentProvider:      appValues.String("payment_provider"),
		PaymentWebhookSecret: appValues.String("payment_webhook_secret"),

		FinanceExportTokenHash: appValues.String("finance_export_token_hash"),
	}

	appCfg.Phase1Deadline, err = parseDeadline(appValues.String("phase1_deadline"))
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("phase1_deadline: %w", err)
	}
	appCfg.Phase2Deadline, err = parseDeadline(appValues.String("phase2_deadline"))
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("phase2_deadline: %w", err)
	}

	return coreCfg, appCfg, nil
}

// parseDeadline reads an RFC 3339 timestamp. A blank value yields the
// zero time, which the validator rejects so a deployment cannot run
// without its deadlines.
func parseDeadline(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.Phase1Deadline.IsZero() || appCfg.Phase2Deadline.IsZero() {
		return fmt.Errorf("phase1_deadline and phase2_deadline must both be set (RFC 3339)")
	}
	if !appCfg.Phase1Deadline.Before(appCfg.Phase2Deadline) {
		return fmt.Errorf("phase1_deadline (%s) must come before phase2_deadline (%s)",
			appCfg.Phase1Deadline.Format(time.RFC3339), appCfg.Phase2Deadline.Format(time.RFC3339))
	}

	if appCfg.StorageType != "local" {
		return fmt.Errorf("unsupported storage_type %q (only 'local' is available)", appCfg.StorageType)
	}

	return nil
}
