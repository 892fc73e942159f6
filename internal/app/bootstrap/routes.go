// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dashboardfeature "github.com/vijayakumarjith/startupsp/internal/app/features/dashboard"
	financefeature "github.com/vijayakumarjith/startupsp/internal/app/features/finance"
	healthfeature "github.com/vijayakumarjith/startupsp/internal/app/features/health"
	loginfeature "github.com/vijayakumarjith/startupsp/internal/app/features/login"
	logoutfeature "github.com/vijayakumarjith/startupsp/internal/app/features/logout"
	notifyfeature "github.com/vijayakumarjith/startupsp/internal/app/features/notify"
	paymentsfeature "github.com/vijayakumarjith/startupsp/internal/app/features/payments"
	resultsfeature "github.com/vijayakumarjith/startupsp/internal/app/features/results"
	submissionfeature "github.com/vijayakumarjith/startupsp/internal/app/features/submission"
	teamsfeature "github.com/vijayakumarjith/startupsp/internal/app/features/teams"
	paymentstore "github.com/vijayakumarjith/startupsp/internal/app/store/payments"
	phase1store "github.com/vijayakumarjith/startupsp/internal/app/store/phase1"
	phase2store "github.com/vijayakumarjith/startupsp/internal/app/store/phase2"
	resultsstore "github.com/vijayakumarjith/startupsp/internal/app/store/results"
	teamstore "github.com/vijayakumarjith/startupsp/internal/app/store/teams"
	userstore "github.com/vijayakumarjith/startupsp/internal/app/store/users"
	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/identity"
	"github.com/vijayakumarjith/startupsp/internal/app/system/mailer"
	"github.com/vijayakumarjith/startupsp/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It builds the stores, the identity
// resolver, the shared mailer and file storage, then mounts one feature
// router per application area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Session cookies are signed with the configured key; secure cookies
	// are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Stores
	users := userstore.New(deps.MongoDatabase)
	teams := teamstore.New(deps.MongoDatabase)
	phase1 := phase1store.New(deps.MongoDatabase)
	phase2 := phase2store.New(deps.MongoDatabase)
	payments := paymentstore.New(deps.MongoDatabase)
	results := resultsstore.New(deps.MongoDatabase)

	// Shared infrastructure
	resolver := identity.New(
		identity.NewRoleMap(appCfg.AdminEmail, appCfg.FinanceEmail),
		users, teams, payments, logger)

	mail := mailer.New(
		appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName, logger)

	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("file storage init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads the SessionUser into the request
	// context so handlers can use auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded decks and proposals served from local storage
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Authentication
	loginHandler := loginfeature.NewHandler(resolver, users,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.SessionKey, logger)
	loginLimiter := ratelimit.New(30, time.Minute)
	r.Mount("/auth/google", loginfeature.Routes(loginHandler, loginLimiter))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Role-aware dashboard
	dashboardHandler := dashboardfeature.NewHandler(resolver, teams, phase1, results, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

	// Team registration and roster administration
	teamsService := teamsfeature.NewService(teams, logger)
	teamsHandler := teamsfeature.NewHandler(teamsService, logger)
	r.Mount("/teams", teamsfeature.Routes(teamsHandler))

	// Phase-1 and phase-2 submissions
	submissionService := submissionfeature.NewService(phase1, phase2, teams, files,
		appCfg.StorageLocalURL,
		submissionfeature.Deadlines{
			Phase1: appCfg.Phase1Deadline,
			Phase2: appCfg.Phase2Deadline,
		}, logger)
	if phase1Ticker != nil && phase2Ticker != nil {
		submissionService.UseWindows(phase1Ticker, phase2Ticker)
	}
	submissionHandler := submissionfeature.NewHandler(submissionService, logger)
	r.Mount("/submissions", submissionfeature.Routes(submissionHandler))

	// Scoring, leaderboard, and publication
	resultsService := resultsfeature.NewService(phase1, results, teams, logger)
	resultsHandler := resultsfeature.NewHandler(resultsService, logger)
	r.Mount("/results", resultsfeature.Routes(resultsHandler))

	// Notification fan-out (workshop invitations, phase-2 announcements)
	notifyService := notifyfeature.NewService(teams, phase1, mail,
		notifyfeature.EventInfo{
			Name:         appCfg.EventName,
			WorkshopInfo: appCfg.WorkshopInfo,
		}, logger)
	notifyHandler := notifyfeature.NewHandler(notifyService, logger)
	r.Mount("/notify", notifyfeature.Routes(notifyHandler))

	// Payment gateway webhook (authenticated by HMAC signature)
	provider := paymentsfeature.NewHMACProvider(appCfg.PaymentProvider, appCfg.PaymentWebhookSecret)
	paymentsHandler := paymentsfeature.NewHandler(provider, payments, logger)
	webhookLimiter := ratelimit.New(60, time.Minute)
	r.Mount("/payments", paymentsfeature.Routes(paymentsHandler, webhookLimiter))

	// Finance reconciliation
	financeService := financefeature.NewService(teams, payments, appCfg.FinanceExportTokenHash, logger)
	financeHandler := financefeature.NewHandler(financeService, logger)
	r.Mount("/finance", financefeature.Routes(financeHandler))

	return r, nil
}
