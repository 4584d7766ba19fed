// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authgooglefeature "github.com/dalemusser/pulsecheck/internal/app/features/authgoogle"
	employeesfeature "github.com/dalemusser/pulsecheck/internal/app/features/employees"
	groupsfeature "github.com/dalemusser/pulsecheck/internal/app/features/groups"
	healthfeature "github.com/dalemusser/pulsecheck/internal/app/features/health"
	jobsfeature "github.com/dalemusser/pulsecheck/internal/app/features/jobs"
	loginfeature "github.com/dalemusser/pulsecheck/internal/app/features/login"
	logoutfeature "github.com/dalemusser/pulsecheck/internal/app/features/logout"
	moodresponsefeature "github.com/dalemusser/pulsecheck/internal/app/features/moodresponse"
	profilefeature "github.com/dalemusser/pulsecheck/internal/app/features/profile"
	reportsfeature "github.com/dalemusser/pulsecheck/internal/app/features/reports"
	userstore "github.com/dalemusser/pulsecheck/internal/app/store/users"
	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. The mood-response endpoint is
// deliberately public; everything manager-facing sits behind the
// session middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request, so
	// profile and organisation changes take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Employee-facing mood link, reached from the daily email
	moodHandler := moodresponsefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/mood-response", moodresponsefeature.Routes(moodHandler))

	// Authentication
	loginfeature.Routes(r, deps.MongoDatabase, sessionMgr, logger)
	logoutfeature.Routes(r, sessionMgr, logger)
	authgooglefeature.Routes(r, deps.MongoDatabase, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)

	// Manager API
	employeesfeature.Routes(r, deps.MongoDatabase, sessionMgr, logger)
	groupsfeature.Routes(r, deps.MongoDatabase, sessionMgr, logger)
	reportsfeature.Routes(r, deps.MongoDatabase, sessionMgr, logger)
	profilefeature.Routes(r, deps.MongoDatabase, sessionMgr, logger)

	// Operational trigger for the daily send
	jobsfeature.Routes(r, dailyNotifier, appCfg.JobToken, logger)

	return r, nil
}
