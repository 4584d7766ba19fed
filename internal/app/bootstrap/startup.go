// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsecheck/internal/app/system/mailer"
	"github.com/dalemusser/pulsecheck/internal/app/system/notifier"
	"github.com/dalemusser/pulsecheck/internal/app/system/tasks"
)

// Shared singletons built during Startup. BuildHandler mounts routes
// against dailyNotifier; Shutdown stops dailyScheduler.
var (
	dailyNotifier  *notifier.Notifier
	dailyScheduler *tasks.Scheduler
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// PulseCheck builds the mailer and daily check-in scheduler here.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	mail := mailer.New(mailer.Config{
		ResendAPIKey: appCfg.ResendAPIKey,
		SMTPHost:     appCfg.MailSMTPHost,
		SMTPPort:     appCfg.MailSMTPPort,
		SMTPUser:     appCfg.MailSMTPUser,
		SMTPPass:     appCfg.MailSMTPPass,
		From:         appCfg.MailFrom,
		FromName:     appCfg.MailFromName,
	}, logger)

	dailyNotifier = notifier.New(deps.MongoDatabase, mail, appCfg.BaseURL, appCfg.SiteName, logger)

	sched, err := tasks.NewScheduler(dailyNotifier, appCfg.DailySendHourUTC, appCfg.DailySendMinuteUTC, logger)
	if err != nil {
		return err
	}
	sched.Start()
	dailyScheduler = sched

	logger.Info("daily check-in scheduler started",
		zap.Int("hour_utc", appCfg.DailySendHourUTC),
		zap.Int("minute_utc", appCfg.DailySendMinuteUTC))
	return nil
}
