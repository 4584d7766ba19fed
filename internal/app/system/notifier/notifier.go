// Package notifier sends the daily check-in email to every employee.
package notifier

import (
	"context"
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	employeestore "github.com/dalemusser/pulsecheck/internal/app/store/employees"
	"github.com/dalemusser/pulsecheck/internal/app/system/mailer"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
)

// Result reports the outcome of one daily run.
type Result struct {
	SentCount      int `json:"sentCount"`
	ErrorCount     int `json:"errorCount"`
	TotalEmployees int `json:"totalEmployees"`
}

// Notifier dispatches the daily check-in batch. It is driven either by the
// in-process gocron schedule or by an external scheduler hitting the
// /jobs/daily-checkin endpoint; the logic here assumes nothing about who
// triggered it.
type Notifier struct {
	employees *employeestore.Store
	mail      *mailer.Mailer
	baseURL   string
	siteName  string
	log       *zap.Logger
}

func New(db *mongo.Database, mail *mailer.Mailer, baseURL, siteName string, logger *zap.Logger) *Notifier {
	return &Notifier{
		employees: employeestore.New(db),
		mail:      mail,
		baseURL:   baseURL,
		siteName:  siteName,
		log:       logger,
	}
}

// Run sends one check-in email to every employee across every organisation.
//
// It fails closed, sending nothing, when no mail transport is configured.
// Per-employee failures are counted and skipped; one bad address or a
// provider hiccup never aborts the batch, and failed sends are not retried
// until the next scheduled run. Sends are sequential: the batch is small
// and the mail provider does the real work.
func (n *Notifier) Run(ctx context.Context) (Result, error) {
	if !n.mail.Configured() {
		n.log.Error("daily check-in run aborted: no mail transport configured")
		return Result{}, mailer.ErrNotConfigured
	}

	employees, err := n.employees.ListAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load employees: %w", err)
	}

	result := Result{TotalEmployees: len(employees)}
	for _, e := range employees {
		if err := n.sendOne(ctx, e); err != nil {
			result.ErrorCount++
			n.log.Warn("daily check-in email failed",
				zap.String("employee_id", e.ID.Hex()),
				zap.String("email", e.Email),
				zap.Error(err))
			continue
		}
		result.SentCount++
	}

	n.log.Info("daily check-in run complete",
		zap.Int("sent", result.SentCount),
		zap.Int("errors", result.ErrorCount),
		zap.Int("total", result.TotalEmployees))
	return result, nil
}

func (n *Notifier) sendOne(ctx context.Context, e models.Employee) error {
	msg := mailer.BuildCheckInEmail(mailer.CheckInEmailData{
		SiteName:  n.siteName,
		FirstName: e.FirstName,
		GreenURL:  n.moodURL(e, models.MoodGreen),
		AmberURL:  n.moodURL(e, models.MoodAmber),
		RedURL:    n.moodURL(e, models.MoodRed),
	})
	msg.To = e.Email
	return n.mail.Send(ctx, msg)
}

// moodURL builds a pre-authenticated response link. The link itself is the
// only credential: anyone holding it can record this mood for the employee.
func (n *Notifier) moodURL(e models.Employee, mood models.Mood) string {
	q := url.Values{}
	q.Set("employeeId", e.ID.Hex())
	q.Set("mood", string(mood))
	return n.baseURL + "/mood-response?" + q.Encode()
}
