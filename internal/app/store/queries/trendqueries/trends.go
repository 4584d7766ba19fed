// internal/app/store/queries/trendqueries/trends.go
package trendqueries

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	checkinstore "github.com/dalemusser/pulsecheck/internal/app/store/checkins"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
)

// DefaultWindowDays is the trend window used when the caller does not ask
// for a specific number of days.
const DefaultWindowDays = 7

// DaySummary is one day's aggregate for an organisation.
//
// The three percentages are each rounded independently, so they are not
// guaranteed to sum to 100. Dashboards consuming this have always shown the
// per-bucket values verbatim, so the rounding artifact is kept for
// compatibility rather than redistributed.
type DaySummary struct {
	Date         string `json:"date"`
	Green        int    `json:"green"`
	Amber        int    `json:"amber"`
	Red          int    `json:"red"`
	Total        int    `json:"total"`
	GreenPercent int    `json:"greenPercent"`
	AmberPercent int    `json:"amberPercent"`
	RedPercent   int    `json:"redPercent"`
}

// Summarize computes one day's aggregate from its check-ins. A day with no
// check-ins yields all zeros, percentages included.
func Summarize(date string, checkins []models.CheckIn) DaySummary {
	s := DaySummary{Date: date, Total: len(checkins)}
	for _, c := range checkins {
		switch c.Mood {
		case models.MoodGreen:
			s.Green++
		case models.MoodAmber:
			s.Amber++
		case models.MoodRed:
			s.Red++
		}
	}
	if s.Total > 0 {
		s.GreenPercent = percent(s.Green, s.Total)
		s.AmberPercent = percent(s.Amber, s.Total)
		s.RedPercent = percent(s.Red, s.Total)
	}
	return s
}

func percent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

// Window returns `days` consecutive UTC-day summaries ending today, oldest
// first. Each day is one indexed query on (organisation, date); the window
// is small and per-organisation volumes are bounded, so the per-day loop is
// fine.
func Window(ctx context.Context, db *mongo.Database, organisation string, days int) ([]DaySummary, error) {
	if days <= 0 {
		days = DefaultWindowDays
	}

	store := checkinstore.New(db)
	now := time.Now().UTC()

	summaries := make([]DaySummary, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := models.CheckInDate(now.AddDate(0, 0, -i))
		checkins, err := store.ListByOrgDate(ctx, organisation, date)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summarize(date, checkins))
	}
	return summaries, nil
}

// EnrichedCheckIn is a check-in joined with the employee's details for the
// manager dashboard. The employee fields are empty when the employee has
// since been deleted; the check-in itself is retained.
type EnrichedCheckIn struct {
	models.CheckIn `bson:",inline"`
	EmployeeName   string `json:"employeeName,omitempty"`
	EmployeeEmail  string `json:"employeeEmail,omitempty"`
}

// TodayWithEmployees returns today's check-ins for an organisation with
// employee first name and email attached.
func TodayWithEmployees(ctx context.Context, db *mongo.Database, organisation string) ([]EnrichedCheckIn, error) {
	store := checkinstore.New(db)
	today := models.CheckInDate(time.Now().UTC())

	checkins, err := store.ListByOrgDate(ctx, organisation, today)
	if err != nil {
		return nil, err
	}
	if len(checkins) == 0 {
		return []EnrichedCheckIn{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(checkins))
	for _, c := range checkins {
		ids = append(ids, c.EmployeeID)
	}

	cur, err := db.Collection("employees").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.Employee, len(ids))
	for cur.Next(ctx) {
		var e models.Employee
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		byID[e.ID] = e
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	enriched := make([]EnrichedCheckIn, 0, len(checkins))
	for _, c := range checkins {
		row := EnrichedCheckIn{CheckIn: c}
		if e, ok := byID[c.EmployeeID]; ok {
			row.EmployeeName = e.FirstName
			row.EmployeeEmail = e.Email
		}
		enriched = append(enriched, row)
	}
	return enriched, nil
}
