// internal/app/store/checkins/checkinstore.go
package checkinstore

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	employeestore "github.com/dalemusser/pulsecheck/internal/app/store/employees"
	"github.com/dalemusser/pulsecheck/internal/domain/models"
)

// ErrEmployeeNotFound is returned by Submit when the employee id does not
// resolve. Re-exported so handlers don't need to import the employee store.
var ErrEmployeeNotFound = employeestore.ErrNotFound

// notePolicy strips all HTML from free-text notes before storage.
var notePolicy = bluemonday.StrictPolicy()

type Store struct {
	c         *mongo.Collection
	employees *employeestore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("mood_checkins"),
		employees: employeestore.New(db),
	}
}

// Submit records a mood for an employee on today's UTC date.
//
// At most one check-in exists per (employee, date): if one is already
// present it is overwritten in place (mood, note, timestamp; same id and
// date), so a user may change their reading during the day and only the
// latest survives. Two near-simultaneous submissions race to last-write-
// wins; there is no guard beyond per-document atomicity, by agreement.
//
// The organisation is denormalized from the employee at write time, which
// is what lets check-ins outlive employee deletion.
func (s *Store) Submit(ctx context.Context, employeeID primitive.ObjectID, mood models.Mood, note string) (models.CheckIn, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return models.CheckIn{}, err
	}

	now := time.Now().UTC()
	today := models.CheckInDate(now)
	note = notePolicy.Sanitize(note)

	var existing models.CheckIn
	err = s.c.FindOne(ctx, bson.M{
		"organisation": employee.Organisation,
		"date":         today,
		"employee_id":  employeeID,
	}).Decode(&existing)

	switch err {
	case nil:
		_, err = s.c.UpdateByID(ctx, existing.ID, bson.M{"$set": bson.M{
			"mood":      mood,
			"note":      note,
			"timestamp": now,
		}})
		if err != nil {
			return models.CheckIn{}, err
		}
		existing.Mood = mood
		existing.Note = note
		existing.Timestamp = now
		return existing, nil

	case mongo.ErrNoDocuments:
		checkin := models.CheckIn{
			ID:           primitive.NewObjectID(),
			EmployeeID:   employeeID,
			Organisation: employee.Organisation,
			Mood:         mood,
			Note:         note,
			Timestamp:    now,
			Date:         today,
		}
		if _, err := s.c.InsertOne(ctx, checkin); err != nil {
			return models.CheckIn{}, err
		}
		return checkin, nil

	default:
		return models.CheckIn{}, err
	}
}

// ListByOrgDate returns every check-in for one organisation on one date.
func (s *Store) ListByOrgDate(ctx context.Context, organisation, date string) ([]models.CheckIn, error) {
	cur, err := s.c.Find(ctx, bson.M{"organisation": organisation, "date": date})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var checkins []models.CheckIn
	if err := cur.All(ctx, &checkins); err != nil {
		return nil, err
	}
	return checkins, nil
}

// GetByEmployeeDate fetches the single check-in for (employee, date).
func (s *Store) GetByEmployeeDate(ctx context.Context, employeeID primitive.ObjectID, date string) (models.CheckIn, bool, error) {
	var c models.CheckIn
	err := s.c.FindOne(ctx, bson.M{"employee_id": employeeID, "date": date}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return models.CheckIn{}, false, nil
	}
	if err != nil {
		return models.CheckIn{}, false, err
	}
	return c, true, nil
}

// CountByOrgDate returns the number of check-ins for (organisation, date).
func (s *Store) CountByOrgDate(ctx context.Context, organisation, date string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"organisation": organisation, "date": date})
}
