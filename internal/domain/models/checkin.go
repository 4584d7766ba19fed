package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckIn is one mood record for one employee on one calendar date.
//
// The organisation is denormalized from the employee at write time so that
// check-ins survive employee deletion (retention over referential integrity).
// Date is the UTC calendar day string, "YYYY-MM-DD". At most one check-in
// exists per (employee, date); resubmissions on the same day overwrite the
// mood, note, and timestamp in place.
type CheckIn struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	EmployeeID   primitive.ObjectID `bson:"employee_id" json:"employeeId"`
	Organisation string             `bson:"organisation" json:"organisation"`
	Mood         Mood               `bson:"mood" json:"mood"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	Date         string             `bson:"date" json:"date"`
}

// CheckInDate formats an instant as the UTC calendar day string used on
// CheckIn.Date. All day-boundary decisions in the system go through this.
func CheckInDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
