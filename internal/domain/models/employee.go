package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is a person who receives daily check-in emails.
//
// Employees belong to exactly one organisation (the tenant string). They are
// not login accounts; managers create and remove them. Deleting an employee
// cascades to its group memberships but never to its historical check-ins.
type Employee struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FirstName    string             `bson:"first_name" json:"firstName"`
	FirstNameCI  string             `bson:"first_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	Organisation string             `bson:"organisation" json:"organisation"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
