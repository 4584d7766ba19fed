package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a named cohort of employees inside an organisation.
//
// NOTE:
//   - Membership is not embedded on Group; it lives in the group_members
//     collection, one document per (group, employee).
type Group struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"`
	Organisation string             `bson:"organisation" json:"organisation"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
