package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth methods for manager accounts.
const (
	AuthMethodPassword = "password"
	AuthMethodGoogle   = "google"
)

// User is a manager account.
//
// Organisation is the tenant string that scopes everything a manager can see.
// It may be empty right after signup (in particular for Google sign-ins);
// reads return empty results and writes are rejected until the manager
// completes their profile.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"fullName"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string             `bson:"auth_method" json:"authMethod"`
	GoogleID     string             `bson:"google_id,omitempty" json:"-"`
	Organisation string             `bson:"organisation" json:"organisation"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
