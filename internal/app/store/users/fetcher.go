// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/dalemusser/pulsecheck/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher adapts the user store to auth.UserFetcher, so the session
// middleware reloads fresh user data (name, organisation) on every request.
type Fetcher struct {
	store *Store
}

func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

func (f *Fetcher) FetchSessionUser(ctx context.Context, userID string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	u, err := f.store.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return &auth.SessionUser{
		ID:           u.ID.Hex(),
		Name:         u.FullName,
		Email:        u.Email,
		Organisation: u.Organisation,
	}, nil
}
