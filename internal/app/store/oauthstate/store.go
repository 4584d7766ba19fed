// internal/app/store/oauthstate/store.go
package oauthstate

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store holds transient OAuth state tokens. A TTL index on expires_at
// cleans up abandoned flows; Validate also checks the expiry explicitly
// since TTL sweeps can lag.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

type stateDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	State     string             `bson:"state"`
	ReturnURL string             `bson:"return_url"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

// Save stores a state token with its expiry.
func (s *Store) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	_, err := s.c.InsertOne(ctx, stateDoc{
		ID:        primitive.NewObjectID(),
		State:     state,
		ReturnURL: returnURL,
		ExpiresAt: expiresAt,
	})
	return err
}

// Validate consumes a state token. Returns the stored return URL and
// whether the token was present and unexpired. Tokens are single-use.
func (s *Store) Validate(ctx context.Context, state string) (returnURL string, valid bool, err error) {
	var doc stateDoc
	err = s.c.FindOneAndDelete(ctx, bson.M{"state": state}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if time.Now().UTC().After(doc.ExpiresAt) {
		return "", false, nil
	}
	return doc.ReturnURL, true, nil
}
