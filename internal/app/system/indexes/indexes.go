// Package indexes sets up MongoDB indexes at startup.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll is called from the EnsureSchema hook. Index creation is
// idempotent; errors are aggregated so any problem is visible and startup
// can fail fast.
//
// The group_members (group_id, employee_id) index is deliberately NOT
// unique: membership uniqueness is checked before insert, and two racing
// inserts can both land. That race is accepted at this scale.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureEmployees(ctx, db); err != nil {
		problems = append(problems, "employees: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureGroupMembers(ctx, db); err != nil {
		problems = append(problems, "group_members: "+err.Error())
	}
	if err := ensureMoodCheckins(ctx, db); err != nil {
		problems = append(problems, "mood_checkins: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_users_email_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "google_id", Value: 1}},
			Options: options.Index().SetName("idx_users_google_id").SetSparse(true),
		},
	})
	return err
}

func ensureEmployees(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("employees").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organisation", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_employees_org_created"),
		},
	})
	return err
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organisation", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_groups_org_created"),
		},
	})
	return err
}

func ensureGroupMembers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("group_members").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "employee_id", Value: 1}},
			Options: options.Index().SetName("idx_group_members_group_employee"),
		},
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetName("idx_group_members_employee"),
		},
	})
	return err
}

func ensureMoodCheckins(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("mood_checkins").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organisation", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_mood_checkins_org_date"),
		},
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_mood_checkins_employee_date"),
		},
	})
	return err
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("oauth_states").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetName("uniq_oauth_states_state").SetUnique(true),
		},
		{
			// expires_at is the exact expiry instant, so the TTL delay is zero.
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_oauth_states_expires").SetExpireAfterSeconds(0),
		},
	})
	return err
}
