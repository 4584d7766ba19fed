package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pulsecheck/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls stack: an existing route context keeps its earlier params.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test manager account in the given organisation.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, organisation string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		EmailCI:      text.Fold(email),
		AuthMethod:   models.AuthMethodPassword,
		Organisation: organisation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateEmployee creates a test employee in the given organisation.
func (f *Fixtures) CreateEmployee(ctx context.Context, firstName, email, organisation string) models.Employee {
	f.t.Helper()

	employee := models.Employee{
		ID:           primitive.NewObjectID(),
		FirstName:    firstName,
		FirstNameCI:  text.Fold(firstName),
		Email:        email,
		Organisation: organisation,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := f.db.Collection("employees").InsertOne(ctx, employee); err != nil {
		f.t.Fatalf("failed to create test employee: %v", err)
	}
	return employee
}

// CreateGroup creates a test group in the given organisation.
func (f *Fixtures) CreateGroup(ctx context.Context, name, organisation string) models.Group {
	f.t.Helper()

	group := models.Group{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Organisation: organisation,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateMembership links an employee to a group directly, bypassing the
// store's validation.
func (f *Fixtures) CreateMembership(ctx context.Context, groupID, employeeID primitive.ObjectID) models.GroupMembership {
	f.t.Helper()

	membership := models.GroupMembership{
		ID:         primitive.NewObjectID(),
		GroupID:    groupID,
		EmployeeID: employeeID,
	}

	if _, err := f.db.Collection("group_members").InsertOne(ctx, membership); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return membership
}

// CreateCheckIn records a mood check-in for an employee on a specific date.
func (f *Fixtures) CreateCheckIn(ctx context.Context, employee models.Employee, mood models.Mood, date string) models.CheckIn {
	f.t.Helper()

	checkin := models.CheckIn{
		ID:           primitive.NewObjectID(),
		EmployeeID:   employee.ID,
		Organisation: employee.Organisation,
		Mood:         mood,
		Timestamp:    time.Now().UTC(),
		Date:         date,
	}

	if _, err := f.db.Collection("mood_checkins").InsertOne(ctx, checkin); err != nil {
		f.t.Fatalf("failed to create test check-in: %v", err)
	}
	return checkin
}
