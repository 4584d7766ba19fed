// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"

	"github.com/dalemusser/pulsecheck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a membership id does not resolve.
	ErrNotFound = errors.New("membership not found")
	// ErrDuplicateMembership is returned when the (group, employee) pair
	// already exists.
	ErrDuplicateMembership = errors.New("employee is already a member of this group")
	// ErrOrgMismatch is returned when the group and employee belong to
	// different organisations.
	ErrOrgMismatch = errors.New("group and employee belong to different organisations")
)

type Store struct {
	c         *mongo.Collection
	groups    *mongo.Collection
	employees *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("group_members"),
		groups:    db.Collection("groups"),
		employees: db.Collection("employees"),
	}
}

// Add creates a membership after enforcing the same-organisation invariant.
// Uniqueness of (group, employee) is a pre-insert existence check, not a
// storage constraint; two racing adds can both land. Accepted at this scale.
func (s *Store) Add(ctx context.Context, groupID, employeeID primitive.ObjectID) (models.GroupMembership, error) {
	var g models.Group
	if err := s.groups.FindOne(ctx, bson.M{"_id": groupID}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.GroupMembership{}, ErrNotFound
		}
		return models.GroupMembership{}, err
	}

	var e models.Employee
	if err := s.employees.FindOne(ctx, bson.M{"_id": employeeID}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.GroupMembership{}, ErrNotFound
		}
		return models.GroupMembership{}, err
	}

	if g.Organisation != e.Organisation {
		return models.GroupMembership{}, ErrOrgMismatch
	}

	err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "employee_id": employeeID}).Err()
	if err == nil {
		return models.GroupMembership{}, ErrDuplicateMembership
	}
	if err != mongo.ErrNoDocuments {
		return models.GroupMembership{}, err
	}

	m := models.GroupMembership{
		ID:         primitive.NewObjectID(),
		GroupID:    groupID,
		EmployeeID: employeeID,
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.GroupMembership{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.GroupMembership, error) {
	var m models.GroupMembership
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.GroupMembership{}, ErrNotFound
		}
		return models.GroupMembership{}, err
	}
	return m, nil
}

// Remove deletes a membership document by id.
func (s *Store) Remove(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByGroup returns all memberships for a group.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMembership, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.GroupMembership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// DeleteByGroup removes all memberships for a group. Returns the number of
// documents deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByEmployee removes all memberships for an employee. Returns the
// number of documents deleted.
func (s *Store) DeleteByEmployee(ctx context.Context, employeeID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Exists checks for a membership on the given (group, employee) pair.
func (s *Store) Exists(ctx context.Context, groupID, employeeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "employee_id": employeeID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
