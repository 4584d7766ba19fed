// internal/app/store/employees/employeestore.go
package employeestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/pulsecheck/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when an employee id does not resolve.
var ErrNotFound = errors.New("employee not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("employees")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Employee, error) {
	var e models.Employee
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Employee{}, ErrNotFound
		}
		return models.Employee{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	e.ID = primitive.NewObjectID()
	e.FirstNameCI = text.Fold(e.FirstName)
	e.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

// ListByOrg returns an organisation's employees, newest first.
func (s *Store) ListByOrg(ctx context.Context, organisation string) ([]models.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"organisation": organisation}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var employees []models.Employee
	if err := cur.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// ListAll returns every employee across every organisation. Used by the
// daily notifier; there is no pagination, which is acceptable only while
// the total stays small.
func (s *Store) ListAll(ctx context.Context) ([]models.Employee, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var employees []models.Employee
	if err := cur.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Delete removes an employee by ID. Returns the number of documents
// deleted (0 or 1). Membership cleanup is the caller's responsibility;
// historical check-ins are deliberately left in place.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByOrg returns the number of employees in an organisation.
func (s *Store) CountByOrg(ctx context.Context, organisation string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"organisation": organisation})
}
