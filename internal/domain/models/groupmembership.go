package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupMembership is the join between groups and employees.
// At most one document per (group_id, employee_id); uniqueness is checked
// before insert rather than enforced by the storage layer.
type GroupMembership struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID    primitive.ObjectID `bson:"group_id" json:"groupId"`
	EmployeeID primitive.ObjectID `bson:"employee_id" json:"employeeId"`
}
