package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task belongs to exactly one user. Only the owner may read, update or
// delete it; every lookup is scoped by both id and owner.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Description string             `bson:"description" json:"description"`
	Completed   bool               `bson:"completed" json:"completed"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
