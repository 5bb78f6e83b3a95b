package list

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound also covers ownership mismatches: a list that exists but
// belongs to someone else looks exactly like a missing one.
var ErrNotFound = errors.New("list not found")

type List struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID      string             `json:"_id" bson:"-"`
	Title   string             `json:"title" bson:"title"`
	OwnerID string             `json:"_userId" bson:"_userId"`
}

// Update carries the PATCH body; nil fields are left untouched.
type Update struct {
	Title *string `json:"title"`
}

type Repository interface {
	Create(list *List) error
	GetByOwner(ownerID string) ([]*List, error)
	GetByID(id, ownerID string) (*List, error)
	Update(id, ownerID string, upd Update) (*List, error)
	Delete(id, ownerID string) (*List, error)
}
