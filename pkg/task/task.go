package task

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("task not found")

type Task struct {
	MongoID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID        string             `json:"_id" bson:"-"`
	Title     string             `json:"title" bson:"title"`
	Completed bool               `json:"completed" bson:"completed"`
	ListID    string             `json:"_listId" bson:"_listId"`
}

// Update carries the PATCH body; nil fields are left untouched.
type Update struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type Repository interface {
	Create(task *Task) error
	GetByList(listID string) ([]*Task, error)
	GetByID(id, listID string) (*Task, error)
	Update(id, listID string, upd Update) (*Task, error)
	Delete(id, listID string) (*Task, error)
	DeleteByList(listID string) error
}
