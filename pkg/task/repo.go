package task

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("tasks"),
	}
}

func scopedFilter(id, listID string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": objectID, "_listId": listID}, nil
}

func (r *MongoRepo) Create(task *Task) error {
	ctx := context.TODO()

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.MongoID = oid
		task.ID = oid.Hex()
	} else {
		return errors.New("failed to convert inserted ID to ObjectID")
	}

	return nil
}

func (r *MongoRepo) GetByList(listID string) ([]*Task, error) {
	ctx := context.TODO()

	cursor, err := r.collection.Find(ctx, bson.M{"_listId": listID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]*Task, 0)
	for cursor.Next(ctx) {
		var t Task
		if cursor.Decode(&t) == nil {
			t.ID = t.MongoID.Hex()
			tasks = append(tasks, &t)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return tasks, nil
}

func (r *MongoRepo) GetByID(id, listID string) (*Task, error) {
	ctx := context.TODO()

	filter, err := scopedFilter(id, listID)
	if err != nil {
		return nil, err
	}

	var t Task
	err = r.collection.FindOne(ctx, filter).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}

	t.ID = t.MongoID.Hex()
	return &t, nil
}

func (r *MongoRepo) Update(id, listID string, upd Update) (*Task, error) {
	ctx := context.TODO()

	filter, err := scopedFilter(id, listID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Completed != nil {
		set["completed"] = *upd.Completed
	}
	if len(set) == 0 {
		return r.GetByID(id, listID)
	}

	var updated Task
	err = r.collection.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated.ID = updated.MongoID.Hex()
	return &updated, nil
}

func (r *MongoRepo) Delete(id, listID string) (*Task, error) {
	ctx := context.TODO()

	filter, err := scopedFilter(id, listID)
	if err != nil {
		return nil, err
	}

	var deleted Task
	err = r.collection.FindOneAndDelete(ctx, filter).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	deleted.ID = deleted.MongoID.Hex()
	return &deleted, nil
}

func (r *MongoRepo) DeleteByList(listID string) error {
	ctx := context.TODO()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"_listId": listID}); err != nil {
		return fmt.Errorf("failed to delete tasks of list %s: %w", listID, err)
	}
	return nil
}
