package list

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
		collection: db.Collection("lists"),
	}
}

// ownedFilter scopes every lookup to the caller. A wrong owner and a wrong id
// fail the same way, so existence never leaks to non-owners.
func ownedFilter(id, ownerID string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": objectID, "_userId": ownerID}, nil
}

func (r *MongoRepo) Create(list *List) error {
	ctx := context.TODO()

	result, err := r.collection.InsertOne(ctx, list)
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		list.MongoID = oid
		list.ID = oid.Hex()
	} else {
		return errors.New("failed to convert inserted ID to ObjectID")
	}

	return nil
}

func (r *MongoRepo) GetByOwner(ownerID string) ([]*List, error) {
	ctx := context.TODO()

	cursor, err := r.collection.Find(ctx, bson.M{"_userId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}
	defer cursor.Close(ctx)

	lists := make([]*List, 0)
	for cursor.Next(ctx) {
		var l List
		if cursor.Decode(&l) == nil {
			l.ID = l.MongoID.Hex()
			lists = append(lists, &l)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}
	return lists, nil
}

func (r *MongoRepo) GetByID(id, ownerID string) (*List, error) {
	ctx := context.TODO()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	var l List
	err = r.collection.FindOne(ctx, filter).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list: %w", err)
	}

	l.ID = l.MongoID.Hex()
	return &l, nil
}

func (r *MongoRepo) Update(id, ownerID string, upd Update) (*List, error) {
	ctx := context.TODO()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if len(set) == 0 {
		return r.GetByID(id, ownerID)
	}

	var updated List
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
		return nil, fmt.Errorf("failed to update list: %w", err)
	}

	updated.ID = updated.MongoID.Hex()
	return &updated, nil
}

func (r *MongoRepo) Delete(id, ownerID string) (*List, error) {
	ctx := context.TODO()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	var deleted List
	err = r.collection.FindOneAndDelete(ctx, filter).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete list: %w", err)
	}

	deleted.ID = deleted.MongoID.Hex()
	return &deleted, nil
}
