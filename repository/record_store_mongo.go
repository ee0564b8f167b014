package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arrivaldo/code-challenge-backend/models"
)

// MongoRecordStore keeps the whole document in a single record of the
// documents collection; the version field in the update predicate rejects
// stale saves.
type MongoRecordStore struct {
	Client *mongo.Client
	DBName string
}

func NewMongoRecordStore(client *mongo.Client, dbName string) *MongoRecordStore {
	return &MongoRecordStore{Client: client, DBName: dbName}
}

func (s *MongoRecordStore) collection() *mongo.Collection {
	return s.Client.Database(s.DBName).Collection("documents")
}

type mongoDocument struct {
	ID      string         `bson:"_id"`
	Version int64          `bson:"version"`
	Users   []models.User  `bson:"users"`
	Admins  []models.Admin `bson:"admins"`
}

func (s *MongoRecordStore) Load(ctx context.Context) (*models.Document, error) {
	var stored mongoDocument
	err := s.collection().FindOne(ctx, bson.M{"_id": documentKey}).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: loading document: %v", ErrStorageUnavailable, err)
	}

	doc := &models.Document{Version: stored.Version, Users: stored.Users, Admins: stored.Admins}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Admins == nil {
		doc.Admins = []models.Admin{}
	}
	return doc, nil
}

func (s *MongoRecordStore) Save(ctx context.Context, doc *models.Document) error {
	coll := s.collection()

	if doc.Version == 0 {
		_, err := coll.InsertOne(ctx, mongoDocument{
			ID:      documentKey,
			Version: 1,
			Users:   doc.Users,
			Admins:  doc.Admins,
		})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrVersionConflict
			}
			return fmt.Errorf("%w: inserting document: %v", ErrStorageUnavailable, err)
		}
		doc.Version = 1
		return nil
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": documentKey, "version": doc.Version},
		bson.M{
			"$set": bson.M{"users": doc.Users, "admins": doc.Admins},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("%w: saving document: %v", ErrStorageUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	doc.Version++
	return nil
}
