// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prompts

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultCollection is the collection the templates live in.
const DefaultCollection = "prompts"

// promptDocument is the on-disk shape of a prompt.
type promptDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Language string             `bson:"language"`
	Content  string             `bson:"content"`
	Type     string             `bson:"type"`
}

func (d *promptDocument) toPrompt() *Prompt {
	p := &Prompt{Name: d.Name, Language: d.Language, Content: d.Content, Type: d.Type}
	if !d.ID.IsZero() {
		p.ID = d.ID.Hex()
	}
	return p
}

// MongoStore reads and writes prompts in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore binds a store to database/collection on an existing client.
// An empty collection name selects DefaultCollection.
func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// ConnectMongo opens a pooled client for uri.
func ConnectMongo(ctx context.Context, uri string, minPool, maxPool uint64) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if minPool > 0 {
		opts.SetMinPoolSize(minPool)
	}
	if maxPool > 0 {
		opts.SetMaxPoolSize(maxPool)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	return client, nil
}

func keyFilter(storedName, language string) bson.M {
	return bson.M{"name": storedName, "language": language}
}

func (s *MongoStore) Get(ctx context.Context, key Key) (string, error) {
	var doc promptDocument
	err := s.collection.FindOne(ctx, keyFilter(key.StoredName(), key.Language)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrPromptNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read prompt %s: %w", key, err)
	}
	return doc.Content, nil
}

func (s *MongoStore) List(ctx context.Context, skip, limit int64) ([]*Prompt, error) {
	opts := options.Find().
		SetSkip(skip).
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "language", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	var docs []promptDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode prompts: %w", err)
	}
	out := make([]*Prompt, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toPrompt())
	}
	return out, nil
}

// Upsert inserts the prompt or replaces the content and type of the record
// sharing its (name, language).
func (s *MongoStore) Upsert(ctx context.Context, prompt *Prompt) error {
	update := bson.M{"$set": bson.M{
		"name":     prompt.Name,
		"language": prompt.Language,
		"content":  prompt.Content,
		"type":     prompt.Type,
	}}
	_, err := s.collection.UpdateOne(ctx, keyFilter(prompt.Name, prompt.Language), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert prompt %s/%s: %w", prompt.Name, prompt.Language, err)
	}
	return nil
}

// EnsureIndexes creates the unique (name, language) index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "language", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_language"),
	})
	if err != nil {
		return fmt.Errorf("failed to create prompt index: %w", err)
	}
	return nil
}

// Ping checks that the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}
