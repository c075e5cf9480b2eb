package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
)

var ErrInvalidPath = errors.New("mongo: invalid document path")

// DocumentStore maps the path-addressed store onto MongoDB: the first
// path segment selects the collection, the remaining segments form the
// document _id. A branch read assembles the nested subtree from every
// document below the path, mirroring the in-memory store.
type DocumentStore struct {
	db     *mongo.Database
	keyGen func() string
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{db: db, keyGen: uuid.NewString}
}

type document struct {
	ID  string `bson:"_id"`
	Doc bson.M `bson:"doc"`
}

func (s *DocumentStore) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	collection, rest, err := splitPath(path)
	if err != nil {
		return nil, false, err
	}
	col := s.db.Collection(collection)

	if rest != "" {
		var doc document
		err := col.FindOne(ctx, bson.M{"_id": rest}).Decode(&doc)
		switch {
		case err == nil:
			raw, err := json.Marshal(doc.Doc)
			return raw, true, err
		case errors.Is(err, mongo.ErrNoDocuments):
			// fall through to the subtree scan
		default:
			return nil, false, err
		}
	}

	filter := bson.M{}
	prefix := ""
	if rest != "" {
		prefix = rest + "/"
		filter["_id"] = bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}
	}
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	defer cursor.Close(ctx)

	tree := map[string]any{}
	found := false
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, false, err
		}
		found = true
		nestValue(tree, strings.Split(doc.ID[len(prefix):], "/"), map[string]any(doc.Doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	raw, err := json.Marshal(tree)
	return raw, found, err
}

func (s *DocumentStore) Put(ctx context.Context, path string, value any) error {
	collection, rest, err := splitPath(path)
	if err != nil {
		return err
	}
	if rest == "" {
		return ErrInvalidPath
	}
	doc, err := toDocumentBody(value)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(collection).ReplaceOne(ctx,
		bson.M{"_id": rest},
		document{ID: rest, Doc: doc},
		options.Replace().SetUpsert(true))
	return err
}

func (s *DocumentStore) Patch(ctx context.Context, path string, partial map[string]any) error {
	collection, rest, err := splitPath(path)
	if err != nil {
		return err
	}
	if rest == "" {
		return ErrInvalidPath
	}
	set := bson.M{}
	for key, value := range partial {
		set["doc."+key] = value
	}
	_, err = s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": rest},
		bson.M{"$set": set},
		options.Update().SetUpsert(true))
	return err
}

func (s *DocumentStore) Post(ctx context.Context, path string, value any) (string, error) {
	collection, rest, err := splitPath(path)
	if err != nil {
		return "", err
	}
	doc, err := toDocumentBody(value)
	if err != nil {
		return "", err
	}
	key := s.keyGen()
	id := key
	if rest != "" {
		id = rest + "/" + key
	}
	_, err = s.db.Collection(collection).InsertOne(ctx, document{ID: id, Doc: doc})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *DocumentStore) Delete(ctx context.Context, path string) error {
	collection, rest, err := splitPath(path)
	if err != nil {
		return err
	}
	col := s.db.Collection(collection)
	if rest == "" {
		return col.Drop(ctx)
	}
	if _, err := col.DeleteOne(ctx, bson.M{"_id": rest}); err != nil {
		return err
	}
	_, err = col.DeleteMany(ctx, bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(rest+"/")}})
	return err
}

func splitPath(path string) (collection, rest string, err error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return "", "", ErrInvalidPath
	}
	collection, rest, _ = strings.Cut(path, "/")
	return collection, rest, nil
}

// toDocumentBody round-trips the value through JSON so stored
// documents carry the same field names the HTTP layer serves.
func toDocumentBody(value any) (bson.M, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.New("mongo: document value must be a JSON object")
	}
	return doc, nil
}

func nestValue(tree map[string]any, segments []string, value any) {
	current := tree
	for i, segment := range segments {
		if i == len(segments)-1 {
			current[segment] = value
			return
		}
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[segment] = next
		}
		current = next
	}
}

var _ policies.DataStore = (*DocumentStore)(nil)
