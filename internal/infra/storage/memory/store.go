package memory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
)

var ErrInvalidPath = errors.New("memory: invalid document path")

// DocumentStore is an in-memory, path-addressed document store. Leaf
// documents are kept as raw JSON under their full path; reading a
// branch path assembles the nested subtree the way the remote store
// would return it.
type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[string]json.RawMessage
	keyGen func() string
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs:   make(map[string]json.RawMessage),
		keyGen: uuid.NewString,
	}
}

func (s *DocumentStore) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	path, err := normalizePath(path)
	if err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if raw, ok := s.docs[path]; ok {
		return cloneRaw(raw), true, nil
	}

	prefix := path + "/"
	tree := map[string]any{}
	found := false
	for docPath, raw := range s.docs {
		if !strings.HasPrefix(docPath, prefix) {
			continue
		}
		found = true
		if err := nestDocument(tree, strings.Split(docPath[len(prefix):], "/"), raw); err != nil {
			return nil, false, err
		}
	}
	if !found {
		return nil, false, nil
	}
	assembled, err := json.Marshal(tree)
	if err != nil {
		return nil, false, err
	}
	return assembled, true, nil
}

func (s *DocumentStore) Put(ctx context.Context, path string, value any) error {
	path, err := normalizePath(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = raw
	return nil
}

func (s *DocumentStore) Patch(ctx context.Context, path string, partial map[string]any) error {
	path, err := normalizePath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := map[string]any{}
	if existing, ok := s.docs[path]; ok {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return err
		}
	}
	for key, value := range partial {
		doc[key] = value
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.docs[path] = raw
	return nil
}

func (s *DocumentStore) Post(ctx context.Context, path string, value any) (string, error) {
	path, err := normalizePath(path)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	key := s.keyGen()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path+"/"+key] = raw
	return key, nil
}

func (s *DocumentStore) Delete(ctx context.Context, path string) error {
	path, err := normalizePath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path)
	prefix := path + "/"
	for docPath := range s.docs {
		if strings.HasPrefix(docPath, prefix) {
			delete(s.docs, docPath)
		}
	}
	return nil
}

// Len reports the number of stored leaf documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func normalizePath(path string) (string, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return "", ErrInvalidPath
	}
	return path, nil
}

func nestDocument(tree map[string]any, segments []string, raw json.RawMessage) error {
	current := tree
	for i, segment := range segments {
		if i == len(segments)-1 {
			var value any
			if err := json.Unmarshal(raw, &value); err != nil {
				return err
			}
			current[segment] = value
			return nil
		}
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[segment] = next
		}
		current = next
	}
	return nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

var _ policies.DataStore = (*DocumentStore)(nil)
