// Package store implements the JSON collection files backing the
// repositories. Each collection lives in one file shaped as
//
//	{"metadata": {"last_updated", "version", "next_id"}, "<key>": [...]}
//
// Writes go through a sibling temp file that is fsynced and atomically
// renamed over the target, so the canonical file is never observed in
// a half-written state. No file locking is done: the design assumes a
// single writer process, and two concurrent writers can lose updates
// (last write wins on the whole collection).
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cisclab/registrar-backend/internal/apperror"
)

// Version is the on-disk format version stamped into metadata.
const Version = "1.0"

// Record is the constraint for collection item types: each must know
// how to deep-copy itself so cached documents stay independent of
// what callers mutate.
type Record[T any] interface {
	Clone() T
}

// Metadata is the bookkeeping block persisted alongside every
// collection.
type Metadata struct {
	LastUpdated string `json:"last_updated"`
	Version     string `json:"version"`
	NextID      int    `json:"next_id"`
}

// Document is one parsed collection: metadata plus the item list.
type Document[T Record[T]] struct {
	Metadata Metadata
	Items    []T
}

// Clone returns a deep copy of the document.
func (d *Document[T]) Clone() *Document[T] {
	items := make([]T, len(d.Items))
	for i := range d.Items {
		items[i] = d.Items[i].Clone()
	}
	return &Document[T]{Metadata: d.Metadata, Items: items}
}

// ClaimNextID returns the next free integer id and advances
// metadata.next_id past it. Existing ids are re-scanned defensively so
// a drifted counter can never hand out a colliding id.
func (d *Document[T]) ClaimNextID(idOf func(T) int) int {
	existing := make(map[int]bool, len(d.Items))
	for _, item := range d.Items {
		existing[idOf(item)] = true
	}

	next := d.Metadata.NextID
	for existing[next] {
		next++
	}
	d.Metadata.NextID = next + 1
	return next
}

// Store owns the on-disk representation of one named collection. The
// in-memory cache is a field on the store value, not a package
// global, so independent stores never share state.
type Store[T Record[T]] struct {
	path  string
	key   string
	cache *Document[T]
}

// New creates a store for the collection file at path. key is the
// top-level JSON key holding the item list ("sections", "classes").
func New[T Record[T]](path, key string) *Store[T] {
	return &Store[T]{path: path, key: key}
}

// Path returns the canonical collection file path.
func (s *Store[T]) Path() string { return s.path }

// EnsureExists creates the parent directory and an empty structural
// skeleton if the collection file is absent.
func (s *Store[T]) EnsureExists() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperror.NewStorage("create data directory", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return apperror.NewStorage("stat collection file", err)
	}

	initial := &Document[T]{
		Metadata: Metadata{
			LastUpdated: time.Now().Format(time.RFC3339),
			Version:     Version,
			NextID:      1,
		},
		Items: []T{},
	}
	encoded, err := s.encode(initial)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, encoded, 0o644); err != nil {
		return apperror.NewStorage("initialize collection file", err)
	}
	return nil
}

// Load returns a deep copy of the collection, served from the cache
// until the next successful Save. Only the canonical path is read; an
// orphaned temp file from an unclean kill is ignored.
func (s *Store[T]) Load() (*Document[T], error) {
	if s.cache != nil {
		return s.cache.Clone(), nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperror.NewStorage(fmt.Sprintf("read collection file %s", s.path), err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, apperror.NewStorage(fmt.Sprintf("invalid JSON in %s", s.path), err)
	}

	metaRaw, ok := top["metadata"]
	if !ok {
		return nil, apperror.NewStorage(fmt.Sprintf("invalid structure in %s: missing metadata", s.path), nil)
	}
	itemsRaw, ok := top[s.key]
	if !ok {
		return nil, apperror.NewStorage(fmt.Sprintf("invalid structure in %s: missing %q", s.path, s.key), nil)
	}

	doc := &Document[T]{}
	if err := json.Unmarshal(metaRaw, &doc.Metadata); err != nil {
		return nil, apperror.NewStorage(fmt.Sprintf("invalid metadata in %s", s.path), err)
	}
	if err := json.Unmarshal(itemsRaw, &doc.Items); err != nil {
		return nil, apperror.NewStorage(fmt.Sprintf("invalid %q entries in %s", s.key, s.path), err)
	}
	if doc.Items == nil {
		doc.Items = []T{}
	}

	s.cache = doc
	return s.cache.Clone(), nil
}

// Save stamps metadata.last_updated and atomically replaces the
// collection file: write temp, fsync, rename. On any failure the temp
// file is removed best-effort and the original file is untouched. The
// cache is invalidated on success.
func (s *Store[T]) Save(doc *Document[T]) error {
	doc.Metadata.LastUpdated = time.Now().Format(time.RFC3339)
	if doc.Metadata.Version == "" {
		doc.Metadata.Version = Version
	}

	encoded, err := s.encode(doc)
	if err != nil {
		return err
	}

	tempPath := s.path + ".tmp"
	if err := s.writeAndSync(tempPath, encoded); err != nil {
		_ = os.Remove(tempPath)
		return apperror.NewStorage(fmt.Sprintf("write temp file %s", tempPath), err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return apperror.NewStorage(fmt.Sprintf("replace collection file %s", s.path), err)
	}

	s.cache = nil
	return nil
}

// Invalidate drops the in-memory cache, forcing the next Load to hit
// disk.
func (s *Store[T]) Invalidate() { s.cache = nil }

func (s *Store[T]) writeAndSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encode renders the document as 2-space-indented UTF-8 JSON with
// metadata first, matching the established file layout.
func (s *Store[T]) encode(doc *Document[T]) ([]byte, error) {
	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return nil, apperror.NewStorage("encode metadata", err)
	}
	items, err := json.Marshal(doc.Items)
	if err != nil {
		return nil, apperror.NewStorage("encode collection items", err)
	}
	if doc.Items == nil {
		items = []byte("[]")
	}

	key, err := json.Marshal(s.key)
	if err != nil {
		return nil, apperror.NewStorage("encode collection key", err)
	}

	compact := fmt.Sprintf(`{"metadata":%s,%s:%s}`, meta, key, items)
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(compact), "", "  "); err != nil {
		return nil, apperror.NewStorage("indent collection JSON", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
