package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/vytor/eduplay/internal/logger"
)

var (
	// ErrCorrupt marks a persisted value that cannot be decoded or fails
	// validation. Readers fall back to their default.
	ErrCorrupt = errors.New("store: corrupt value")
	// ErrWriteFailure marks a write the medium rejected. The attempted
	// mutation is lost from storage but callers keep going.
	ErrWriteFailure = errors.New("store: write failure")
	// ErrReadFailure marks a medium that could not be read. Update refuses to
	// write over a value it could not see.
	ErrReadFailure = errors.New("store: read failure")

	errNotSet = errors.New("store: key not set")
)

// Backend is the raw persistence medium. Values are complete JSON documents.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Validator is implemented by records that can check their own shape after
// decoding.
type Validator interface {
	Validate() error
}

// Store is a typed JSON key-value store. Every operation is serialized, so a
// read-modify-write through Update or Append never interleaves with another
// store call.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get decodes the value stored under key into dst, which must be a non-nil
// pointer. It returns false and leaves dst untouched when the key is missing,
// the medium cannot be read or the value is corrupt.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx, key, dst) == nil
}

// get reports why dst was left untouched: errNotSet, ErrReadFailure or
// ErrCorrupt.
func (s *Store) get(ctx context.Context, key string, dst any) error {
	log := logger.FromContext(ctx).WithPrefix("store")

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		log.Error("get %s: destination must be a non-nil pointer, got %T", key, dst)
		return fmt.Errorf("%w: %s: bad destination %T", ErrReadFailure, key, dst)
	}

	data, ok, err := s.backend.Load(ctx, key)
	if err != nil {
		log.Warn("read %s failed, using fallback: %v", key, err)
		return fmt.Errorf("%w: %s: %v", ErrReadFailure, key, err)
	}
	if !ok {
		log.Debug("key %s not set, using fallback", key)
		return errNotSet
	}

	fresh := reflect.New(rv.Elem().Type())
	if err := decode(data, fresh.Interface()); err != nil {
		log.Warn("key %s is corrupt, using fallback: %v", key, err)
		return err
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

func decode(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if v, ok := dst.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	return nil
}

// Set writes one complete value for key. A failed write is logged and
// returned wrapped in ErrWriteFailure; it is never fatal.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(ctx, key, value)
}

func (s *Store) set(ctx context.Context, key string, value any) error {
	log := logger.FromContext(ctx).WithPrefix("store")

	data, err := json.Marshal(value)
	if err != nil {
		log.Warn("encode %s failed: %v", key, err)
		return fmt.Errorf("%w: encode %s: %v", ErrWriteFailure, key, err)
	}
	if err := s.backend.Save(ctx, key, data); err != nil {
		log.Warn("write %s failed: %v", key, err)
		return fmt.Errorf("%w: %s: %v", ErrWriteFailure, key, err)
	}
	log.Debug("wrote %s (%d bytes)", key, len(data))
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("store")
	if err := s.backend.Delete(ctx, key); err != nil {
		log.Warn("delete %s failed: %v", key, err)
		return fmt.Errorf("%w: delete %s: %v", ErrWriteFailure, key, err)
	}
	log.Debug("deleted %s", key)
	return nil
}

// Has reports whether key holds a value, corrupt or not. An unreadable medium
// is reported as an error.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok, err := s.backend.Load(ctx, key)
	return ok, err
}

// Keys lists every key currently set.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Keys(ctx)
}

// GetOr returns the value under key, or fallback when it is missing or corrupt.
func GetOr[T any](ctx context.Context, s *Store, key string, fallback T) T {
	var v T
	if s.Get(ctx, key, &v) {
		return v
	}
	return fallback
}

// Update runs a read-modify-write of key under the store lock. fn receives the
// current value, or fallback when the key is missing or corrupt. When the
// medium cannot be read, or fn returns an error, nothing is written and the
// error is returned with fallback. The returned value is fn's result even
// when the write fails, so the caller can keep using it for the current
// operation. fn must not call back into the store.
func Update[T any](ctx context.Context, s *Store, key string, fallback T, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := fallback
	var v T
	switch err := s.get(ctx, key, &v); {
	case err == nil:
		current = v
	case errors.Is(err, ErrReadFailure):
		return fallback, err
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}
	return next, s.set(ctx, key, next)
}

// Append adds item to the JSON array stored under key, creating it when
// missing.
func Append[T any](ctx context.Context, s *Store, key string, item T) error {
	_, err := Update(ctx, s, key, []T(nil), func(items []T) ([]T, error) {
		return append(items, item), nil
	})
	return err
}
