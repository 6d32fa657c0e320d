package store

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	f, err := os.CreateTemp("", "sqlite-storage-")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	t.Cleanup(func() {
		f.Close()
		os.Remove(f.Name())
	})

	db, err := sql.Open("sqlite3", f.Name())
	if err != nil {
		t.Fatalf("failed to connect sqlite db: %v", err)
	}

	s, err := New(db, "teststore")
	if err != nil {
		t.Fatalf("failed to create new store: %v", err)
	}
	return s
}

func TestStoreRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "bad name", "drop;table", "a-b"} {
		if _, err := New(nil, name); err != ErrBadName {
			t.Errorf("expected ErrBadName for %q, received %v", name, err)
		}
	}
}

func TestStoreReadEmpty(t *testing.T) {
	s := setupTestStore(t)

	var nothing struct{}
	if err := s.Get("some key", &nothing); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}
}

func TestStoreWriteAndReadStruct(t *testing.T) {
	s := setupTestStore(t)

	type Result struct {
		Won     bool
		Moves   int
		Guesses int
	}

	key := "run-1"
	val := Result{Won: true, Moves: 42, Guesses: 3}
	if err := s.Set(key, val); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	var rtVal Result
	if err := s.Get(key, &rtVal); err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if !reflect.DeepEqual(val, rtVal) {
		t.Fatalf("expected: %v, actual: %v", val, rtVal)
	}
}

func TestStoreUpdate(t *testing.T) {
	s := setupTestStore(t)

	key := "key"
	if err := s.Set(key, 1); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if err := s.Set(key, 2); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	var rtVal int
	if err := s.Get(key, &rtVal); err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if rtVal != 2 {
		t.Fatalf("expected 2, actual: %v", rtVal)
	}
}

func TestStoreKeys(t *testing.T) {
	s := setupTestStore(t)

	for i := range 3 {
		key := fmt.Sprintf("run-%d", i)
		if err := s.Set(key, i); err != nil {
			t.Fatalf("failed to set value: %v", err)
		}
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("failed to list keys: %v", err)
	}
	want := []string{"run-0", "run-1", "run-2"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected %v, actual %v", want, keys)
	}
}
