package dstore

import (
	"context"
	"errors"
)

// Table names a key-value table and its canonical primary-key field.
type Table struct {
	Name string
	Key  string
}

var (
	Events = Table{Name: "events", Key: "eventid"}
	Users  = Table{Name: "users", Key: "userid"}
)

var (
	ErrNotFound = errors.New("item not found")
	ErrConflict = errors.New("version conflict")
)

// Store is the persistence gateway: get/put/delete/scan by table and primary key,
// plus a conditional put for read-modify-write cycles.
type Store interface {
	Get(ctx context.Context, t Table, key string, out any) error
	Put(ctx context.Context, t Table, key string, item any) error
	// PutIf overwrites the item only while its stored version still equals
	// expected; otherwise it reports ErrConflict (or ErrNotFound if the item
	// vanished since the read).
	PutIf(ctx context.Context, t Table, key string, item any, expected int64) error
	Delete(ctx context.Context, t Table, key string) error
	Scan(ctx context.Context, t Table, out any) error
}
