// Package store holds the key/value backends the JSON documents are kept in.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrBlobNotFound is returned by Get when nothing is stored under the key.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore persists opaque documents by key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}

// Drivers accepted by Open.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverRedis    = "redis"
)

func unknownDriver(driver string) error {
	return fmt.Errorf("store: unknown driver %q (use file, memory, postgres, mysql or redis)", driver)
}
