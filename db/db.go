package db

import "context"

// StoreType selects the record-store backend.
type StoreType string

const (
	File     StoreType = "file"
	Postgres StoreType = "postgres"
	Mongo    StoreType = "mongo"
)

// DB is a connected storage backend; the file store needs no connection
// and does not implement it.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
