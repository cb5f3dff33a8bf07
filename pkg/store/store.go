// Package store persists mind maps. Two backends implement the Store
// interface: a file store for single-user CLI workflows and a MongoDB store
// for the HTTP service.
package store

import (
	"context"
	"time"

	"github.com/mindgrove/mindgrove/pkg/tree"
)

// Map is a persisted mind map with its metadata.
type Map struct {
	ID        string     `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Root      *tree.Node `json:"root" bson:"root"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// Info is a map listing entry without the tree payload.
type Info struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the persistence interface for mind maps.
type Store interface {
	// Get loads a map by ID.
	Get(ctx context.Context, id string) (*Map, error)

	// Put creates or replaces a map. CreatedAt is preserved on replace,
	// UpdatedAt is set to now.
	Put(ctx context.Context, m *Map) error

	// Delete removes a map by ID.
	Delete(ctx context.Context, id string) error

	// List returns metadata for all stored maps.
	List(ctx context.Context) ([]Info, error)

	// Close releases backend resources.
	Close() error
}
