// Package settings persists widget instance configurations for a host.
//
// The widget adapter never stores anything itself; the host owns
// persistence. This package defines the [Store] capability the host
// provides and ships the adapters ghrepos uses:
//   - memory: In-memory storage for tests and ephemeral serving
//   - file: One JSON file per instance, for CLI use
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage
//
// # Usage
//
//	store, err := settings.Open(ctx, settings.Options{Backend: settings.BackendFile})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	id := settings.NewID()
//	cfg := widget.Update(widget.Config{Title: "Repos", GitHubURL: url}, widget.Config{})
//	if err := store.Set(ctx, id, cfg); err != nil {
//	    return err
//	}
package settings

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/matzehuels/ghrepos/pkg/errors"
	"github.com/matzehuels/ghrepos/pkg/widget"
)

// ErrNotFound is returned when a widget instance does not exist.
var ErrNotFound = errors.New("widget not found")

// Instance is a stored widget configuration.
type Instance struct {
	ID        string        `json:"id" bson:"_id"`
	Config    widget.Config `json:"config" bson:"config"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for widget settings backends.
type Store interface {
	// Get retrieves the configuration of an instance.
	// Returns ErrNotFound if the instance doesn't exist.
	Get(ctx context.Context, id string) (*widget.Config, error)

	// Set stores the configuration of an instance, replacing any previous one.
	Set(ctx context.Context, id string, cfg widget.Config) error

	// Delete removes an instance. Deleting a missing instance is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all instances ordered by ID.
	List(ctx context.Context) ([]Instance, error)

	// Close releases backend resources.
	Close() error
}

// ValidateID checks that id is usable as an instance key.
func ValidateID(id string) error {
	return apperrors.ValidateWidgetID(id)
}

// NewID returns a fresh random instance ID.
func NewID() string {
	return uuid.NewString()
}

func sortInstances(list []Instance) {
	slices.SortFunc(list, func(a, b Instance) int {
		return strings.Compare(a.ID, b.ID)
	})
}
