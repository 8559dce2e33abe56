package estimate

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/whittech/estimator/internal/domain"
)

// RowID identifies a grid row across its whole life. Unsaved rows carry
// a random token; once a row is written it carries the database id
// instead. The transition is one way: nothing here converts a saved id
// back into a token.
type RowID struct {
	saved bool
	id    int64
	token string
}

// NewRowToken returns an identity for a row that has never been persisted.
func NewRowToken() RowID {
	return RowID{token: uuid.NewString()}
}

// PersistedRowID returns the identity of a row stored under a database id.
func PersistedRowID(id int64) RowID {
	return RowID{saved: true, id: id}
}

// Persisted reports the database id when the row has been saved.
func (r RowID) Persisted() (int64, bool) {
	return r.id, r.saved
}

// Key is a stable string key for the row, usable in maps regardless of
// whether the row has been saved yet.
func (r RowID) Key() string {
	if r.saved {
		return "db:" + strconv.FormatInt(r.id, 10)
	}
	return "new:" + r.token
}

// Row pairs a grid row's identity with its current field values.
type Row struct {
	ID   RowID
	Item domain.LineItem
}

// IsNew reports whether the row has never been written to storage.
func (r Row) IsNew() bool {
	return !r.ID.saved
}
