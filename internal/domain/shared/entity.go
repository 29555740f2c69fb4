package shared

import (
	"time"

	"github.com/google/uuid"
)

// Now is the clock used to stamp entities. Timestamps are kept in UTC so
// depreciation periods and report exports do not shift with the server zone.
var Now = func() time.Time { return time.Now().UTC() }

// Entity is anything with a stable identity
type Entity interface {
	GetID() uuid.UUID
}

// BaseEntity carries identity and audit timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh ID and stamps both timestamps with the same instant
func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

func (e *BaseEntity) stamp() {
	e.UpdatedAt = Now()
}

// SameEntity reports whether a and b are the same record. Entities without
// an ID never match.
func SameEntity(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	id := a.GetID()
	return id != uuid.Nil && id == b.GetID()
}
