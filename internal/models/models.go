package models

import "time"

// Model is a persisted entity with a string id and soft-delete timestamps.
type Model interface {
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
	DeletedAt() *time.Time // nil while live
	Validate() error
}

// Repository is the CRUD contract for a [Model]. Get never returns soft-deleted rows.
type Repository[T Model] interface {
	Create(model T) error
	Get(id string) (T, error)
	Update(model T) error
	Delete(id string) error // soft delete
}
