package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Created returns metadata for a row first written at the given time.
func Created(at time.Time) Metadata {
	return Metadata{CreatedAt: at, UpdatedAt: at}
}

// Touched keeps CreatedAt and moves UpdatedAt to the given time.
func (m Metadata) Touched(at time.Time) Metadata {
	m.UpdatedAt = at
	return m
}

// Projection is a stored aggregate plus its persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// Of wraps an entity with its metadata.
func Of[T any](entity T, metadata Metadata) *Projection[T] {
	return &Projection[T]{Entity: entity, Metadata: metadata}
}
