// Package models contains GORM-specific persistence models that map to
// database tables. These models are separate from domain entities to keep
// the domain layer free from ORM concerns: persistence models carry all
// GORM annotations, mappers convert between the two, and repositories only
// ever touch the models.
package models
