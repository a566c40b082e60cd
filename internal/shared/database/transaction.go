package database

import (
	"context"

	"gorm.io/gorm"
)

// WithTransaction runs fn inside one transaction bound to ctx. Every statement in
// fn must go through tx; an error or a panic from fn rolls everything back.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
