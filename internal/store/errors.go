// Package store implements the data-access contracts on MongoDB.
package store

import (
	"errors"
	"fmt"

	"bistro-api/internal/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

// translate maps driver errors onto the application taxonomy.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	default:
		return fmt.Errorf("%s: %w: %v", op, apperr.ErrStore, err)
	}
}
