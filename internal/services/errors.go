package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrPersistence marks failures of the underlying store. The store is left
// unchanged when an operation fails with it.
var ErrPersistence = errors.New("persistence failure")

// persistenceError logs a store failure and wraps it for the caller.
func persistenceError(log *zap.Logger, op string, err error, fields ...zap.Field) error {
	log.Error(op+" failed", append(fields, zap.Error(err))...)
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
