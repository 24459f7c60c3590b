package tracker

import (
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// lookupError переводит ошибку поиска сущности what в ErrNotFound или ErrStore.
func lookupError(op, what string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return storeError(op, err)
}

// writeError переводит отказ хранилища при вставке. Значение вне диапазона
// колонки считается ошибкой входных данных.
func writeError(op string, err error) error {
	if errors.Is(err, storage.ErrOutOfRange) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return storeError(op, err)
}
