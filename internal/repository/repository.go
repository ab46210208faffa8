package repository

import (
	"errors"

	"foodmate-server/internal/domain"

	"gorm.io/gorm"
)

// wrapStore tags unexpected store failures as retryable. Record-not-found is
// passed through untouched so callers can map it to the domain taxonomy.
func wrapStore(err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return errors.Join(domain.ErrStoreUnavailable, err)
}
