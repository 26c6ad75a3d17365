package persistent

import (
	"errors"

	"classifieds/services/listing/internal/entity"

	"gorm.io/gorm"
)

func storageErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entity.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(entity.ErrConflict, entity.NewStorageError(op, err))
	}
	return entity.NewStorageError(op, err)
}
