package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/errs"
)

// Ref is a foreign key value that must name an existing parent record.
type Ref struct {
	Entidad string
	ID      *uint
	exists  func(tx *gorm.DB, id uint) (bool, error)
}

// RefTo builds a mandatory reference to a record of type T.
func RefTo[T any](entidad string, id uint) Ref {
	return Ref{Entidad: entidad, ID: &id, exists: Exists[T]}
}

// OptionalRefTo builds a nullable reference; a nil id is always valid.
func OptionalRefTo[T any](entidad string, id *uint) Ref {
	return Ref{Entidad: entidad, ID: id, exists: Exists[T]}
}

// CheckReferences fails with errs.ErrReferenceNotFound on the first reference
// whose parent does not exist. Call it with the transaction of the dependent
// write.
func CheckReferences(tx *gorm.DB, refs ...Ref) error {
	for _, ref := range refs {
		if ref.ID == nil {
			continue
		}
		ok, err := ref.exists(tx, *ref.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s con id %d no existe", errs.ErrReferenceNotFound, ref.Entidad, *ref.ID)
		}
	}
	return nil
}
