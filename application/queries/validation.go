package queries

import (
	pkgerrors "forzeit/pkg/errors"
	"forzeit/pkg/utils"
)

func validateQuery(q interface{}) error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}
