// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"comlab/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("access_level", validateAccessLevel)
		_ = v.RegisterValidation("user_status", validateUserStatus)
		_ = v.RegisterValidation("unit_status", validateUnitStatus)
		_ = v.RegisterValidation("log_action", validateLogAction)
	}
}

func validateAccessLevel(fl validator.FieldLevel) bool {
	return models.AccessLevel(fl.Field().String()).Valid()
}

func validateUserStatus(fl validator.FieldLevel) bool {
	return models.UserStatus(fl.Field().String()).Valid()
}

func validateUnitStatus(fl validator.FieldLevel) bool {
	return models.UnitStatus(fl.Field().String()).Valid()
}

func validateLogAction(fl validator.FieldLevel) bool {
	return models.ActivityAction(fl.Field().String()).Valid()
}
