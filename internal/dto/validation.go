package dto

import (
	"github.com/fidura/compta_recon_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations attaches domain-aware binding rules to gin's
// validator engine. Called once from route registration.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ledgertype", validLedgerType)
	}
}

func validLedgerType(fl validator.FieldLevel) bool {
	return domain.LedgerType(fl.Field().String()).Valid()
}
