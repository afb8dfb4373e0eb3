package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// registerCustomValidations installs binding rules that need domain knowledge.
// The "supportedcurrency" tag rejects currency codes outside the compiled-in
// catalogue before a request ever reaches the service layer.
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("supportedcurrency", func(fl validator.FieldLevel) bool {
		return domain.DefaultCurrencyRegistry.IsSupported(strings.ToUpper(fl.Field().String()))
	})
}
