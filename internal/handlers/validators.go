package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rupeebook/rupeebook_backend/internal/core/reports"
)

// registerCustomValidators installs binding validations that depend on domain
// knowledge. "reporttype" accepts exactly the report type names the
// aggregation engine knows, so the engine stays the single source of truth.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("reporttype", func(fl validator.FieldLevel) bool {
		_, err := reports.ParseReportType(fl.Field().String())
		return err == nil
	})
}
