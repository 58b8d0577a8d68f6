package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pericos457/botica/internal/apierror"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if binding fails — the caller
// should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			c.JSON(http.StatusBadRequest, apierror.New("Campo inválido: "+fe.Field()+" ("+fe.Tag()+")"))
			return false
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	return true
}

// respondError maps the error taxonomy to HTTP statuses. Storage failures are
// logged with their cause but reach the client as an opaque 500.
func respondError(c *gin.Context, err error) {
	var (
		validation *apierror.ValidationError
		notFound   *apierror.NotFoundError
		conflict   *apierror.ConflictError
		storage    *apierror.StorageError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, validation)
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.New(conflict.Error()))
	case errors.As(err, &storage):
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Str("op", storage.Op).
			Err(storage.Err).
			Msg("storage failure")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	default:
		log.Error().Err(err).Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
