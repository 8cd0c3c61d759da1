package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// los errores nombran el campo como aparece en el JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bind parsea el cuerpo y aplica las etiquetas validate del DTO.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.NewValidationError(fe.Field(), "no cumple la regla "+fe.Tag())
		}
		return domain.NewValidationError("", err.Error())
	}
	return nil
}

// pageFromQuery lee limit/offset; fuera de rango se ajusta en lugar de fallar.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	return p.Normalize()
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "debe ser un entero positivo")
	}
	return int64(id), nil
}

// respondError traduce errores de dominio a HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrIntegrity):
		status, code = fiber.StatusConflict, "INTEGRITY"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("request_id", GetRequestID(c)).Msg("error no controlado")
		msg = "error interno"
	}
	body := dto.ErrorResponse{Code: code, Message: msg, RequestID: GetRequestID(c)}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
	}
	return c.Status(status).JSON(body)
}
