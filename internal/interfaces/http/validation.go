package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre json (o query) del campo, igual que el cliente lo envía.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// validateStruct valida s con las etiquetas validate y devuelve *domain.ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), validationMessage(fe))
	}
	return out
}

// fieldPath quita el nombre del struct raíz: CompleteMovementRequest.items[0].quantity -> items[0].quantity.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "uuid":
		return "debe ser un UUID"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "debe tener al menos " + fe.Param() + " caracteres"
		}
		if fe.Kind() == reflect.Slice {
			return "debe tener al menos " + fe.Param() + " elemento(s)"
		}
		return "debe ser mayor o igual a " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "debe tener como máximo " + fe.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + fe.Param()
	case "datetime":
		return "formato de fecha esperado " + fe.Param()
	default:
		return "valor inválido"
	}
}

// idParam lee el parámetro :id. Un id que no es UUID no puede existir: se responde como no encontrado
// en lugar de llegar a Postgres.
func idParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", domain.ErrNotFound
	}
	return id, nil
}
