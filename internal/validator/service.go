package validator

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/pt-labs/product-inventory-api/internal/domain"
)

// Service valida entidades candidatas antes de entregarlas al almacenamiento.
// Acumula todas las violaciones en un domain.ValidationError; un candidato nil
// se trata como "nada que validar" (ErrNotFound), no como violación.
type Service struct {
	validate *validator.Validate
}

// New construye el servicio. Registra la conversión decimal.Decimal -> float64
// para que los tags numéricos (gte, lte) apliquen sobre precios.
func New() *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &Service{validate: v}
}

// Validate evalúa los tags `validate` de la entidad. Retorna nil si es válida.
func (s *Service) Validate(candidate interface{}) error {
	if candidate == nil || reflect.ValueOf(candidate).Kind() == reflect.Ptr && reflect.ValueOf(candidate).IsNil() {
		return fmt.Errorf("%w: no hay objeto que validar", domain.ErrNotFound)
	}

	err := s.validate.Struct(candidate)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	violations := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, fmt.Sprintf("%s: no cumple la restricción '%s'", fe.Field(), fe.Tag()))
	}
	return &domain.ValidationError{Violations: violations}
}
