package envstruct

import (
	"log/slog"
	"reflect"

	"github.com/myrjola/interrogation-room/internal/errors"
)

var (
	ErrEnvNotSet    = errors.NewSentinel("environment variable not set")
	ErrInvalidValue = errors.NewSentinel("v must be a pointer to a struct")
)

// Populate fills the string fields of the struct pointed to by v from the environment.
//
// lookupEnv has the same signature as [os.LookupEnv]. Fields are tagged
// `env:"ENV_VAR"`; when the variable is unset, the `envDefault:"value"` tag is
// used, and if neither is available the field contributes ErrEnvNotSet to the
// joined error. Untagged fields are left untouched.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptr := reflect.ValueOf(v)
	if ptr.Kind() != reflect.Ptr {
		return errors.Wrap(ErrInvalidValue, "not pointer", slog.Any("v", v))
	}
	target := ptr.Elem()
	if target.Kind() != reflect.Struct {
		return errors.Wrap(ErrInvalidValue, "not struct", slog.Any("v", v))
	}

	var errs []error
	targetType := target.Type()
	for i := range targetType.NumField() {
		field := target.Field(i)
		fieldType := targetType.Field(i)

		name, tagged := fieldType.Tag.Lookup("env")
		if !tagged {
			continue
		}

		if !field.CanSet() || field.Kind() != reflect.String {
			errs = append(errs, errors.Wrap(ErrInvalidValue, "field must be a settable string",
				slog.String("envVarName", name),
				slog.String("fieldName", fieldType.Name),
			))
			continue
		}

		value, ok := lookupEnv(name)
		if !ok {
			value, ok = fieldType.Tag.Lookup("envDefault")
		}
		if !ok {
			errs = append(errs, errors.Wrap(ErrEnvNotSet, "missing value", slog.String("envVarName", name)))
			continue
		}

		field.SetString(value)
	}

	return errors.Join(errs...)
}
