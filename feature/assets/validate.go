package assets

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidationError lists the attributes that failed validation.
type ValidationError struct {
	TypeName      string
	QualifiedName string
	Fields        []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.TypeName, e.QualifiedName, strings.Join(e.Fields, ", "))
}

// Validate checks that an asset carries everything a save needs: a type
// name, a qualified name and a name, and well-formed enum values.
func Validate(a Asset) error {
	if a == nil {
		return errors.New("asset is nil")
	}
	v := validatorInstance()
	verr := &ValidationError{TypeName: a.Header().TypeName, QualifiedName: QualifiedNameOf(a)}
	for _, target := range []any{a.Header(), a.AttributeSet()} {
		err := v.Struct(target)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.Fields = append(verr.Fields, fe.Field()+" ("+fe.Tag()+")")
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
