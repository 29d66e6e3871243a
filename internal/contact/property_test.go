package contact

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genEmail() gopter.Gen {
	return gopter.CombineGens(gen.Identifier(), gen.Identifier(), gen.Identifier()).
		Map(func(parts []interface{}) string {
			return parts[0].(string) + "@" + parts[1].(string) + "." + parts[2].(string)
		})
}

func genBlank() gopter.Gen {
	return gen.IntRange(0, 4).Map(func(n int) string {
		return strings.Repeat(" \t", n)
	})
}

// TestValidateAcceptsCompleteForms: non-empty name and message plus a
// well-formed email always validate.
func TestValidateAcceptsCompleteForms(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("complete forms have no errors", prop.ForAll(
		func(name, email, subject, message string) bool {
			f := Fields{Name: name, Email: email, Subject: subject, Message: message}
			return len(f.Validate()) == 0
		},
		gen.Identifier(),
		genEmail(),
		gen.AnyString(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

// TestValidateRejectsBlankName: a blank name always yields a name error.
func TestValidateRejectsBlankName(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("blank name is reported", prop.ForAll(
		func(name, email, subject, message string) bool {
			f := Fields{Name: name, Email: email, Subject: subject, Message: message}
			return f.Validate()[FieldName] == ErrNameRequired
		},
		genBlank(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestValidateIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("validate twice gives the same map", prop.ForAll(
		func(name, email, subject, message string) bool {
			f := Fields{Name: name, Email: email, Subject: subject, Message: message}
			return reflect.DeepEqual(f.Validate(), f.Validate())
		},
		gen.AnyString(),
		gen.OneGenOf(gen.AnyString(), genEmail()),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestUpdateFieldClearsError(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("edited field has no error", prop.ForAll(
		func(field Field, value string) bool {
			c := NewController(&fakeTransport{}, nil, Config{})
			c.Submit(context.Background())
			c.UpdateField(field, value)
			_, present := c.State().Errors[field]
			return !present
		},
		gen.OneConstOf(FieldName, FieldEmail, FieldSubject, FieldMessage),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
