package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   ValidationErrors
	}{
		{
			name:   "valid without subject",
			fields: Fields{Name: "Sam", Email: "sam@example.com", Message: "Hello there"},
			want:   ValidationErrors{},
		},
		{
			name:   "all empty",
			fields: Fields{},
			want: ValidationErrors{
				FieldName:    ErrNameRequired,
				FieldEmail:   ErrEmailRequired,
				FieldMessage: ErrMessageRequired,
			},
		},
		{
			name:   "whitespace only counts as empty",
			fields: Fields{Name: "   ", Email: "\t", Message: "\n"},
			want: ValidationErrors{
				FieldName:    ErrNameRequired,
				FieldEmail:   ErrEmailRequired,
				FieldMessage: ErrMessageRequired,
			},
		},
		{
			name:   "scenario A: missing name only",
			fields: Fields{Email: "a@b.com", Message: "hi"},
			want:   ValidationErrors{FieldName: ErrNameRequired},
		},
		{
			name:   "scenario B: bad email only",
			fields: Fields{Name: "Sam", Email: "not-an-email", Message: "hi"},
			want:   ValidationErrors{FieldEmail: ErrEmailInvalid},
		},
		{
			name:   "email with inner space",
			fields: Fields{Name: "Sam", Email: "sam @example.com", Message: "hi"},
			want:   ValidationErrors{FieldEmail: ErrEmailInvalid},
		},
		{
			name:   "email with surrounding spaces fails the pattern",
			fields: Fields{Name: "Sam", Email: " sam@example.com ", Message: "hi"},
			want:   ValidationErrors{FieldEmail: ErrEmailInvalid},
		},
		{
			name:   "subject is never validated",
			fields: Fields{Name: "Sam", Email: "sam@example.com", Subject: "   ", Message: "hi"},
			want:   ValidationErrors{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fields.Validate())
		})
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@sub.example.org", "x+y@d.io", "a@b.c.d"}
	invalid := []string{"", "a@b", "@b.com", "a@.com", "a@b.", "a@@b.com", "a b@c.com", "a@b.c om"}

	for _, s := range valid {
		assert.True(t, ValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, ValidEmail(s), s)
	}
}

func TestValidEmail_UnicodeWhitespace(t *testing.T) {
	spaces := map[string]string{
		"vertical tab":        "\v",
		"no-break space":      "\u00a0",
		"ogham space":         "\u1680",
		"em space":            "\u2003",
		"line separator":      "\u2028",
		"paragraph separator": "\u2029",
		"narrow nbsp":         "\u202f",
		"ideographic space":   "\u3000",
		"byte order mark":     "\ufeff",
	}
	for name, sp := range spaces {
		t.Run(name, func(t *testing.T) {
			for _, email := range []string{
				"a" + sp + "b@example.com",
				"sam@exa" + sp + "mple.com",
				"sam@example.c" + sp + "om",
			} {
				assert.False(t, ValidEmail(email), "%q", email)
				errs := Fields{Name: "Sam", Email: email, Message: "hi"}.Validate()
				assert.Equal(t, ValidationErrors{FieldEmail: ErrEmailInvalid}, errs, "%q", email)
			}
		})
	}

	assert.True(t, ValidEmail("sam@exämple.com"))
}

func TestFieldsSet(t *testing.T) {
	var f Fields
	assert.True(t, f.Set(FieldSubject, "Hi"))
	assert.False(t, f.Set(Field("phone"), "123"))
	assert.Equal(t, Fields{Subject: "Hi"}, f)
}
