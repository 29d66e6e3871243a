// Package contact holds the contact form model shared by the browser-side
// controller and the submission endpoint: fields, validation and wire types.
package contact

import (
	"regexp"
	"strings"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

const (
	ErrNameRequired    = "Name is required"
	ErrEmailRequired   = "Email is required"
	ErrEmailInvalid    = "Please enter a valid email address"
	ErrMessageRequired = "Message is required"
)

// RE2 \s misses \v, Unicode separators and the BOM, so they are listed too.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Fields is the contact form payload. Subject is optional.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Set assigns value to field and reports whether the field is known.
func (f *Fields) Set(field Field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldSubject:
		f.Subject = value
	case FieldMessage:
		f.Message = value
	default:
		return false
	}
	return true
}

// ValidationErrors maps an invalid field to a human readable problem.
type ValidationErrors map[Field]string

// Validate checks every rule and collects all failures; an empty map means valid.
func (f Fields) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs[FieldName] = ErrNameRequired
	}

	if strings.TrimSpace(f.Email) == "" {
		errs[FieldEmail] = ErrEmailRequired
	} else if !ValidEmail(f.Email) {
		errs[FieldEmail] = ErrEmailInvalid
	}

	if strings.TrimSpace(f.Message) == "" {
		errs[FieldMessage] = ErrMessageRequired
	}

	return errs
}
