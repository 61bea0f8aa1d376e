// Package contact validates contact-form drafts and relays them to the
// external form-processing endpoint.
package contact

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/width"
)

// Draft is the editable form content.
type Draft struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Field identifies a form field in validation results.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Problem is a single validation failure. Code is an i18n key suffix.
type Problem struct {
	Field Field
	Code  string
}

// Problems is the result of Validate; empty means the draft may be sent.
type Problems []Problem

// Has reports whether f has a problem.
func (p Problems) Has(f Field) bool {
	for _, pr := range p {
		if pr.Field == f {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Normalize folds full-width characters in the email address, trims every
// field and converts an internationalized email domain to its ASCII form.
func (d Draft) Normalize() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Subject = strings.TrimSpace(d.Subject)
	d.Message = strings.TrimSpace(d.Message)
	d.Email = strings.TrimSpace(width.Fold.String(d.Email))
	if at := strings.LastIndexByte(d.Email, '@'); at > 0 && at < len(d.Email)-1 {
		if ascii, err := idna.Lookup.ToASCII(d.Email[at+1:]); err == nil {
			d.Email = d.Email[:at+1] + ascii
		}
	}
	return d
}

// Validate checks required fields and the email shape. It does not
// normalize; call Normalize first.
func (d Draft) Validate() Problems {
	var out Problems
	if strings.TrimSpace(d.Name) == "" {
		out = append(out, Problem{Field: FieldName, Code: "required"})
	}
	switch email := strings.TrimSpace(d.Email); {
	case email == "":
		out = append(out, Problem{Field: FieldEmail, Code: "required"})
	case !emailPattern.MatchString(email):
		out = append(out, Problem{Field: FieldEmail, Code: "invalid"})
	}
	if strings.TrimSpace(d.Message) == "" {
		out = append(out, Problem{Field: FieldMessage, Code: "required"})
	}
	return out
}

// IsZero reports whether every field is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}
