// Package form declares field validation schemas for the input screens.
package form

import (
	"net/mail"
	"strings"

	"golang.org/x/text/message"

	"github.com/jask/savepass/internal/i18n"
)

// Field names of the login form.
const (
	FieldServiceName = "service_name"
	FieldEmail       = "email"
	FieldPassword    = "password"
)

// Rule checks one value. It returns a message key when the value fails.
type Rule func(value string) (msgKey string, ok bool)

// Field is a named value with its rules, checked in order.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is an ordered set of fields.
type Schema struct {
	Fields []Field
}

// Errors maps a field name to the message key of its first failing rule.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

// Message resolves the error of field through p, or "" when the field passed.
func (e Errors) Message(p *message.Printer, field string) string {
	key, ok := e[field]
	if !ok {
		return ""
	}
	return p.Sprintf(key)
}

// Validate checks values against every field. Missing values count as empty.
func (s Schema) Validate(values map[string]string) Errors {
	errs := Errors{}
	for _, f := range s.Fields {
		v := values[f.Name]
		for _, rule := range f.Rules {
			if key, ok := rule(v); !ok {
				errs[f.Name] = key
				break
			}
		}
	}
	return errs
}

// Required fails on empty values. Whitespace counts as content.
func Required(msgKey string) Rule {
	return func(v string) (string, bool) {
		return msgKey, v != ""
	}
}

// Email fails on values that are not a bare address. Empty values pass so
// Required decides how they are reported.
func Email(msgKey string) Rule {
	return func(v string) (string, bool) {
		if v == "" {
			return msgKey, true
		}
		return msgKey, IsEmail(v)
	}
}

// IsEmail reports whether v is a bare address such as name@example.com.
func IsEmail(v string) bool {
	if strings.ContainsAny(v, " \t\r\n<>") {
		return false
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return false
	}
	at := strings.LastIndex(v, "@")
	if at <= 0 {
		return false
	}
	domain := v[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// LoginSchema is the schema of the register login form.
func LoginSchema() Schema {
	return Schema{Fields: []Field{
		{Name: FieldServiceName, Rules: []Rule{Required(i18n.ServiceNameRequired)}},
		{Name: FieldEmail, Rules: []Rule{Email(i18n.EmailInvalid), Required(i18n.EmailRequired)}},
		{Name: FieldPassword, Rules: []Rule{Required(i18n.PasswordRequired)}},
	}}
}
