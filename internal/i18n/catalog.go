// Package i18n holds the translated strings shown by the screens and
// registers them with golang.org/x/text/message.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	ServiceNameRequired = "form.service_name.required"
	EmailInvalid        = "form.email.invalid"
	EmailRequired       = "form.email.required"
	PasswordRequired    = "form.password.required"

	LabelServiceName = "register.label.service_name"
	LabelEmail       = "register.label.email"
	LabelPassword    = "register.label.password"
	ButtonSave       = "register.button.save"
	RegisterTitle    = "register.title"
	Saving           = "register.saving"
	RegisterHelp     = "register.help"

	HomeTitle   = "home.title"
	HomeEmpty   = "home.empty"
	HomeFilter  = "home.filter"
	HomeHelp    = "home.help"
	Saved       = "home.saved"
	ErrorPrefix = "status.error"
)

// BaseLocale is used when the configured locale matches nothing shipped.
var BaseLocale = language.BrazilianPortuguese

var catalogs = map[language.Tag]map[string]string{
	language.BrazilianPortuguese: {
		ServiceNameRequired: "Nome do serviço é obrigatório!",
		EmailInvalid:        "Não é um email válido",
		EmailRequired:       "Email é obrigatório!",
		PasswordRequired:    "Senha é obrigatória!",
		LabelServiceName:    "Nome do serviço",
		LabelEmail:          "E-mail ou usuário",
		LabelPassword:       "Senha",
		ButtonSave:          "Salvar",
		RegisterTitle:       "Cadastrar login",
		Saving:              "Salvando...",
		RegisterHelp:        "tab: próximo campo  shift+tab: anterior  enter/ctrl+s: salvar  esc: voltar",
		HomeTitle:           "Seus logins",
		HomeEmpty:           "Nenhum login salvo.",
		HomeFilter:          "Buscar: ",
		HomeHelp:            "n: novo  /: buscar  v: mostrar senhas  q: sair",
		Saved:               "Login salvo",
		ErrorPrefix:         "erro: ",
	},
	language.AmericanEnglish: {
		ServiceNameRequired: "Service name is required!",
		EmailInvalid:        "Not a valid email",
		EmailRequired:       "Email is required!",
		PasswordRequired:    "Password is required!",
		LabelServiceName:    "Service name",
		LabelEmail:          "E-mail or username",
		LabelPassword:       "Password",
		ButtonSave:          "Save",
		RegisterTitle:       "Register login",
		Saving:              "Saving...",
		RegisterHelp:        "tab: next field  shift+tab: previous  enter/ctrl+s: save  esc: back",
		HomeTitle:           "Your logins",
		HomeEmpty:           "No saved logins.",
		HomeFilter:          "Search: ",
		HomeHelp:            "n: new  /: search  v: reveal passwords  q: quit",
		Saved:               "Login saved",
		ErrorPrefix:         "error: ",
	},
}

var supported = []language.Tag{language.BrazilianPortuguese, language.AmericanEnglish}

var matcher = language.NewMatcher(supported)

func init() {
	for tag, msgs := range catalogs {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Match resolves a configured locale such as "pt-BR" or "en" to a shipped tag.
func Match(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return BaseLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return BaseLocale
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return BaseLocale
	}
	return supported[idx]
}

// NewPrinter returns a printer for the best shipped match of locale.
func NewPrinter(locale string) *message.Printer {
	return message.NewPrinter(Match(locale))
}

// Keys lists every message key.
func Keys() []string {
	msgs := catalogs[BaseLocale]
	out := make([]string, 0, len(msgs))
	for k := range msgs {
		out = append(out, k)
	}
	return out
}
