package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"github.com/jask/savepass/internal/form"
	"github.com/jask/savepass/internal/i18n"
	"github.com/jask/savepass/internal/service"
)

type formField struct {
	name  string
	label string
	input textinput.Model
}

// registerForm is the register login screen. focus == len(fields) is the save button.
type registerForm struct {
	fields     []formField
	focus      int
	schema     form.Schema
	errs       form.Errors
	submitted  bool
	submitting bool
	keys       formKeyMap
	p          *message.Printer
}

func newRegisterForm(p *message.Printer) *registerForm {
	mk := func(name, labelKey string, configure func(*textinput.Model)) formField {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 256
		if configure != nil {
			configure(&in)
		}
		return formField{name: name, label: p.Sprintf(labelKey), input: in}
	}
	f := &registerForm{
		fields: []formField{
			mk(form.FieldServiceName, i18n.LabelServiceName, nil),
			mk(form.FieldEmail, i18n.LabelEmail, func(in *textinput.Model) {
				in.Placeholder = "nome@exemplo.com"
			}),
			mk(form.FieldPassword, i18n.LabelPassword, func(in *textinput.Model) {
				in.EchoMode = textinput.EchoPassword
				in.EchoCharacter = '•'
			}),
		},
		schema: form.LoginSchema(),
		errs:   form.Errors{},
		keys:   newFormKeyMap(),
		p:      p,
	}
	f.fields[0].input.Focus()
	return f
}

func (f *registerForm) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fld := range f.fields {
		out[fld.name] = fld.input.Value()
	}
	return out
}

func (f *registerForm) setFocus(i int) tea.Cmd {
	n := len(f.fields) + 1
	i = (i%n + n) % n
	if f.focus < len(f.fields) {
		f.fields[f.focus].input.Blur()
	}
	f.focus = i
	if i < len(f.fields) {
		return f.fields[i].input.Focus()
	}
	return nil
}

// validate runs the schema and keeps the errors for rendering.
func (f *registerForm) validate() bool {
	f.errs = f.schema.Validate(f.values())
	return f.errs.OK()
}

// submit validates and, only when every field passes, returns the command
// that persists the record.
func (f *registerForm) submit(ctx context.Context, svc *service.LoginService) tea.Cmd {
	if f.submitting {
		return nil
	}
	f.submitted = true
	if !f.validate() {
		for i, fld := range f.fields {
			if _, bad := f.errs[fld.name]; bad {
				return f.setFocus(i)
			}
		}
		return nil
	}
	f.submitting = true
	v := f.values()
	in := service.LoginForm{
		ServiceName: v[form.FieldServiceName],
		Email:       v[form.FieldEmail],
		Password:    v[form.FieldPassword],
	}
	return func() tea.Msg {
		rec, err := svc.Register(ctx, in)
		if err != nil {
			return errMsg{err}
		}
		return loginSavedMsg{Record: rec}
	}
}

// update handles a key for the form. back reports that the user left the screen.
func (f *registerForm) update(ctx context.Context, svc *service.LoginService, msg tea.Msg) (cmd tea.Cmd, back bool) {
	if m, ok := msg.(tea.KeyMsg); ok {
		if f.submitting {
			return nil, false
		}
		switch {
		case key.Matches(m, f.keys.Back):
			return nil, true
		case key.Matches(m, f.keys.Submit):
			return f.submit(ctx, svc), false
		case key.Matches(m, f.keys.Next):
			return f.setFocus(f.focus + 1), false
		case key.Matches(m, f.keys.Prev):
			return f.setFocus(f.focus - 1), false
		case key.Matches(m, f.keys.Enter):
			if f.focus >= len(f.fields)-1 {
				return f.submit(ctx, svc), false
			}
			return f.setFocus(f.focus + 1), false
		}
	}
	if f.focus >= len(f.fields) {
		return nil, false
	}
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	// after the first submit, errors follow the input as it changes
	if f.submitted {
		f.validate()
	}
	return cmd, false
}

func (f *registerForm) failed() {
	f.submitting = false
}

func (f *registerForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.p.Sprintf(i18n.RegisterTitle)))
	b.WriteString("\n\n")
	for _, fld := range f.fields {
		b.WriteString(labelStyle.Render(fld.label))
		b.WriteString("\n")
		b.WriteString(fld.input.View())
		b.WriteString("\n")
		if msg := f.errs.Message(f.p, fld.name); msg != "" {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	label := f.p.Sprintf(i18n.ButtonSave)
	if f.submitting {
		label = f.p.Sprintf(i18n.Saving)
	}
	if f.focus == len(f.fields) {
		b.WriteString(activeStyle.Render(label))
	} else {
		b.WriteString(buttonStyle.Render(label))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(f.p.Sprintf(i18n.RegisterHelp)))
	return b.String()
}
