package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/savepass/internal/config"
	"github.com/jask/savepass/internal/form"
	"github.com/jask/savepass/internal/i18n"
	"github.com/jask/savepass/internal/service"
)

type countingStore struct {
	items  map[string]string
	writes int
	setErr error
}

func (s *countingStore) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *countingStore) SetItem(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.writes++
	s.items[key] = value
	return nil
}

func (s *countingStore) RemoveItem(_ context.Context, key string) error {
	delete(s.items, key)
	return nil
}

func newTestApp(t *testing.T) (*App, *countingStore) {
	t.Helper()
	store := &countingStore{items: map[string]string{}}
	cfg := config.Config{UI: config.UIConfig{Locale: "pt-BR", MaskPasswords: true}}
	a := New(context.Background(), cfg, Services{Logins: &service.LoginService{Store: store}}, nil)
	return a, store
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// send delivers msg and returns the command the app produced without running it.
func send(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

// settle runs cmd and feeds app messages back until none are left.
func settle(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case loginsMsg, loginSavedMsg, errMsg:
			cmd = send(a, msg)
		default:
			return
		}
	}
}

func openRegister(t *testing.T, a *App) {
	t.Helper()
	send(a, keyRunes("n"))
	require.Equal(t, RouteRegister, a.Route())
}

// fill types the three values, moving focus with tab, and leaves focus on the password.
func fill(a *App, serviceName, email, password string) {
	if serviceName != "" {
		send(a, keyRunes(serviceName))
	}
	send(a, tea.KeyMsg{Type: tea.KeyTab})
	if email != "" {
		send(a, keyRunes(email))
	}
	send(a, tea.KeyMsg{Type: tea.KeyTab})
	if password != "" {
		send(a, keyRunes(password))
	}
}

func storedLogins(t *testing.T, s *countingStore) []service.LoginRecord {
	t.Helper()
	var out []service.LoginRecord
	require.NoError(t, json.Unmarshal([]byte(s.items[service.LoginsKey]), &out))
	return out
}

func TestEmptySubmitShowsRequiredErrors(t *testing.T) {
	a, store := newTestApp(t)
	openRegister(t, a)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, RouteRegister, a.Route())
	require.Zero(t, store.writes)
	require.Equal(t, form.Errors{
		form.FieldServiceName: i18n.ServiceNameRequired,
		form.FieldEmail:       i18n.EmailRequired,
		form.FieldPassword:    i18n.PasswordRequired,
	}, a.register.errs)
	view := a.View()
	require.Contains(t, view, "Nome do serviço é obrigatório!")
	require.Contains(t, view, "Email é obrigatório!")
	require.Contains(t, view, "Senha é obrigatória!")
	require.False(t, a.register.submitting)
}

func TestMissingSingleFieldDoesNotPersist(t *testing.T) {
	cases := map[string][3]string{
		"service":  {"", "a@b.co", "pw"},
		"email":    {"GitHub", "", "pw"},
		"password": {"GitHub", "a@b.co", ""},
	}
	for name, vals := range cases {
		t.Run(name, func(t *testing.T) {
			a, store := newTestApp(t)
			openRegister(t, a)
			fill(a, vals[0], vals[1], vals[2])

			send(a, tea.KeyMsg{Type: tea.KeyEnter})

			require.Equal(t, RouteRegister, a.Route())
			require.Zero(t, store.writes)
			require.Len(t, a.register.errs, 1)
		})
	}
}

func TestInvalidEmailShowsEmailError(t *testing.T) {
	a, store := newTestApp(t)
	openRegister(t, a)
	fill(a, "GitHub", "not-an-email", "hunter2")

	send(a, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, form.Errors{form.FieldEmail: i18n.EmailInvalid}, a.register.errs)
	require.Contains(t, a.View(), "Não é um email válido")
	require.Zero(t, store.writes)
	require.Equal(t, 1, a.register.focus, "focus moves to the failing field")
}

func TestErrorsClearAsUserTypesAfterSubmit(t *testing.T) {
	a, _ := newTestApp(t)
	openRegister(t, a)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Contains(t, a.register.errs, form.FieldServiceName)

	// focus is on the service name after the failed submit
	send(a, keyRunes("G"))
	require.NotContains(t, a.register.errs, form.FieldServiceName)
	require.Contains(t, a.register.errs, form.FieldEmail)
}

func TestSuccessfulSubmitPersistsAndNavigatesHome(t *testing.T) {
	a, store := newTestApp(t)
	openRegister(t, a)
	fill(a, "GitHub", "octo@github.com", "hunter2")

	cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.True(t, a.register.submitting)
	settle(t, a, cmd)

	require.Equal(t, RouteHome, a.Route())
	require.Equal(t, 1, store.writes)
	list := storedLogins(t, store)
	require.Len(t, list, 1)
	require.NotEmpty(t, list[0].ID)
	require.Equal(t, "GitHub", list[0].ServiceName)
	require.Equal(t, "octo@github.com", list[0].Email)
	require.Equal(t, "hunter2", list[0].Password)

	require.Len(t, a.logins, 1)
	view := a.View()
	require.Contains(t, view, "GitHub")
	require.NotContains(t, view, "hunter2")
	require.Contains(t, view, "*******")
}

func TestSubmitAppendsToExistingCollection(t *testing.T) {
	a, store := newTestApp(t)
	prior := []service.LoginRecord{
		{ID: "1", ServiceName: "Mail", Email: "a@b.co", Password: "x"},
		{ID: "2", ServiceName: "Bank", Email: "c@d.co", Password: "y"},
	}
	raw, err := json.Marshal(prior)
	require.NoError(t, err)
	store.items[service.LoginsKey] = string(raw)

	openRegister(t, a)
	fill(a, "Chat", "e@f.co", "z")
	settle(t, a, send(a, tea.KeyMsg{Type: tea.KeyCtrlS}))

	list := storedLogins(t, store)
	require.Len(t, list, 3)
	require.Equal(t, prior, list[:2])
	require.Equal(t, "Chat", list[2].ServiceName)
}

func TestTwoSubmissionsGetDistinctIDs(t *testing.T) {
	a, store := newTestApp(t)
	for i := 0; i < 2; i++ {
		openRegister(t, a)
		fill(a, "Same", "same@x.io", "p")
		settle(t, a, send(a, tea.KeyMsg{Type: tea.KeyEnter}))
		require.Equal(t, RouteHome, a.Route())
	}
	list := storedLogins(t, store)
	require.Len(t, list, 2)
	require.NotEqual(t, list[0].ID, list[1].ID)
}

func TestRegisterStartsEmptyEachTime(t *testing.T) {
	a, _ := newTestApp(t)
	openRegister(t, a)
	send(a, keyRunes("leftover"))
	send(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, RouteHome, a.Route())

	openRegister(t, a)
	require.Empty(t, a.register.values()[form.FieldServiceName])
}

func TestStoreFailureKeepsForm(t *testing.T) {
	a, store := newTestApp(t)
	store.setErr = errors.New("disk full")
	openRegister(t, a)
	fill(a, "GitHub", "octo@github.com", "pw")

	settle(t, a, send(a, tea.KeyMsg{Type: tea.KeyEnter}))

	require.Equal(t, RouteRegister, a.Route())
	require.False(t, a.register.submitting)
	require.Contains(t, a.status, "disk full")
	require.Contains(t, a.status, "erro: ")
}

func TestHomeSearchAndReveal(t *testing.T) {
	a, store := newTestApp(t)
	raw, err := json.Marshal([]service.LoginRecord{
		{ID: "1", ServiceName: "GitHub", Email: "a@b.co", Password: "s3cret"},
		{ID: "2", ServiceName: "Bank", Email: "c@d.co", Password: "y"},
	})
	require.NoError(t, err)
	store.items[service.LoginsKey] = string(raw)
	settle(t, a, a.Init())
	require.Len(t, a.logins, 2)

	send(a, keyRunes("/"))
	require.True(t, a.filtering)
	cmd := send(a, keyRunes("git"))
	require.NotNil(t, cmd)
	settle(t, a, a.loadLogins())
	require.Len(t, a.logins, 1)
	require.Equal(t, "GitHub", a.logins[0].ServiceName)

	send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, a.filtering)
	require.NotContains(t, a.View(), "s3cret")
	send(a, keyRunes("v"))
	require.Contains(t, a.View(), "s3cret")

	send(a, keyRunes("/"))
	settle(t, a, send(a, tea.KeyMsg{Type: tea.KeyEsc}))
	require.Len(t, a.logins, 2)
}

func TestEnglishLocale(t *testing.T) {
	store := &countingStore{items: map[string]string{}}
	cfg := config.Config{UI: config.UIConfig{Locale: "en-US"}}
	a := New(context.Background(), cfg, Services{Logins: &service.LoginService{Store: store}}, nil)
	openRegister(t, a)
	send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Contains(t, a.View(), "Service name is required!")
}

func TestSaveClearsHomeFilter(t *testing.T) {
	a, store := newTestApp(t)
	raw, err := json.Marshal([]service.LoginRecord{{ID: "1", ServiceName: "Bank", Email: "c@d.co", Password: "y"}})
	require.NoError(t, err)
	store.items[service.LoginsKey] = string(raw)

	send(a, keyRunes("/"))
	send(a, keyRunes("bank"))
	send(a, tea.KeyMsg{Type: tea.KeyEnter})
	settle(t, a, a.loadLogins())
	require.Len(t, a.logins, 1)

	openRegister(t, a)
	fill(a, "GitHub", "octo@github.com", "pw")
	settle(t, a, send(a, tea.KeyMsg{Type: tea.KeyEnter}))

	require.Equal(t, RouteHome, a.Route())
	require.Empty(t, a.filter.Value())
	require.Len(t, a.logins, 2)
	require.Equal(t, "GitHub", a.logins[1].ServiceName)
}

func TestCtrlCQuitsFromRegister(t *testing.T) {
	a, _ := newTestApp(t)
	openRegister(t, a)

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWhitespaceValuesAreSaved(t *testing.T) {
	a, store := newTestApp(t)
	openRegister(t, a)
	fill(a, "   ", "a@b.co", "   ")

	settle(t, a, send(a, tea.KeyMsg{Type: tea.KeyEnter}))

	require.Equal(t, RouteHome, a.Route())
	list := storedLogins(t, store)
	require.Len(t, list, 1)
	require.Equal(t, "   ", list[0].ServiceName)
	require.Equal(t, "   ", list[0].Password)
}
