package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"github.com/jask/savepass/internal/config"
	"github.com/jask/savepass/internal/i18n"
	"github.com/jask/savepass/internal/service"
)

// Route names a screen.
type Route string

const (
	RouteHome     Route = "Home"
	RouteRegister Route = "RegisterLoginData"
)

// App ties together the screens.
type App struct {
	ctx      context.Context
	services Services
	log      *slog.Logger
	p        *message.Printer

	route    Route
	register *registerForm
	keys     homeKeyMap

	logins    []service.LoginRecord
	cursor    int
	filter    textinput.Model
	filtering bool
	reveal    bool
	status    string
	width     int
}

type Services struct {
	Logins *service.LoginService
}

func New(ctx context.Context, cfg config.Config, services Services, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	p := i18n.NewPrinter(cfg.UI.Locale)
	filter := textinput.New()
	filter.Prompt = p.Sprintf(i18n.HomeFilter)
	filter.CharLimit = 64
	return &App{
		ctx:      ctx,
		services: services,
		log:      log,
		p:        p,
		route:    RouteHome,
		keys:     newHomeKeyMap(),
		filter:   filter,
		reveal:   !cfg.UI.MaskPasswords,
	}
}

// Route reports the active screen.
func (a *App) Route() Route { return a.route }

// Navigate switches the active screen. Entering the register screen always starts an empty form.
func (a *App) Navigate(r Route) tea.Cmd {
	a.log.Debug("navigate", "from", a.route, "to", r)
	a.route = r
	switch r {
	case RouteRegister:
		a.register = newRegisterForm(a.p)
		a.status = ""
		return textinput.Blink
	default:
		a.register = nil
		return a.loadLogins()
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadLogins()
}

func (a *App) loadLogins() tea.Cmd {
	query := a.filter.Value()
	return func() tea.Msg {
		list, err := a.services.Logins.Search(a.ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return loginsMsg(list)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case loginsMsg:
		a.logins = []service.LoginRecord(m)
		if a.cursor >= len(a.logins) {
			a.cursor = 0
		}
		return a, nil
	case loginSavedMsg:
		a.status = a.p.Sprintf(i18n.Saved) + ": " + m.Record.ServiceName
		// a stale query could hide the record just saved
		a.filtering = false
		a.filter.Blur()
		a.filter.SetValue("")
		return a, a.Navigate(RouteHome)
	case errMsg:
		a.log.Error("operation failed", "route", a.route, "error", m.error)
		a.status = a.p.Sprintf(i18n.ErrorPrefix) + m.Error()
		if a.register != nil {
			a.register.failed()
		}
		return a, nil
	}

	if a.route == RouteRegister && a.register != nil {
		if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, a.register.keys.Quit) {
			return a, tea.Quit
		}
		cmd, back := a.register.update(a.ctx, a.services.Logins, msg)
		if back {
			return a, a.Navigate(RouteHome)
		}
		return a, cmd
	}
	return a.updateHome(msg)
}

func (a *App) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if a.filtering {
		if ok {
			switch km.String() {
			case "esc":
				a.filtering = false
				a.filter.Blur()
				a.filter.SetValue("")
				return a, a.loadLogins()
			case "enter":
				a.filtering = false
				a.filter.Blur()
				return a, nil
			case "ctrl+c":
				return a, tea.Quit
			}
		}
		var cmd tea.Cmd
		before := a.filter.Value()
		a.filter, cmd = a.filter.Update(msg)
		if a.filter.Value() != before {
			return a, tea.Batch(cmd, a.loadLogins())
		}
		return a, cmd
	}
	if !ok {
		return a, nil
	}
	switch {
	case key.Matches(km, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(km, a.keys.New):
		return a, a.Navigate(RouteRegister)
	case key.Matches(km, a.keys.Search):
		a.filtering = true
		return a, a.filter.Focus()
	case key.Matches(km, a.keys.Reveal):
		a.reveal = !a.reveal
	case key.Matches(km, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(km, a.keys.Down):
		if a.cursor < len(a.logins)-1 {
			a.cursor++
		}
	}
	return a, nil
}

func (a *App) View() string {
	header := headerStyle.Render("savepass")
	var body string
	if a.route == RouteRegister && a.register != nil {
		body = a.register.view()
	} else {
		body = a.renderHome()
	}
	out := header + "\n\n" + boxStyle.Render(body)
	if a.status != "" {
		out += "\n" + statusStyle.Render(a.status)
	}
	return out
}

func (a *App) renderHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.p.Sprintf(i18n.HomeTitle)))
	b.WriteString("\n")
	if a.filtering || a.filter.Value() != "" {
		b.WriteString(a.filter.View())
		b.WriteString("\n")
	}
	if len(a.logins) == 0 {
		b.WriteString(a.p.Sprintf(i18n.HomeEmpty))
		b.WriteString("\n")
	}
	for i, rec := range a.logins {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %-24s %-32s %s\n", marker, rec.ServiceName, rec.Email, a.password(rec.Password))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(a.p.Sprintf(i18n.HomeHelp)))
	return b.String()
}

func (a *App) password(pw string) string {
	if a.reveal {
		return pw
	}
	return strings.Repeat("*", len([]rune(pw)))
}
