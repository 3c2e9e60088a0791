package tui

import "github.com/jask/savepass/internal/service"

type loginsMsg []service.LoginRecord

type loginSavedMsg struct {
	Record service.LoginRecord
}

type errMsg struct{ error }
