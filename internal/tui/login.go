package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"chakula/internal/client"
)

// The sign-in screen doubles as registration: ctrl+r switches modes and
// reveals the restaurant-name field for a brand new account.

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "ctrl+r":
		m.registering = !m.registering
		m.errMsg = ""
		m.loginFocus = 0
		m.focusLoginField()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		fields := 2
		if m.registering {
			fields = 3
		}
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.loginFocus = (m.loginFocus + fields - 1) % fields
		} else {
			m.loginFocus = (m.loginFocus + 1) % fields
		}
		m.focusLoginField()
		return m, nil
	case "enter":
		email := m.emailInput.Value()
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.errMsg = "email and password are required"
			return m, nil
		}
		if m.registering {
			org := m.orgInput.Value()
			if org == "" {
				m.errMsg = "restaurant name is required"
				return m, nil
			}
			m.loading = true
			m.errMsg = ""
			return m, registerCmd(m.session, client.RegisterRequest{
				TenantName: org,
				Email:      email,
				Password:   password,
			})
		}
		m.loading = true
		m.errMsg = ""
		return m, loginCmd(m.session, email, password)
	}

	var cmd tea.Cmd
	switch m.loginFocus {
	case 0:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case 1:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	default:
		m.orgInput, cmd = m.orgInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusLoginField() {
	m.emailInput.Blur()
	m.passwordInput.Blur()
	m.orgInput.Blur()
	switch m.loginFocus {
	case 0:
		m.emailInput.Focus()
	case 1:
		m.passwordInput.Focus()
	default:
		m.orgInput.Focus()
	}
}

func (m Model) viewLogin() string {
	title := "Chakula · Sign In"
	action := "sign in"
	if m.registering {
		title = "Chakula · New Restaurant"
		action = "create account"
	}
	body := m.banner(title)
	body += m.emailInput.View() + "\n"
	body += m.passwordInput.View() + "\n"
	if m.registering {
		body += m.orgInput.View() + "\n"
	}
	body += "\n" + hintStyle.Render("tab: switch field • enter: "+action+" • ctrl+r: toggle sign up • esc: quit")
	return docStyle.Render(body)
}
