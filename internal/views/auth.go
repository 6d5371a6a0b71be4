package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"antunys/clientDesk/internal/api"
	"antunys/clientDesk/internal/notify"
	"antunys/clientDesk/internal/session"
	"antunys/clientDesk/internal/utils"
)

type AuthStep int

const (
	StepStart AuthStep = iota
	StepLogin
	StepRegister
)

type loginSucceededMsg struct {
	token string
	user  *api.User
}

type loginFailedMsg struct {
	err error
}

type registerSucceededMsg struct{}

type registerFailedMsg struct {
	err error
}

// AuthModel walks the sign-in and sign-up steps. Registering never signs the
// user in; a successful sign-up drops back to the login step.
type AuthModel struct {
	service *api.Service
	session *session.Store

	step       AuthStep
	choice     int
	submitting bool

	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	currentField  int
	fieldErrors   map[string]string
	formError     string

	spinner *utils.Spinner
	width   int
	height  int
}

func NewAuthModel(service *api.Service, sess *session.Store) AuthModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "Your name"
	nameInput.CharLimit = 80

	emailInput := textinput.New()
	emailInput.Placeholder = "you@example.com"
	emailInput.CharLimit = 120

	passwordInput := textinput.New()
	passwordInput.Placeholder = "At least 8 characters"
	passwordInput.CharLimit = 120
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return AuthModel{
		service:       service,
		session:       sess,
		step:          StepStart,
		nameInput:     nameInput,
		emailInput:    emailInput,
		passwordInput: passwordInput,
		fieldErrors:   make(map[string]string),
		spinner:       utils.NewSpinner(),
	}
}

func (m AuthModel) Init() tea.Cmd {
	return nil
}

func (m AuthModel) login(email, password string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		token, user, err := service.Login(email, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		return loginSucceededMsg{token: token, user: user}
	}
}

func (m AuthModel) register(name, email, password string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		if err := service.Register(name, email, password); err != nil {
			return registerFailedMsg{err: err}
		}
		return registerSucceededMsg{}
	}
}

func (m *AuthModel) enterStep(step AuthStep) tea.Cmd {
	m.step = step
	m.currentField = 0
	m.fieldErrors = make(map[string]string)
	m.formError = ""
	m.nameInput.SetValue("")
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()

	switch step {
	case StepLogin:
		return m.emailInput.Focus()
	case StepRegister:
		return m.nameInput.Focus()
	}
	return nil
}

func (m AuthModel) fieldCount() int {
	if m.step == StepRegister {
		return 3
	}
	return 2
}

func (m *AuthModel) focusCurrentField() tea.Cmd {
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()

	if m.step == StepRegister {
		switch m.currentField {
		case 0:
			return m.nameInput.Focus()
		case 1:
			return m.emailInput.Focus()
		case 2:
			return m.passwordInput.Focus()
		}
		return nil
	}

	switch m.currentField {
	case 0:
		return m.emailInput.Focus()
	case 1:
		return m.passwordInput.Focus()
	}
	return nil
}

func (m *AuthModel) updateFocusedField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if m.step == StepRegister {
		switch m.currentField {
		case 0:
			m.nameInput, cmd = m.nameInput.Update(msg)
		case 1:
			m.emailInput, cmd = m.emailInput.Update(msg)
		case 2:
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
		return cmd
	}

	switch m.currentField {
	case 0:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case 1:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return cmd
}

func (m *AuthModel) validateLogin() bool {
	m.fieldErrors = make(map[string]string)
	if msg := utils.ValidateEmail(m.emailInput.Value()); msg != "" {
		m.fieldErrors["email"] = msg
	}
	if msg := utils.ValidatePassword(m.passwordInput.Value()); msg != "" {
		m.fieldErrors["password"] = msg
	}
	return len(m.fieldErrors) == 0
}

func (m *AuthModel) validateRegister() bool {
	m.fieldErrors = make(map[string]string)
	if msg := utils.ValidateName(m.nameInput.Value()); msg != "" {
		m.fieldErrors["name"] = msg
	}
	if msg := utils.ValidateEmail(m.emailInput.Value()); msg != "" {
		m.fieldErrors["email"] = msg
	}
	if msg := utils.ValidatePassword(m.passwordInput.Value()); msg != "" {
		m.fieldErrors["password"] = msg
	}
	return len(m.fieldErrors) == 0
}

func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginSucceededMsg:
		m.submitting = false
		if err := m.session.Login(msg.token); err != nil {
			m.formError = "Could not store your session: " + err.Error()
			return m, nil
		}
		if err := m.session.SetUser(msg.user); err != nil {
			m.formError = "Could not store your session: " + err.Error()
			return m, nil
		}
		return m, tea.Batch(
			func() tea.Msg { return NavigateMsg{State: ViewClients} },
			notifyCmd("Signed in successfully.", notify.SeveritySuccess),
		)

	case loginFailedMsg:
		m.submitting = false
		m.formError = userMessageOr(msg.err, "Invalid e-mail or password.")
		return m, nil

	case registerSucceededMsg:
		m.submitting = false
		cmd := m.enterStep(StepLogin)
		return m, tea.Batch(
			cmd,
			notifyCmd("Account created. Sign in to continue.", notify.SeveritySuccess),
		)

	case registerFailedMsg:
		m.submitting = false
		m.formError = userMessageOr(msg.err, "Could not create your account. Please try again.")
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch m.step {
		case StepStart:
			return m.updateStartStep(msg)
		case StepLogin:
			return m.updateLoginStep(msg)
		case StepRegister:
			return m.updateRegisterStep(msg)
		}
	}

	return m, nil
}

func (m AuthModel) updateStartStep(msg tea.KeyMsg) (AuthModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j", "tab":
		m.choice = 1 - m.choice
		return m, nil
	case "enter":
		if m.choice == 0 {
			return m, m.enterStep(StepLogin)
		}
		return m, m.enterStep(StepRegister)
	}
	return m, nil
}

func (m AuthModel) updateLoginStep(msg tea.KeyMsg) (AuthModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = StepStart
		return m, nil
	case "tab", "down":
		m.currentField = (m.currentField + 1) % m.fieldCount()
		return m, m.focusCurrentField()
	case "shift+tab", "up":
		m.currentField = (m.currentField + m.fieldCount() - 1) % m.fieldCount()
		return m, m.focusCurrentField()
	case "ctrl+r":
		return m, m.enterStep(StepRegister)
	case "enter":
		if m.currentField < m.fieldCount()-1 {
			m.currentField++
			return m, m.focusCurrentField()
		}
		if !m.validateLogin() {
			return m, nil
		}
		m.submitting = true
		m.formError = ""
		return m, m.login(strings.TrimSpace(m.emailInput.Value()), m.passwordInput.Value())
	default:
		return m, m.updateFocusedField(msg)
	}
}

func (m AuthModel) updateRegisterStep(msg tea.KeyMsg) (AuthModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = StepStart
		return m, nil
	case "tab", "down":
		m.currentField = (m.currentField + 1) % m.fieldCount()
		return m, m.focusCurrentField()
	case "shift+tab", "up":
		m.currentField = (m.currentField + m.fieldCount() - 1) % m.fieldCount()
		return m, m.focusCurrentField()
	case "ctrl+r":
		return m, m.enterStep(StepLogin)
	case "enter":
		if m.currentField < m.fieldCount()-1 {
			m.currentField++
			return m, m.focusCurrentField()
		}
		if !m.validateRegister() {
			return m, nil
		}
		m.submitting = true
		m.formError = ""
		return m, m.register(
			strings.TrimSpace(m.nameInput.Value()),
			strings.TrimSpace(m.emailInput.Value()),
			m.passwordInput.Value(),
		)
	default:
		return m, m.updateFocusedField(msg)
	}
}

func (m AuthModel) View() string {
	switch m.step {
	case StepLogin:
		return m.viewForm("Sign in", []authField{
			{"E-mail", m.emailInput, "email"},
			{"Password", m.passwordInput, "password"},
		}, "[Enter]Sign in [Ctrl+R]Create account [Esc]Back")
	case StepRegister:
		return m.viewForm("Create account", []authField{
			{"Name", m.nameInput, "name"},
			{"E-mail", m.emailInput, "email"},
			{"Password", m.passwordInput, "password"},
		}, "[Enter]Create [Ctrl+R]Back to sign in [Esc]Back")
	default:
		return m.viewStart()
	}
}

type authField struct {
	label string
	input textinput.Model
	key   string
}

func (m AuthModel) viewStart() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text))
	content.WriteString(titleStyle.Render("ClientDesk"))
	content.WriteString("\n\n")

	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Subtext0))
	content.WriteString(subtitleStyle.Render("Manage your clients from the terminal."))
	content.WriteString("\n\n")

	options := []string{"Sign in", "Create account"}
	for i, option := range options {
		if i == m.choice {
			selectedStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(utils.Colours.Base)).
				Background(lipgloss.Color(utils.Colours.Blue)).
				Padding(0, 1)
			content.WriteString(selectedStyle.Render("> " + option))
		} else {
			optionStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(utils.Colours.Text)).
				Padding(0, 1)
			content.WriteString(optionStyle.Render("  " + option))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1))
	content.WriteString(helpStyle.Render("[↑↓]Choose [Enter]Confirm [Ctrl+C]Quit"))

	return m.centred(content.String())
}

func (m AuthModel) viewForm(title string, fields []authField, help string) string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text))
	content.WriteString(titleStyle.Render(title))
	content.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Subtext0))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Red))

	for _, field := range fields {
		content.WriteString(labelStyle.Render(field.label))
		content.WriteString("\n")
		content.WriteString(field.input.View())
		content.WriteString("\n")
		if msg, ok := m.fieldErrors[field.key]; ok {
			content.WriteString(errorStyle.Render(msg))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	if m.submitting {
		pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Yellow))
		content.WriteString(pendingStyle.Render(m.spinner.View() + " Please wait..."))
		content.WriteString("\n\n")
	} else if m.formError != "" {
		content.WriteString(errorStyle.Render(m.formError))
		content.WriteString("\n\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1))
	content.WriteString(helpStyle.Render(help))

	return m.centred(content.String())
}

func (m AuthModel) centred(content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(1, 3).
		Render(content)

	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
