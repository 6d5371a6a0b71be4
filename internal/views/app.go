package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"antunys/clientDesk/internal/api"
	"antunys/clientDesk/internal/config"
	"antunys/clientDesk/internal/notify"
	"antunys/clientDesk/internal/session"
	"antunys/clientDesk/internal/storage"
	"antunys/clientDesk/internal/utils"
)

type ViewState int

const (
	ViewAuth ViewState = iota
	ViewClients
)

// NavigateMsg switches the active top-level view.
type NavigateMsg struct {
	State ViewState
}

// ErrorMsg raises the blocking error dialog. The rest of the interface
// ignores input until the dialog is dismissed.
type ErrorMsg struct {
	Message string
}

// NotifyMsg pushes a toast notification.
type NotifyMsg struct {
	Message  string
	Severity notify.Severity
}

// LoggedOutMsg tears the session down and returns to the auth view.
type LoggedOutMsg struct{}

type notificationTickMsg time.Time

func notifyCmd(message string, severity notify.Severity) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Message: message, Severity: severity}
	}
}

func errorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Message: message}
	}
}

func notificationTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return notificationTickMsg(t)
	})
}

// AppModel is the root model. It owns the session, the API service and the
// notification queue, and routes messages to whichever view is active.
type AppModel struct {
	config        *config.Config
	session       *session.Store
	service       *api.Service
	notifications *notify.Queue

	currentView ViewState
	authView    AuthModel
	clientsView ClientsModel

	fatalErr string
	width    int
	height   int
}

func NewAppModel() (*AppModel, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := storage.NewFileStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	sess, err := session.NewStore(store)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	service := api.NewService(cfg.ToAPIConfig(), sess)

	model := &AppModel{
		config:        cfg,
		session:       sess,
		service:       service,
		notifications: notify.NewQueue(),
		currentView:   ViewAuth,
		authView:      NewAuthModel(service, sess),
		clientsView:   NewClientsModel(service, sess, cfg),
	}

	if sess.Authenticated() {
		model.currentView = ViewClients
	}

	return model, nil
}

func (m AppModel) Init() tea.Cmd {
	if m.currentView == ViewClients {
		return m.clientsView.Init()
	}
	return m.authView.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// fall through to the active view below

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.fatalErr != "" {
			switch msg.String() {
			case "enter", "esc":
				m.fatalErr = ""
			}
			return m, nil
		}
		if msg.String() == "ctrl+l" && m.currentView == ViewClients {
			return m.Update(LoggedOutMsg{})
		}

	case NavigateMsg:
		m.currentView = msg.State
		if msg.State == ViewClients {
			m.clientsView = NewClientsModel(m.service, m.session, m.config)
			return m, m.clientsView.Init()
		}
		return m, nil

	case ErrorMsg:
		m.fatalErr = msg.Message
		return m, nil

	case NotifyMsg:
		m.notifications.Push(msg.Message, msg.Severity)
		return m, notificationTick()

	case notificationTickMsg:
		m.notifications.ExpireBefore(time.Time(msg))
		if m.notifications.Len() > 0 {
			return m, notificationTick()
		}
		return m, nil

	case LoggedOutMsg:
		if err := m.session.Logout(); err != nil {
			m.session.SetError(err)
		}
		m.service.InvalidateClients()
		m.currentView = ViewAuth
		m.authView = NewAuthModel(m.service, m.session)
		return m, notifyCmd("Signed out.", notify.SeverityInfo)
	}

	switch m.currentView {
	case ViewClients:
		var cmd tea.Cmd
		m.clientsView, cmd = m.clientsView.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd
	}
}

func (m AppModel) View() string {
	if m.fatalErr != "" {
		return m.renderFatalError()
	}

	var content string
	switch m.currentView {
	case ViewClients:
		content = m.clientsView.View()
	default:
		content = m.authView.View()
	}

	if m.notifications.Len() == 0 {
		return content
	}
	return content + "\n" + m.renderNotifications()
}

func (m AppModel) renderNotifications() string {
	var lines []string

	for _, notification := range m.notifications.Items() {
		var colour string
		switch notification.Severity {
		case notify.SeveritySuccess:
			colour = utils.Colours.Green
		case notify.SeverityError:
			colour = utils.Colours.Red
		default:
			colour = utils.Colours.Sky
		}

		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(colour)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colour)).
			Padding(0, 1)
		lines = append(lines, style.Render(notification.Message))
	}

	return strings.Join(lines, "\n")
}

func (m AppModel) renderFatalError() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Red))
	content.WriteString(titleStyle.Render("Something went wrong"))
	content.WriteString("\n\n")

	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	content.WriteString(textStyle.Render(m.fatalErr))
	content.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1))
	content.WriteString(helpStyle.Render("[Enter/Esc]Dismiss"))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Red)).
		Padding(1, 3).
		Render(content.String())

	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
