package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"antunys/clientDesk/internal/api"
	"antunys/clientDesk/internal/config"
	"antunys/clientDesk/internal/notify"
	"antunys/clientDesk/internal/session"
	"antunys/clientDesk/internal/storage"
)

func newTestAppModel(t *testing.T) AppModel {
	t.Helper()

	cfg := config.GetDefaultConfig()
	sess, err := session.NewStore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("Failed to create session store: %v", err)
	}
	service := api.NewService(cfg.ToAPIConfig(), sess)

	return AppModel{
		config:        cfg,
		session:       sess,
		service:       service,
		notifications: notify.NewQueue(),
		currentView:   ViewAuth,
		authView:      NewAuthModel(service, sess),
		clientsView:   NewClientsModel(service, sess, cfg),
	}
}

func updateApp(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Expected AppModel, got %T", next)
	}
	return app, cmd
}

func TestNavigateSwitchesView(t *testing.T) {
	m := newTestAppModel(t)

	m, cmd := updateApp(t, m, NavigateMsg{State: ViewClients})

	if m.currentView != ViewClients {
		t.Errorf("Expected clients view, got %v", m.currentView)
	}
	if cmd == nil {
		t.Error("Expected the clients view to start loading")
	}
}

func TestErrorMsgBlocksInputUntilDismissed(t *testing.T) {
	m := newTestAppModel(t)

	m, _ = updateApp(t, m, ErrorMsg{Message: "Could not save the client. Check the data and try again."})
	if m.fatalErr == "" {
		t.Fatal("Expected the error dialog to be raised")
	}

	// other keys are swallowed while the dialog is up
	m, _ = updateApp(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.fatalErr == "" {
		t.Error("Expected the dialog to survive unrelated keys")
	}

	m, _ = updateApp(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.fatalErr != "" {
		t.Error("Expected enter to dismiss the dialog")
	}
}

func TestCtrlCAlwaysQuits(t *testing.T) {
	m := newTestAppModel(t)
	m.fatalErr = "stuck"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
}

func TestNotifyPushesToast(t *testing.T) {
	m := newTestAppModel(t)

	m, cmd := updateApp(t, m, NotifyMsg{Message: "Client created successfully.", Severity: notify.SeveritySuccess})

	if m.notifications.Len() != 1 {
		t.Fatalf("Expected 1 notification, got %d", m.notifications.Len())
	}
	if cmd == nil {
		t.Error("Expected an expiry tick to be scheduled")
	}
}

func TestNotificationTickExpiresOldToasts(t *testing.T) {
	m := newTestAppModel(t)
	m.notifications = notify.NewQueueWithDismiss(5 * time.Second)
	m.notifications.Push("stale", notify.SeverityInfo)

	m, cmd := updateApp(t, m, notificationTickMsg(time.Now().Add(6*time.Second)))

	if m.notifications.Len() != 0 {
		t.Errorf("Expected toast expired, got %d left", m.notifications.Len())
	}
	if cmd != nil {
		t.Error("Expected no further ticks once the queue is empty")
	}
}

func TestLoggedOutReturnsToAuth(t *testing.T) {
	m := newTestAppModel(t)
	if err := m.session.Login("jwt-123"); err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	m.currentView = ViewClients

	m, cmd := updateApp(t, m, LoggedOutMsg{})

	if m.currentView != ViewAuth {
		t.Errorf("Expected auth view after logout, got %v", m.currentView)
	}
	if m.session.Authenticated() {
		t.Error("Expected session cleared after logout")
	}
	if cmd == nil {
		t.Error("Expected a signed-out notification")
	}
}
