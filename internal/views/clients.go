package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"antunys/clientDesk/internal/api"
	"antunys/clientDesk/internal/config"
	"antunys/clientDesk/internal/notify"
	"antunys/clientDesk/internal/session"
	"antunys/clientDesk/internal/utils"
)

type ClientsViewMode int

const (
	ClientsViewList ClientsViewMode = iota
	ClientsViewCreate
	ClientsViewEdit
	ClientsViewDeleteConfirm
)

type clientsLoadedMsg struct {
	clients []api.Client
}

type clientsLoadFailedMsg struct {
	err error
}

type clientSavedMsg struct {
	created bool
}

type clientSaveFailedMsg struct {
	err error
}

type clientDeletedMsg struct{}

type clientDeleteFailedMsg struct {
	err error
}

// ClientsModel renders the paginated client list plus the create, edit and
// delete-confirmation modals layered on top of it.
type ClientsModel struct {
	service *api.Service
	session *session.Store
	config  *config.Config

	clients  []api.Client
	filtered []api.Client
	selected int

	currentView ClientsViewMode

	searchInput  textinput.Model
	searchQuery  string
	pendingQuery string
	debouncer    *utils.Debouncer

	createForm   ClientForm
	editForm     ClientForm
	editTarget   api.Client
	deleteTarget api.Client
	deleting     bool
	deleteError  string

	loading   bool
	spinner   *utils.Spinner
	listError string

	currentPage int
	pageSize    int
	totalPages  int

	width  int
	height int
}

func NewClientsModel(service *api.Service, sess *session.Store, cfg *config.Config) ClientsModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search by name, e-mail, phone or company"
	searchInput.CharLimit = 120
	searchInput.Width = 44
	searchInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	searchInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))

	return ClientsModel{
		service:     service,
		session:     sess,
		config:      cfg,
		currentView: ClientsViewList,
		searchInput: searchInput,
		debouncer:   utils.NewDebouncer(cfg.SearchDebounce),
		createForm:  newClientForm(),
		editForm:    newClientForm(),
		loading:     true,
		spinner:     utils.NewSpinner(),
		currentPage: 1,
		pageSize:    cfg.PageSize,
		totalPages:  1,
	}
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m ClientsModel) loadClients() tea.Cmd {
	service := m.service
	return func() tea.Msg {
		clients, err := service.ListClientsCached()
		if err != nil {
			return clientsLoadFailedMsg{err: err}
		}
		return clientsLoadedMsg{clients: clients}
	}
}

func (m ClientsModel) saveClient(id string, payload api.ClientPayload) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		var err error
		if id == "" {
			err = service.CreateClient(payload)
		} else {
			err = service.UpdateClient(id, payload)
		}
		if err != nil {
			return clientSaveFailedMsg{err: err}
		}
		return clientSavedMsg{created: id == ""}
	}
}

func (m ClientsModel) deleteClient(id string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		if err := service.DeleteClient(id); err != nil {
			return clientDeleteFailedMsg{err: err}
		}
		return clientDeletedMsg{}
	}
}

// applyFilter recomputes the visible subset from the effective search query
// and clamps pagination and selection to the new bounds.
func (m *ClientsModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.searchQuery))

	if query == "" {
		m.filtered = make([]api.Client, len(m.clients))
		copy(m.filtered, m.clients)
	} else {
		m.filtered = nil
		for _, client := range m.clients {
			if strings.Contains(strings.ToLower(client.Name), query) ||
				strings.Contains(strings.ToLower(client.Email), query) ||
				strings.Contains(strings.ToLower(client.Phone), query) ||
				strings.Contains(strings.ToLower(client.Company), query) {
				m.filtered = append(m.filtered, client)
			}
		}
	}

	m.totalPages = (len(m.filtered) + m.pageSize - 1) / m.pageSize
	if m.totalPages < 1 {
		m.totalPages = 1
	}
	if m.currentPage > m.totalPages {
		m.currentPage = m.totalPages
	}
	if m.currentPage < 1 {
		m.currentPage = 1
	}
	if m.selected >= len(m.pageItems()) {
		m.selected = len(m.pageItems()) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *ClientsModel) setPage(page int) {
	if page < 1 {
		page = 1
	}
	if page > m.totalPages {
		page = m.totalPages
	}
	m.currentPage = page
	m.selected = 0
}

func (m ClientsModel) pageItems() []api.Client {
	start := (m.currentPage - 1) * m.pageSize
	if start >= len(m.filtered) {
		return nil
	}
	end := start + m.pageSize
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	return m.filtered[start:end]
}

func (m ClientsModel) selectedClient() (api.Client, bool) {
	items := m.pageItems()
	if m.selected < 0 || m.selected >= len(items) {
		return api.Client{}, false
	}
	return items[m.selected], true
}

func (m ClientsModel) Update(msg tea.Msg) (ClientsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clientsLoadedMsg:
		m.loading = false
		m.listError = ""
		m.clients = msg.clients
		m.applyFilter()
		return m, nil

	case clientsLoadFailedMsg:
		m.loading = false
		m.listError = listFallbackMessage(msg.err)
		if api.IsAuthError(msg.err) {
			return m, func() tea.Msg { return LoggedOutMsg{} }
		}
		return m, nil

	case clientSavedMsg:
		message := "Client updated successfully."
		if msg.created {
			message = "Client created successfully."
		}
		m.createForm.submitting = false
		m.editForm.submitting = false
		m.currentView = ClientsViewList
		m.createForm = newClientForm()
		m.loading = true
		return m, tea.Batch(
			m.loadClients(),
			notifyCmd(message, notify.SeveritySuccess),
		)

	case clientSaveFailedMsg:
		m.createForm.submitting = false
		m.editForm.submitting = false
		fallback := "Could not save the client. Check the data and try again."
		return m, errorCmd(userMessageOr(msg.err, fallback))

	case clientDeletedMsg:
		m.deleting = false
		m.currentView = ClientsViewList
		m.deleteTarget = api.Client{}
		m.deleteError = ""
		m.loading = true
		return m, tea.Batch(
			m.loadClients(),
			notifyCmd("Client removed successfully.", notify.SeveritySuccess),
		)

	case clientDeleteFailedMsg:
		m.deleting = false
		m.deleteError = userMessageOr(msg.err, "Could not delete the client. Please try again.")
		return m, nil

	case utils.DebounceMsg:
		if !m.debouncer.Match(msg) {
			return m, nil
		}
		m.searchQuery = m.pendingQuery
		m.currentPage = 1
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		switch m.currentView {
		case ClientsViewCreate:
			return m.updateCreateView(msg)
		case ClientsViewEdit:
			return m.updateEditView(msg)
		case ClientsViewDeleteConfirm:
			return m.updateDeleteConfirmView(msg)
		default:
			return m.updateListView(msg)
		}
	}

	return m, nil
}

func (m ClientsModel) updateListView(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	if m.searchInput.Focused() {
		switch msg.String() {
		case "esc":
			m.searchInput.Blur()
			return m, nil
		case "enter":
			m.searchInput.Blur()
			m.searchQuery = m.searchInput.Value()
			m.pendingQuery = m.searchQuery
			m.currentPage = 1
			m.applyFilter()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			if m.searchInput.Value() != m.pendingQuery {
				m.pendingQuery = m.searchInput.Value()
				return m, tea.Batch(cmd, m.debouncer.Trigger())
			}
			return m, cmd
		}
	}

	switch msg.String() {
	case "/", "ctrl+f":
		m.searchInput.Focus()
		return m, nil
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.pageItems())-1 {
			m.selected++
		}
		return m, nil
	case "left", "h":
		m.setPage(m.currentPage - 1)
		return m, nil
	case "right", "l":
		m.setPage(m.currentPage + 1)
		return m, nil
	case "n", "c":
		m.createForm = newClientForm()
		m.currentView = ClientsViewCreate
		return m, m.createForm.focusCurrentField()
	case "e", "enter":
		client, ok := m.selectedClient()
		if !ok {
			return m, nil
		}
		m.editTarget = client
		m.editForm = populateClientForm(client)
		m.currentView = ClientsViewEdit
		return m, m.editForm.focusCurrentField()
	case "d", "delete":
		client, ok := m.selectedClient()
		if !ok {
			return m, nil
		}
		m.deleteTarget = client
		m.deleteError = ""
		m.currentView = ClientsViewDeleteConfirm
		return m, nil
	case "r":
		m.service.InvalidateClients()
		m.loading = true
		m.listError = ""
		return m, m.loadClients()
	}

	return m, nil
}

func (m ClientsModel) updateCreateView(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	if m.createForm.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.currentView = ClientsViewList
		m.createForm = newClientForm()
		return m, nil
	case "tab", "down":
		m.createForm.nextField()
		return m, m.createForm.focusCurrentField()
	case "shift+tab", "up":
		m.createForm.prevField()
		return m, m.createForm.focusCurrentField()
	case "enter":
		if ClientFormField(m.createForm.currentField) != FormFieldSubmit {
			m.createForm.nextField()
			return m, m.createForm.focusCurrentField()
		}
		if !m.createForm.validate() {
			return m, nil
		}
		m.createForm.submitting = true
		return m, m.saveClient("", m.createForm.payload())
	default:
		return m, m.createForm.updateField(msg)
	}
}

func (m ClientsModel) updateEditView(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	if m.editForm.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.currentView = ClientsViewList
		return m, nil
	case "tab", "down":
		m.editForm.nextField()
		return m, m.editForm.focusCurrentField()
	case "shift+tab", "up":
		m.editForm.prevField()
		return m, m.editForm.focusCurrentField()
	case "enter":
		if ClientFormField(m.editForm.currentField) != FormFieldSubmit {
			m.editForm.nextField()
			return m, m.editForm.focusCurrentField()
		}
		if !m.editForm.validate() {
			return m, nil
		}
		m.editForm.submitting = true
		return m, m.saveClient(m.editTarget.ID, m.editForm.payload())
	default:
		return m, m.editForm.updateField(msg)
	}
}

func (m ClientsModel) updateDeleteConfirmView(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	if m.deleting {
		return m, nil
	}

	switch msg.String() {
	case "esc", "n":
		m.currentView = ClientsViewList
		m.deleteTarget = api.Client{}
		m.deleteError = ""
		return m, nil
	case "enter", "y":
		m.deleting = true
		m.deleteError = ""
		return m, m.deleteClient(m.deleteTarget.ID)
	}

	return m, nil
}

func listFallbackMessage(err error) string {
	if msg := api.BackendMessage(err); msg != "" {
		return msg
	}
	return "Could not load the clients. Please try again later."
}

func userMessageOr(err error, fallback string) string {
	if msg := api.BackendMessage(err); msg != "" {
		return msg
	}
	if api.IsTransient(err) {
		return api.Message(err)
	}
	return fallback
}

func (m ClientsModel) View() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text))
	content.WriteString(titleStyle.Render("Clients"))

	if user := m.session.User(); user != nil {
		userStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Subtext0))
		content.WriteString("  ")
		content.WriteString(userStyle.Render(fmt.Sprintf("signed in as %s", user.Name)))
	}
	content.WriteString("\n\n")

	content.WriteString(m.searchInput.View())
	content.WriteString("\n\n")

	switch {
	case m.loading:
		loadingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Yellow))
		content.WriteString(loadingStyle.Render(m.spinner.View() + " Loading clients..."))
		content.WriteString("\n")
	case m.listError != "":
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Red))
		content.WriteString(errorStyle.Render(m.listError))
		content.WriteString("\n")
	case len(m.filtered) == 0:
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1))
		if strings.TrimSpace(m.searchQuery) != "" {
			content.WriteString(emptyStyle.Render("No clients match your search."))
		} else {
			content.WriteString(emptyStyle.Render("No clients yet. Press [n] to add the first one."))
		}
		content.WriteString("\n")
	default:
		content.WriteString(m.renderTable())
	}

	content.WriteString("\n")
	pageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Subtext0))
	content.WriteString(pageStyle.Render(fmt.Sprintf("Page %d of %d (%d clients)", m.currentPage, m.totalPages, len(m.filtered))))
	content.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1))
	content.WriteString(helpStyle.Render("[/]Search [n]New [e]Edit [d]Delete [←→]Page [r]Reload [Ctrl+L]Sign out [Ctrl+C]Quit"))

	base := content.String()

	switch m.currentView {
	case ClientsViewCreate:
		return m.overlay(base, m.createForm.render("New client", m.width))
	case ClientsViewEdit:
		return m.overlay(base, m.editForm.render("Edit client", m.width))
	case ClientsViewDeleteConfirm:
		return m.overlay(base, m.renderDeleteConfirm())
	}

	return base
}

func (m ClientsModel) renderTable() string {
	var rows strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Sky))
	rows.WriteString(headerStyle.Render(fmt.Sprintf("  %-22s %-28s %-17s %-20s", "Name", "E-mail", "Phone", "Company")))
	rows.WriteString("\n")

	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Base)).
		Background(lipgloss.Color(utils.Colours.Blue))

	for i, client := range m.pageItems() {
		line := fmt.Sprintf("  %-22s %-28s %-17s %-20s",
			utils.Truncate(client.Name, 22),
			utils.Truncate(client.Email, 28),
			utils.MaskPhone(client.Phone),
			utils.Truncate(client.Company, 20))
		if i == m.selected {
			rows.WriteString(selectedStyle.Render("> " + strings.TrimPrefix(line, "  ")))
		} else {
			rows.WriteString(rowStyle.Render(line))
		}
		rows.WriteString("\n")
	}

	return rows.String()
}

func (m ClientsModel) renderDeleteConfirm() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Red))
	content.WriteString(titleStyle.Render("Delete client"))
	content.WriteString("\n\n")

	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	content.WriteString(textStyle.Render(fmt.Sprintf("Remove %s? This cannot be undone.", m.deleteTarget.Name)))
	content.WriteString("\n\n")

	if m.deleting {
		pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Yellow))
		content.WriteString(pendingStyle.Render(m.spinner.View() + " Removing..."))
		content.WriteString("\n\n")
	} else if m.deleteError != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Red))
		content.WriteString(errorStyle.Render(m.deleteError))
		content.WriteString("\n\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1))
	content.WriteString(helpStyle.Render("[Enter/y]Confirm [Esc/n]Cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Red)).
		Padding(1, 2).
		Render(content.String())
}

func (m ClientsModel) overlay(base, modal string) string {
	if m.width <= 0 || m.height <= 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
