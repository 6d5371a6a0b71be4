package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"antunys/clientDesk/internal/api"
	"antunys/clientDesk/internal/utils"
)

type ClientFormField int

const (
	FormFieldName ClientFormField = iota
	FormFieldEmail
	FormFieldPhone
	FormFieldCompany
	FormFieldSubmit
)

// ClientForm backs both the create and the edit modal. The phone field is
// masked while typed and unmasked when the payload is built.
type ClientForm struct {
	name    textinput.Model
	email   textinput.Model
	phone   textinput.Model
	company textinput.Model

	errors       map[string]string
	currentField int
	submitting   bool
}

func newClientForm() ClientForm {
	nameInput := textinput.New()
	nameInput.Placeholder = "e.g. John Smith"
	nameInput.CharLimit = 80
	nameInput.Focus()
	nameInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	nameInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))

	emailInput := textinput.New()
	emailInput.Placeholder = "you@example.com"
	emailInput.CharLimit = 120
	emailInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	emailInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))

	phoneInput := textinput.New()
	phoneInput.Placeholder = "(00) 00000-0000"
	phoneInput.CharLimit = 15
	phoneInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	phoneInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))

	companyInput := textinput.New()
	companyInput.Placeholder = "e.g. Acme Corp"
	companyInput.CharLimit = 80
	companyInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	companyInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))

	return ClientForm{
		name:         nameInput,
		email:        emailInput,
		phone:        phoneInput,
		company:      companyInput,
		errors:       make(map[string]string),
		currentField: int(FormFieldName),
	}
}

// populateClientForm pre-fills the form from the client being edited.
func populateClientForm(client api.Client) ClientForm {
	form := newClientForm()
	form.name.SetValue(client.Name)
	form.email.SetValue(client.Email)
	form.phone.SetValue(utils.MaskPhone(client.Phone))
	form.company.SetValue(client.Company)
	return form
}

func (f *ClientForm) nextField() {
	f.currentField = (f.currentField + 1) % (int(FormFieldSubmit) + 1)
}

func (f *ClientForm) prevField() {
	f.currentField = (f.currentField + int(FormFieldSubmit)) % (int(FormFieldSubmit) + 1)
}

func (f *ClientForm) focusCurrentField() tea.Cmd {
	f.name.Blur()
	f.email.Blur()
	f.phone.Blur()
	f.company.Blur()

	switch ClientFormField(f.currentField) {
	case FormFieldName:
		return f.name.Focus()
	case FormFieldEmail:
		return f.email.Focus()
	case FormFieldPhone:
		return f.phone.Focus()
	case FormFieldCompany:
		return f.company.Focus()
	}
	return nil
}

func (f *ClientForm) updateField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch ClientFormField(f.currentField) {
	case FormFieldName:
		f.name, cmd = f.name.Update(msg)
	case FormFieldEmail:
		f.email, cmd = f.email.Update(msg)
	case FormFieldPhone:
		f.phone, cmd = f.phone.Update(msg)
		f.phone.SetValue(utils.MaskPhone(f.phone.Value()))
		f.phone.CursorEnd()
	case FormFieldCompany:
		f.company, cmd = f.company.Update(msg)
	}

	return cmd
}

func (f *ClientForm) validate() bool {
	f.errors = make(map[string]string)

	if msg := utils.ValidateName(f.name.Value()); msg != "" {
		f.errors["name"] = msg
	}
	if msg := utils.ValidateEmail(f.email.Value()); msg != "" {
		f.errors["email"] = msg
	}
	if msg := utils.ValidatePhone(f.phone.Value()); msg != "" {
		f.errors["phone"] = msg
	}
	if msg := utils.ValidateCompany(f.company.Value()); msg != "" {
		f.errors["company"] = msg
	}

	return len(f.errors) == 0
}

func (f *ClientForm) payload() api.ClientPayload {
	return api.ClientPayload{
		Name:    strings.TrimSpace(f.name.Value()),
		Email:   strings.TrimSpace(f.email.Value()),
		Phone:   utils.UnmaskPhone(f.phone.Value()),
		Company: strings.TrimSpace(f.company.Value()),
	}
}

func (f *ClientForm) render(title string, width int) string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text))
	content.WriteString(titleStyle.Render(title))
	content.WriteString("\n\n")

	fields := []struct {
		label string
		input textinput.Model
		key   string
	}{
		{"Name", f.name, "name"},
		{"E-mail", f.email, "email"},
		{"Phone", f.phone, "phone"},
		{"Company", f.company, "company"},
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Subtext0))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Red))

	for _, field := range fields {
		content.WriteString(labelStyle.Render(field.label))
		content.WriteString("\n")
		content.WriteString(field.input.View())
		content.WriteString("\n")
		if msg, ok := f.errors[field.key]; ok {
			content.WriteString(errorStyle.Render(msg))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	submitLabel := "[ Save ]"
	if f.submitting {
		submitLabel = "[ Saving... ]"
	}

	submitStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Base)).
		Background(lipgloss.Color(utils.Colours.Blue)).
		Padding(0, 1)
	if ClientFormField(f.currentField) != FormFieldSubmit {
		submitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Overlay1)).
			Padding(0, 1)
	}
	content.WriteString(submitStyle.Render(submitLabel))
	content.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1))
	content.WriteString(helpStyle.Render("[Tab]Next field [Enter]Confirm [Esc]Cancel"))

	boxWidth := 52
	if width > 0 && width-4 < boxWidth {
		boxWidth = width - 4
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(1, 2).
		Width(boxWidth).
		Render(content.String())
}
