package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/auwalms/kasuwa/internal/actions"
	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/nav"
)

type formKind int

const (
	formLogin formKind = iota
	formRegister
	formSell
	formEditProduct
	formEditProfile
)

// formState is a modal input form. Product forms carry one virtual field
// beyond the text inputs: the category selector, cycled with left/right.
type formState struct {
	kind      formKind
	title     string
	labels    []string
	inputs    []textinput.Model
	focus     int
	category  int    // index into market.Categories, product forms only
	productID string // edit form only
}

// hasCategory reports whether the form ends with the category selector row.
func (f *formState) hasCategory() bool {
	return f.kind == formSell || f.kind == formEditProduct
}

// fieldCount is the number of focusable rows.
func (f *formState) fieldCount() int {
	n := len(f.inputs)
	if f.hasCategory() {
		n++
	}
	return n
}

// onCategory reports whether the category selector row is focused.
func (f *formState) onCategory() bool {
	return f.hasCategory() && f.focus == len(f.inputs)
}

func (f *formState) setFocus(idx int) {
	count := f.fieldCount()
	if count == 0 {
		return
	}
	f.focus = ((idx % count) + count) % count
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func newFormInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func newLoginForm() *formState {
	f := &formState{
		kind:   formLogin,
		title:  "Log In",
		labels: []string{"Username"},
		inputs: []textinput.Model{newFormInput("username", 40)},
	}
	f.setFocus(0)
	return f
}

func newRegisterForm() *formState {
	f := &formState{
		kind:   formRegister,
		title:  "Create Account",
		labels: []string{"Name", "Username"},
		inputs: []textinput.Model{
			newFormInput("full name", 60),
			newFormInput("username", 40),
		},
	}
	f.setFocus(0)
	return f
}

func newEditProfileForm(u market.User) *formState {
	f := &formState{
		kind:   formEditProfile,
		title:  "Edit Profile",
		labels: []string{"Name", "Username"},
		inputs: []textinput.Model{
			newFormInput("full name", 60),
			newFormInput("username", 40),
		},
	}
	f.inputs[0].SetValue(u.Name)
	f.inputs[1].SetValue(u.Username)
	f.setFocus(0)
	return f
}

func productFormInputs() []textinput.Model {
	return []textinput.Model{
		newFormInput("what are you selling?", 100),
		newFormInput("price in naira", 20),
		newFormInput("image files or URLs, comma separated", 500),
		newFormInput("description", 1000),
	}
}

var productFormLabels = []string{"Title", "Price", "Images", "Description"}

func newSellForm() *formState {
	f := &formState{
		kind:   formSell,
		title:  "Post an Ad",
		labels: productFormLabels,
		inputs: productFormInputs(),
	}
	f.setFocus(0)
	return f
}

func newEditProductForm(p market.Product) *formState {
	f := &formState{
		kind:      formEditProduct,
		title:     "Edit Ad",
		labels:    productFormLabels,
		inputs:    productFormInputs(),
		productID: p.ID,
	}
	f.inputs[0].SetValue(p.Title)
	f.inputs[1].SetValue(strconv.FormatFloat(p.Price, 'f', -1, 64))
	f.inputs[2].SetValue(strings.Join(p.Images, ", "))
	f.inputs[3].SetValue(p.Description)
	for i, cat := range market.Categories {
		if cat == p.Category {
			f.category = i
		}
	}
	f.setFocus(0)
	return f
}

// handleFormKey processes keyboard input while a form is open. Enter advances
// through the fields and submits from the last one.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.closeForm()
		return m, nil

	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil

	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil

	case "left":
		if f.onCategory() {
			f.category = (f.category + len(market.Categories) - 1) % len(market.Categories)
			return m, nil
		}

	case "right":
		if f.onCategory() {
			f.category = (f.category + 1) % len(market.Categories)
			return m, nil
		}

	case "enter":
		if f.focus < f.fieldCount()-1 {
			f.setFocus(f.focus + 1)
			return m, nil
		}
		return m.submitForm()
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// closeForm discards the open form. Cancelling the edit-profile page also
// navigates back.
func (m *Model) closeForm() {
	wasProfileEdit := m.form != nil && m.form.kind == formEditProfile
	m.form = nil
	if wasProfileEdit && m.nav.Page() == nav.PageEditProfile {
		m.goBack()
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	value := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	switch f.kind {
	case formLogin:
		username := value(0)
		if username == "" {
			return m, notifyCmd("Username is required.")
		}
		m.form = nil
		return m, m.loginCmd(username)

	case formRegister:
		name, username := value(0), value(1)
		m.form = nil
		return m, m.registerCmd(name, username)

	case formEditProfile:
		name, username := value(0), value(1)
		m.closeForm()
		return m, m.updateProfileCmd(name, username)

	case formSell, formEditProduct:
		price, err := strconv.ParseFloat(value(1), 64)
		if value(1) != "" && err != nil {
			return m, notifyCmd("Price must be a number.")
		}
		images := splitImages(value(2))
		category := market.Categories[f.category]

		if f.kind == formSell {
			m.form = nil
			return m, m.createProductCmd(actions.ProductDraft{
				Title:       value(0),
				Price:       price,
				Category:    category,
				Images:      images,
				Description: value(3),
			})
		}

		product, ok := m.snapshot.Product(f.productID)
		if !ok {
			m.form = nil
			return m, notifyCmd("Error updating ad.")
		}
		product.Title = value(0)
		product.Price = price
		product.Category = category
		product.Images = images
		product.Description = value(3)
		m.form = nil
		return m, m.updateProductCmd(product)
	}

	m.form = nil
	return m, nil
}

// splitImages parses the comma-separated images field.
func splitImages(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// renderForm renders the open form as a centered modal.
func (m Model) renderForm() string {
	f := m.form
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(f.title))
	b.WriteString("\n\n")

	for i, label := range f.labels {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText
		}
		b.WriteString(labelStyle.Render(padLabel(label)))
		b.WriteString(" ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	if f.hasCategory() {
		labelStyle := styles.MutedText
		arrowStyle := styles.FaintText
		if f.onCategory() {
			labelStyle = styles.AccentText
			arrowStyle = styles.AccentText
		}
		b.WriteString(labelStyle.Render(padLabel("Category")))
		b.WriteString(" ")
		b.WriteString(arrowStyle.Render("◂ "))
		b.WriteString(styles.Text.Render(market.Categories[f.category]))
		b.WriteString(arrowStyle.Render(" ▸"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Enter: next/submit · Tab: move · Esc: cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, box)
}

func padLabel(label string) string {
	const width = 12
	if len(label) >= width {
		return label
	}
	return label + strings.Repeat(" ", width-len(label))
}
