package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/catalog-admin/internal/admin"
	"github.com/muurk/catalog-admin/internal/catalog"
	"github.com/muurk/catalog-admin/internal/logging"
	"github.com/muurk/catalog-admin/internal/version"
	"github.com/muurk/catalog-admin/internal/view"
)

// focus is the widget receiving key presses when no dialog is open
type focus int

const (
	focusTable focus = iota
	focusNameFilter
	focusIDFilter
)

// Form fields, in tab order
const (
	fieldName = iota
	fieldSKU
	fieldPrice
	fieldActive
	fieldCount
)

// docChangedMsg is sent when the document changed outside of Update
// (request finished, banner expired)
type docChangedMsg struct{}

// opDoneMsg reports the end of a network operation. Errors have already been
// shown in the error banner by the controller.
type opDoneMsg struct {
	op  string
	err error
}

// Options configures the terminal console
type Options struct {
	// APIURL is shown in the header
	APIURL string

	// CurrencySymbol labels the price field
	CurrencySymbol string
}

// Model is the bubbletea model of the console. It paints a view.Document and
// turns key presses into Controller calls.
type Model struct {
	ctx     context.Context
	ctrl    *admin.Controller
	doc     *view.Document
	updates <-chan struct{}
	opts    Options

	snap view.Snapshot

	focus      focus
	nameFilter textinput.Model
	idFilter   textinput.Model
	table      table.Model
	spinner    spinner.Model

	inputs       []textinput.Model
	formField    int
	formActive   bool
	formID       string
	formRevision uint64

	help        help.Model
	keys        keyMap
	formKeys    formKeyMap
	confirmKeys confirmKeyMap

	width  int
	height int
}

// New creates the console model and subscribes it to doc
func New(ctx context.Context, ctrl *admin.Controller, doc *view.Document, opts Options) Model {
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = catalog.DefaultCurrencySymbol
	}

	nameFilter := textinput.New()
	nameFilter.Prompt = ""
	nameFilter.Placeholder = "name"
	nameFilter.CharLimit = catalog.MaxNameLength
	nameFilter.Width = 24

	idFilter := textinput.New()
	idFilter.Prompt = ""
	idFilter.Placeholder = "id"
	idFilter.CharLimit = 10
	idFilter.Width = 8

	inputs := make([]textinput.Model, fieldActive)
	for i := range inputs {
		t := textinput.New()
		t.Prompt = ""
		t.Width = 36
		switch i {
		case fieldName:
			t.Placeholder = "Product name"
			t.CharLimit = catalog.MaxNameLength
		case fieldSKU:
			t.Placeholder = "SKU"
			t.CharLimit = catalog.MaxSKULength
		case fieldPrice:
			t.Placeholder = "0,00"
			t.CharLimit = 20
		}
		inputs[i] = t
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusedLabelStyle

	t := table.New(
		table.WithColumns(columns()),
		table.WithHeight(admin.PageSize+1),
		table.WithFocused(true),
		table.WithStyles(tableStyles()),
	)

	m := Model{
		ctx:         ctx,
		ctrl:        ctrl,
		doc:         doc,
		updates:     doc.Subscribe(),
		opts:        opts,
		nameFilter:  nameFilter,
		idFilter:    idFilter,
		table:       t,
		spinner:     s,
		inputs:      inputs,
		formActive:  true,
		help:        help.New(),
		keys:        newKeyMap(),
		formKeys:    newFormKeyMap(),
		confirmKeys: newConfirmKeyMap(),
	}
	m.sync()
	return m
}

// Run starts the console in the alternate screen and blocks until the user quits
func Run(ctx context.Context, ctrl *admin.Controller, doc *view.Document, opts Options) error {
	m := New(ctx, ctrl, doc, opts)
	defer doc.Unsubscribe(m.updates)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init loads the catalog and starts listening for document changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForChange(),
		m.spinner.Tick,
		m.run("load", m.ctrl.Load),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case docChangedMsg:
		m.sync()
		return m, m.waitForChange()

	case opDoneMsg:
		if msg.err != nil {
			logging.Debug("Console operation failed", zap.String("op", msg.op), zap.Error(msg.err))
		}
		m.sync()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.snap.Confirm.Open:
			return m.updateConfirm(msg)
		case m.snap.Modal.Open:
			return m.updateForm(msg)
		case m.focus != focusTable:
			return m.updateFilter(msg)
		default:
			return m.updateTable(msg)
		}
	}

	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.FilterName):
		m.focus = focusNameFilter
		return m, m.nameFilter.Focus()

	case key.Matches(msg, m.keys.FilterID):
		m.focus = focusIDFilter
		return m, m.idFilter.Focus()

	case key.Matches(msg, m.keys.Clear):
		m.nameFilter.SetValue("")
		m.idFilter.SetValue("")
		m.ctrl.ClearFilters()
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.ctrl.GoToPage(m.ctrl.Snapshot().State.CurrentPage - 1)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.ctrl.GoToPage(m.ctrl.Snapshot().State.CurrentPage + 1)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.ctrl.OpenNewProductModal()
		m.sync()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		id := row.ID
		return m, m.run("edit", func(ctx context.Context) error {
			return m.ctrl.EditProduct(ctx, id)
		})

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.ctrl.RequestDelete(row.ID, row.Name)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.run("load", m.ctrl.Load)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.nameFilter.Blur()
		m.idFilter.Blur()
		m.focus = focusTable
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusNameFilter {
		before := m.nameFilter.Value()
		m.nameFilter, cmd = m.nameFilter.Update(msg)
		if v := m.nameFilter.Value(); v != before {
			m.ctrl.SetFilterName(v)
		}
	} else {
		before := m.idFilter.Value()
		m.idFilter, cmd = m.idFilter.Update(msg)
		if v := m.idFilter.Value(); v != before {
			m.ctrl.SetFilterID(v)
		}
	}
	m.sync()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.ctrl.CloseModal()
		m.sync()
		return m, nil

	case key.Matches(msg, m.formKeys.Submit):
		if m.snap.Loading {
			return m, nil
		}
		form := m.currentForm()
		m.doc.SetForm(form)
		data := form.Data()
		return m, m.run("save", func(ctx context.Context) error {
			return m.ctrl.SubmitForm(ctx, data)
		})

	case key.Matches(msg, m.formKeys.Next):
		return m, m.focusField((m.formField + 1) % fieldCount)

	case key.Matches(msg, m.formKeys.Prev):
		return m, m.focusField((m.formField + fieldCount - 1) % fieldCount)
	}

	if m.formField == fieldActive {
		if key.Matches(msg, m.formKeys.Toggle) {
			m.formActive = !m.formActive
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.formField], cmd = m.inputs[m.formField].Update(msg)
	if m.formField == fieldPrice {
		price := &m.inputs[fieldPrice]
		price.SetValue(catalog.FormatCurrencyInput(price.Value()))
		price.CursorEnd()
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.confirmKeys.Yes):
		cmd := m.run("delete", m.ctrl.ConfirmDelete)
		return m, cmd
	case key.Matches(msg, m.confirmKeys.No):
		m.ctrl.CancelDelete()
		m.sync()
	}
	return m, nil
}

// focusField moves the form cursor; returns the blink command of the new input
func (m *Model) focusField(field int) tea.Cmd {
	m.formField = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m Model) currentForm() admin.Form {
	return admin.Form{
		ID:     m.formID,
		Name:   m.inputs[fieldName].Value(),
		SKU:    m.inputs[fieldSKU].Value(),
		Price:  m.inputs[fieldPrice].Value(),
		Active: m.formActive,
	}
}

func (m Model) selectedRow() (view.Row, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.snap.Rows) {
		return view.Row{}, false
	}
	return m.snap.Rows[cursor], true
}

// sync copies the document into the widgets
func (m *Model) sync() {
	snap := m.doc.Snapshot()

	if snap.Modal.Revision != m.formRevision {
		form := snap.Modal.Form
		m.inputs[fieldName].SetValue(form.Name)
		m.inputs[fieldSKU].SetValue(form.SKU)
		m.inputs[fieldPrice].SetValue(form.Price)
		m.formActive = form.Active
		m.formID = form.ID
		m.formRevision = snap.Modal.Revision
	}
	if snap.Modal.Open && !m.snap.Modal.Open {
		m.focusField(fieldName)
	}

	rows := make([]table.Row, 0, len(snap.Rows))
	for _, r := range snap.Rows {
		rows = append(rows, table.Row{strconv.Itoa(r.ID), r.Name, r.SKU, r.Price, r.Status})
	}
	m.table.SetRows(rows)
	if snap.ScrollSeq != m.snap.ScrollSeq {
		m.table.GotoTop()
	}
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	m.snap = snap
}

func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) waitForChange() tea.Cmd {
	ctx, updates := m.ctx, m.updates
	return func() tea.Msg {
		select {
		case <-updates:
			return docChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// View renders the console
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(AppName))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  %s  %s", m.opts.APIURL, version.Version)))
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n")
	b.WriteString(m.renderBanners())
	b.WriteString("\n")

	switch {
	case m.snap.Confirm.Open:
		b.WriteString(m.renderConfirm())
	case m.snap.Modal.Open:
		b.WriteString(m.renderForm())
	default:
		b.WriteString(m.renderTable())
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderFilters() string {
	name := labelStyle.Render("Name: ")
	if m.focus == focusNameFilter {
		name = focusedLabelStyle.Render("Name: ")
	}
	id := labelStyle.Render("ID: ")
	if m.focus == focusIDFilter {
		id = focusedLabelStyle.Render("ID: ")
	}
	return name + m.nameFilter.View() + "   " + id + m.idFilter.View()
}

func (m Model) renderBanners() string {
	var lines []string
	if m.snap.Loading {
		lines = append(lines, m.spinner.View()+" Loading...")
	}
	if m.snap.Error.Visible {
		lines = append(lines, errorBannerStyle.Render(m.snap.Error.Message))
	}
	if m.snap.Success != nil && m.snap.Success.Visible {
		lines = append(lines, successBannerStyle.Render(m.snap.Success.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTable() string {
	var b strings.Builder
	if m.snap.Empty {
		b.WriteString(subtleStyle.Render("No products found"))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n\n")
	if p := renderPagination(m.snap.Pagination); p != "" {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderForm() string {
	labels := []string{"Name", "SKU", "Price (" + m.opts.CurrencySymbol + ")"}

	var lines []string
	lines = append(lines, headerStyle.Render(m.snap.Modal.Title), "")
	for i, label := range labels {
		style := labelStyle
		if m.formField == i {
			style = focusedLabelStyle
		}
		lines = append(lines, style.Render(label), m.inputs[i].View(), "")
	}

	check := "[ ]"
	if m.formActive {
		check = "[x]"
	}
	style := labelStyle
	if m.formField == fieldActive {
		style = focusedLabelStyle
	}
	lines = append(lines, style.Render(check+" Active"))

	box := modalStyle.Render(strings.Join(lines, "\n"))
	return box + "\n\n" + m.help.View(m.formKeys)
}

// renderConfirm grows the box to fit the whole question on one line,
// unless the terminal is narrower
func (m Model) renderConfirm() string {
	message := m.snap.Confirm.Message
	width := max(confirmMinWidth, lipgloss.Width(message)+confirmStyle.GetHorizontalPadding())
	if m.width > 0 {
		width = min(width, m.width-confirmStyle.GetHorizontalBorderSize())
	}

	box := confirmStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		errorBannerStyle.Render("Delete product"),
		"",
		message,
	))
	return box + "\n\n" + m.help.View(m.confirmKeys)
}

func renderPagination(p admin.Pagination) string {
	if !p.Visible() {
		return ""
	}
	parts := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Active {
			parts = append(parts, activePageStyle.Render(item.Label()))
		} else {
			parts = append(parts, pageStyle.Render(item.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func columns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 30},
		{Title: "SKU", Width: 14},
		{Title: "Price", Width: 14},
		{Title: "Status", Width: 10},
	}
}
