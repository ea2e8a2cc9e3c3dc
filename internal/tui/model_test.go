package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/catalog-admin/internal/admin"
	"github.com/muurk/catalog-admin/internal/catalog"
	"github.com/muurk/catalog-admin/internal/view"
)

// memAPI is an in-memory catalog backend
type memAPI struct {
	mu        sync.Mutex
	products  []catalog.Product
	nextID    int
	calls     map[string]int
	lastInput catalog.ProductInput
}

func newMemAPI(n int) *memAPI {
	api := &memAPI{nextID: n + 1, calls: map[string]int{}}
	for i := 1; i <= n; i++ {
		api.products = append(api.products, catalog.Product{
			ID:     i,
			Name:   fmt.Sprintf("Product %02d", i),
			SKU:    fmt.Sprintf("SKU-%02d", i),
			Price:  float64(i) * 10,
			Active: i%2 == 1,
		})
	}
	return api
}

func (a *memAPI) count(method string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[method]
}

func (a *memAPI) List(ctx context.Context, skip, limit int, minPrice float64) (*catalog.ProductPage, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls["list"]++
	items := append([]catalog.Product(nil), a.products...)
	return &catalog.ProductPage{Items: items, Total: len(items), Skip: skip, Limit: limit}, nil
}

func (a *memAPI) Get(ctx context.Context, id int) (*catalog.Product, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls["get"]++
	for _, p := range a.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, catalog.NewHTTPError(404, "Not Found", "Product not found")
}

func (a *memAPI) Create(ctx context.Context, input catalog.ProductInput) (*catalog.Product, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls["create"]++
	a.lastInput = input
	p := catalog.Product{ID: a.nextID, Name: input.Name, SKU: input.SKU, Price: input.Price, Active: input.Active}
	a.nextID++
	a.products = append(a.products, p)
	return &p, nil
}

func (a *memAPI) Update(ctx context.Context, id int, input catalog.ProductInput) (*catalog.Product, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls["update"]++
	a.lastInput = input
	for i, p := range a.products {
		if p.ID == id {
			a.products[i] = catalog.Product{ID: id, Name: input.Name, SKU: input.SKU, Price: input.Price, Active: input.Active}
			return &a.products[i], nil
		}
	}
	return nil, catalog.NewHTTPError(404, "Not Found", "Product not found")
}

func (a *memAPI) Delete(ctx context.Context, id int) (*catalog.DeleteResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls["delete"]++
	for i, p := range a.products {
		if p.ID == id {
			a.products = append(a.products[:i], a.products[i+1:]...)
			return &catalog.DeleteResult{Detail: "Product deleted"}, nil
		}
	}
	return nil, catalog.NewHTTPError(404, "Not Found", "Product not found")
}

func newTestModel(t *testing.T, n int) (Model, *memAPI, *admin.Controller) {
	t.Helper()
	ctx := context.Background()

	api := newMemAPI(n)
	doc := view.NewDocument("R$")
	ctrl := admin.NewController(api, doc)
	require.NoError(t, ctrl.Load(ctx))

	m := New(ctx, ctrl, doc, Options{APIURL: "http://test/products"})
	t.Cleanup(func() { doc.Unsubscribe(m.updates) })
	return m, api, ctrl
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends keys in order and returns the model and the last command
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// finish runs a network command synchronously and feeds its result back
func finish(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(opDoneMsg)
	require.True(t, ok, "expected opDoneMsg, got %T", msg)
	next, _ := m.Update(done)
	return next.(Model)
}

func TestInitialView(t *testing.T) {
	m, _, _ := newTestModel(t, 15)

	out := m.View()
	assert.Contains(t, out, AppName)
	assert.Contains(t, out, "http://test/products")
	assert.Contains(t, out, "Product 01")
	assert.Contains(t, out, "R$ 10.00")
	assert.NotContains(t, out, "Product 11")
	assert.Contains(t, out, "Next →")
	assert.Len(t, m.snap.Rows, admin.PageSize)
}

func TestEmptyCatalog(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	assert.Contains(t, m.View(), "No products found")

	m, cmd := press(m, "e")
	assert.Nil(t, cmd, "nothing to edit")
	m, _ = press(m, "d")
	assert.False(t, m.snap.Confirm.Open, "nothing to delete")
}

func TestPaging(t *testing.T) {
	m, _, ctrl := newTestModel(t, 15)

	m, _ = press(m, "right")
	assert.Equal(t, 2, ctrl.Snapshot().State.CurrentPage)
	require.Len(t, m.snap.Rows, 5)
	assert.Equal(t, 11, m.snap.Rows[0].ID)

	m, _ = press(m, "right")
	assert.Equal(t, 2, ctrl.Snapshot().State.CurrentPage, "no page past the last")

	m, _ = press(m, "left", "left")
	assert.Equal(t, 1, ctrl.Snapshot().State.CurrentPage)
	assert.Equal(t, 1, m.snap.Rows[0].ID)
}

func TestNameFilter(t *testing.T) {
	m, _, ctrl := newTestModel(t, 15)

	m, _ = press(m, "/", "1", "2")
	assert.Equal(t, focusNameFilter, m.focus)
	assert.Equal(t, "12", ctrl.Snapshot().State.FilterName)
	require.Len(t, m.snap.Rows, 1)
	assert.Equal(t, "Product 12", m.snap.Rows[0].Name)

	m, _ = press(m, "esc")
	assert.Equal(t, focusTable, m.focus)

	m, _ = press(m, "c")
	assert.Empty(t, ctrl.Snapshot().State.FilterName)
	assert.Empty(t, m.nameFilter.Value())
	assert.Len(t, m.snap.Rows, admin.PageSize)
}

func TestIDFilter(t *testing.T) {
	m, _, _ := newTestModel(t, 15)

	m, _ = press(m, "i", "7")
	require.Len(t, m.snap.Rows, 1)
	assert.Equal(t, 7, m.snap.Rows[0].ID)

	m, _ = press(m, "esc", "c", "i", "x")
	assert.Empty(t, m.snap.Rows, "non-numeric id matches nothing")
	assert.Contains(t, m.View(), "No products found")
}

func TestCreateProduct(t *testing.T) {
	m, api, ctrl := newTestModel(t, 3)

	m, _ = press(m, "n")
	require.True(t, m.snap.Modal.Open)
	assert.Equal(t, "New Product", m.snap.Modal.Title)
	assert.Equal(t, fieldName, m.formField)
	assert.True(t, m.formActive, "new products default to active")

	m, _ = press(m, "Cable", "tab", "C-9", "tab", "1234")
	assert.Equal(t, "12,34", m.inputs[fieldPrice].Value(), "price is masked while typing")

	m, _ = press(m, "tab", " ")
	assert.False(t, m.formActive)

	m, cmd := press(m, "enter")
	m = finish(t, m, cmd)

	assert.Equal(t, 1, api.count("create"))
	assert.Equal(t, "Cable", api.lastInput.Name)
	assert.Equal(t, "C-9", api.lastInput.SKU)
	assert.InDelta(t, 12.34, api.lastInput.Price, 0.0001)
	assert.False(t, api.lastInput.Active)

	assert.False(t, m.snap.Modal.Open)
	assert.Equal(t, admin.ModalClosed, ctrl.Snapshot().Modal)
	assert.Contains(t, m.View(), admin.MsgCreated)
	assert.Len(t, ctrl.Snapshot().State.AllProducts, 4)
}

func TestInvalidSubmitKeepsModalOpen(t *testing.T) {
	m, api, _ := newTestModel(t, 3)
	lists := api.count("list")

	m, _ = press(m, "n")
	m, cmd := press(m, "enter")
	m = finish(t, m, cmd)

	assert.Zero(t, api.count("create"))
	assert.Equal(t, lists, api.count("list"), "no reload after a validation error")
	assert.True(t, m.snap.Modal.Open)
	assert.Contains(t, m.View(), admin.MsgInvalidForm)
}

func TestEditProduct(t *testing.T) {
	m, api, _ := newTestModel(t, 3)

	m, _ = press(m, "down")
	m, cmd := press(m, "e")
	m = finish(t, m, cmd)

	assert.Equal(t, 1, api.count("get"))
	require.True(t, m.snap.Modal.Open)
	assert.Equal(t, "Edit Product", m.snap.Modal.Title)
	assert.Equal(t, "2", m.formID)
	assert.Equal(t, "Product 02", m.inputs[fieldName].Value())
	assert.Equal(t, "20,00", m.inputs[fieldPrice].Value())
	assert.False(t, m.formActive)

	m, _ = press(m, " ")
	m, _ = press(m, "!")
	m, cmd = press(m, "enter")
	m = finish(t, m, cmd)

	assert.Equal(t, 1, api.count("update"))
	assert.Zero(t, api.count("create"))
	assert.Equal(t, "Product 02 !", api.lastInput.Name)
	assert.InDelta(t, 20.0, api.lastInput.Price, 0.0001)
	assert.False(t, m.snap.Modal.Open)
}

func TestCancelFormResets(t *testing.T) {
	m, _, ctrl := newTestModel(t, 3)

	m, cmd := press(m, "e")
	m = finish(t, m, cmd)
	require.True(t, m.snap.Modal.Open)

	m, _ = press(m, "esc")
	assert.False(t, m.snap.Modal.Open)
	assert.Empty(t, m.formID)
	assert.Empty(t, m.inputs[fieldName].Value())
	assert.Nil(t, ctrl.Snapshot().State.EditingID)
}

func TestDeleteConfirmation(t *testing.T) {
	m, api, ctrl := newTestModel(t, 3)
	lists := api.count("list")

	m, _ = press(m, "d")
	require.True(t, m.snap.Confirm.Open)
	assert.Contains(t, m.View(), `Are you sure you want to delete the product "Product 01"?`)

	m, _ = press(m, "n")
	assert.False(t, m.snap.Confirm.Open)
	assert.Nil(t, ctrl.Snapshot().PendingDelete)
	assert.Zero(t, api.count("delete"))

	m, _ = press(m, "d")
	m, cmd := press(m, "y")
	m = finish(t, m, cmd)

	assert.Equal(t, 1, api.count("delete"))
	assert.Equal(t, lists+1, api.count("list"))
	assert.False(t, m.snap.Confirm.Open)
	assert.Len(t, m.snap.Rows, 2)
	assert.Contains(t, m.View(), admin.MsgDeleted)
}

func TestDeleteConfirmationLongName(t *testing.T) {
	ctx := context.Background()
	name := strings.Repeat("Wireless ", 8) + "Mouse"

	api := newMemAPI(2)
	api.products[0].Name = name
	doc := view.NewDocument("R$")
	ctrl := admin.NewController(api, doc)
	require.NoError(t, ctrl.Load(ctx))
	m := New(ctx, ctrl, doc, Options{APIURL: "http://test/products"})
	t.Cleanup(func() { doc.Unsubscribe(m.updates) })

	next, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	m = next.(Model)
	m, _ = press(m, "d")
	require.True(t, m.snap.Confirm.Open)
	assert.Contains(t, m.View(), `Are you sure you want to delete the product "`+name+`"?`)
}

func TestReload(t *testing.T) {
	m, api, _ := newTestModel(t, 3)
	lists := api.count("list")

	m, cmd := press(m, "r")
	finish(t, m, cmd)
	assert.Equal(t, lists+1, api.count("list"))
}

func TestHelpAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t, 3)

	m, _ = press(m, "?")
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "clear filters")

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitKeyTypesInFilter(t *testing.T) {
	m, _, ctrl := newTestModel(t, 3)

	m, cmd := press(m, "/", "q")
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}
	assert.Equal(t, "q", ctrl.Snapshot().State.FilterName)
	assert.Equal(t, focusNameFilter, m.focus)
}
