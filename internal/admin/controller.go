package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/catalog-admin/internal/catalog"
	"github.com/muurk/catalog-admin/internal/logging"
)

// User-facing messages
const (
	MsgLoadProductsFailed = "Error loading products: "
	MsgLoadProductFailed  = "Error loading product: "
	MsgSaveFailed         = "Error saving product: "
	MsgDeleteFailed       = "Error deleting product: "
	MsgInvalidForm        = "Please fill in all fields correctly: "
	MsgCreated            = "Product created successfully!"
	MsgUpdated            = "Product updated successfully!"
	MsgDeleted            = "Product deleted successfully!"
)

// ErrNoPendingDelete is returned by ConfirmDelete when no delete was requested
var ErrNoPendingDelete = errors.New("no product selected for deletion")

// ErrReloadFailed wraps a failed reload after the product was saved or deleted.
// The change itself reached the API.
var ErrReloadFailed = errors.New("change applied but the catalog could not be reloaded")

// ProductAPI is the subset of the catalog client the Controller uses
type ProductAPI interface {
	List(ctx context.Context, skip, limit int, minPrice float64) (*catalog.ProductPage, error)
	Get(ctx context.Context, id int) (*catalog.Product, error)
	Create(ctx context.Context, input catalog.ProductInput) (*catalog.Product, error)
	Update(ctx context.Context, id int, input catalog.ProductInput) (*catalog.Product, error)
	Delete(ctx context.Context, id int) (*catalog.DeleteResult, error)
}

// DeleteTarget is the product awaiting delete confirmation
type DeleteTarget struct {
	ID   int
	Name string
}

// ConfirmMessage is the question shown in the confirmation dialog
func (t DeleteTarget) ConfirmMessage() string {
	return fmt.Sprintf(`Are you sure you want to delete the product "%s"?`, t.Name)
}

// Renderer is the display surface the Controller drives
type Renderer interface {
	ShowLoading(on bool)
	ShowError(msg string)
	ShowSuccess(msg string)

	// OpenModal shows the product form as it currently is.
	// CloseModal hides it and resets the form to a blank new product.
	OpenModal()
	CloseModal()
	LoadProductToForm(p catalog.Product)

	OpenConfirmModal(target DeleteTarget)
	CloseConfirmModal()

	RenderProducts(products []catalog.Product)
	RenderPagination(p Pagination)
	ScrollToTop()
}

// ModalState tracks the product form modal
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpeningForCreate
	ModalOpeningForEdit // product fetch in flight
	ModalOpenCreate
	ModalOpenEdit
)

func (m ModalState) String() string {
	switch m {
	case ModalClosed:
		return "closed"
	case ModalOpeningForCreate:
		return "opening-for-create"
	case ModalOpeningForEdit:
		return "opening-for-edit"
	case ModalOpenCreate:
		return "open-create"
	case ModalOpenEdit:
		return "open-edit"
	default:
		return fmt.Sprintf("ModalState(%d)", int(m))
	}
}

// IsOpen reports whether the form is visible
func (m ModalState) IsOpen() bool {
	return m == ModalOpenCreate || m == ModalOpenEdit
}

// Snapshot is a copy of the Controller's state for front-ends and tests
type Snapshot struct {
	State         State
	Modal         ModalState
	PendingDelete *DeleteTarget
}

// Controller owns the application state and turns user intents into API
// calls and renders. The mutex guards state only and is never held while a
// request is in flight.
type Controller struct {
	api        ProductAPI
	view       Renderer
	fetchLimit int

	mu            sync.Mutex
	state         State
	modal         ModalState
	pendingDelete *DeleteTarget
}

// NewController creates a Controller with an empty product list
func NewController(api ProductAPI, view Renderer) *Controller {
	return &Controller{
		api:        api,
		view:       view,
		fetchLimit: catalog.BulkFetchLimit,
		state:      NewState(),
	}
}

// SetFetchLimit changes how many products each Load requests
func (c *Controller) SetFetchLimit(n int) {
	if n > 0 {
		c.fetchLimit = n
	}
}

// Load fetches the whole catalog, re-applies the current filters and renders.
// The current page is kept when it still exists.
func (c *Controller) Load(ctx context.Context) error {
	c.view.ShowLoading(true)
	defer c.view.ShowLoading(false)

	page, err := c.api.List(ctx, 0, c.fetchLimit, 0)
	if err != nil {
		c.view.ShowError(MsgLoadProductsFailed + catalog.ShortMessage(err))
		logging.LogOperation("load", err)
		return fmt.Errorf("load products: %w", err)
	}

	if page.Total > len(page.Items) {
		logging.Warn("Catalog larger than bulk fetch limit, list is incomplete",
			zap.Int("total", page.Total),
			zap.Int("fetched", len(page.Items)),
		)
	}

	c.mu.Lock()
	c.state.AllProducts = append([]catalog.Product(nil), page.Items...)
	c.state.ApplyFilters()
	c.state.ClampPage()
	c.renderLocked()
	c.mu.Unlock()

	logging.LogOperation("load", nil, zap.Int("products", len(page.Items)))
	return nil
}

// SetFilterName filters by a case-insensitive name substring
func (c *Controller) SetFilterName(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.FilterName = strings.ToLower(text)
	c.refilterLocked()
}

// SetFilterID filters by exact id. Empty text removes the filter.
func (c *Controller) SetFilterID(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.FilterID = nil
	c.state.FilterIDInvalid = false
	if strings.TrimSpace(text) != "" {
		if id, ok := parseFilterID(text); ok {
			c.state.FilterID = &id
		} else {
			c.state.FilterIDInvalid = true
		}
	}
	c.refilterLocked()
}

// ClearFilters removes both filters
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.FilterName = ""
	c.state.FilterID = nil
	c.state.FilterIDInvalid = false
	c.refilterLocked()
}

// GoToPage moves to page p. Pages outside [1, TotalPages] are ignored and
// false is returned.
func (c *Controller) GoToPage(p int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p < 1 || p > c.state.TotalPages() {
		return false
	}
	c.state.CurrentPage = p
	c.renderLocked()
	c.view.ScrollToTop()
	return true
}

// OpenNewProductModal opens a blank form in create mode
func (c *Controller) OpenNewProductModal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.EditingID = nil
	c.modal = ModalOpeningForCreate
	c.view.CloseModal()
	c.view.OpenModal()
	c.modal = ModalOpenCreate
}

// EditProduct fetches a product and opens it in the form.
// If the fetch fails the modal stays closed.
func (c *Controller) EditProduct(ctx context.Context, id int) error {
	c.mu.Lock()
	c.state.EditingID = &id
	c.modal = ModalOpeningForEdit
	c.mu.Unlock()

	c.view.ShowLoading(true)
	defer c.view.ShowLoading(false)

	product, err := c.api.Get(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The user may have closed or re-targeted the modal while the fetch ran
	stale := c.modal != ModalOpeningForEdit || c.state.EditingID == nil || *c.state.EditingID != id

	if err != nil {
		if !stale {
			c.modal = ModalClosed
			c.state.EditingID = nil
		}
		c.view.ShowError(MsgLoadProductFailed + catalog.ShortMessage(err))
		logging.LogOperation("edit", err, zap.Int("product_id", id))
		return fmt.Errorf("load product %d: %w", id, err)
	}
	if stale {
		return nil
	}

	c.view.LoadProductToForm(*product)
	c.view.OpenModal()
	c.modal = ModalOpenEdit
	return nil
}

// CloseModal closes the form (cancel or backdrop click)
func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModalLocked()
}

// SubmitForm validates the form and creates or updates the product.
// Invalid data is reported without any request being sent. On success the
// modal closes and the catalog is reloaded.
func (c *Controller) SubmitForm(ctx context.Context, data FormData) error {
	input := data.Input()
	if errs := catalog.ValidateProductInput(input); len(errs) > 0 {
		message := catalog.JoinValidationErrors(errs)
		c.view.ShowError(MsgInvalidForm + message)
		return catalog.NewValidationError(message)
	}

	c.mu.Lock()
	var editingID *int
	if c.state.EditingID != nil {
		id := *c.state.EditingID
		editingID = &id
	}
	c.mu.Unlock()

	c.view.ShowLoading(true)
	defer c.view.ShowLoading(false)

	var err error
	success := MsgCreated
	operation := "create"
	if editingID != nil {
		success = MsgUpdated
		operation = "update"
		_, err = c.api.Update(ctx, *editingID, input)
	} else {
		_, err = c.api.Create(ctx, input)
	}

	if err != nil {
		c.view.ShowError(MsgSaveFailed + catalog.ShortMessage(err))
		logging.LogOperation(operation, err)
		return fmt.Errorf("save product: %w", err)
	}
	logging.LogOperation(operation, nil, zap.String("sku", input.SKU))

	c.view.ShowSuccess(success)
	c.CloseModal()
	return c.reload(ctx)
}

// RequestDelete asks for confirmation before deleting a product
func (c *Controller) RequestDelete(id int, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := DeleteTarget{ID: id, Name: name}
	c.pendingDelete = &target
	c.view.OpenConfirmModal(target)
}

// ConfirmDelete deletes the pending product and reloads the catalog
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	target := c.pendingDelete
	c.pendingDelete = nil
	c.mu.Unlock()

	c.view.CloseConfirmModal()
	if target == nil {
		return ErrNoPendingDelete
	}

	c.view.ShowLoading(true)
	defer c.view.ShowLoading(false)

	if _, err := c.api.Delete(ctx, target.ID); err != nil {
		c.view.ShowError(MsgDeleteFailed + catalog.ShortMessage(err))
		logging.LogOperation("delete", err, zap.Int("product_id", target.ID))
		return fmt.Errorf("delete product %d: %w", target.ID, err)
	}
	logging.LogOperation("delete", nil, zap.Int("product_id", target.ID))

	c.view.ShowSuccess(MsgDeleted)
	return c.reload(ctx)
}

// reload refreshes the list after a change the API already accepted
func (c *Controller) reload(ctx context.Context) error {
	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	return nil
}

// CancelDelete drops the pending delete
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingDelete = nil
	c.view.CloseConfirmModal()
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State: c.state.clone(),
		Modal: c.modal,
	}
	if c.pendingDelete != nil {
		target := *c.pendingDelete
		snap.PendingDelete = &target
	}
	return snap
}

// Product returns the loaded product with the given id
func (c *Controller) Product(id int) (catalog.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.state.AllProducts {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func (c *Controller) refilterLocked() {
	c.state.CurrentPage = 1
	c.state.ApplyFilters()
	c.renderLocked()
}

func (c *Controller) closeModalLocked() {
	c.modal = ModalClosed
	c.state.EditingID = nil
	c.view.CloseModal()
}

func (c *Controller) renderLocked() {
	c.view.RenderProducts(c.state.PageProducts())
	c.view.RenderPagination(BuildPagination(c.state.CurrentPage, c.state.TotalPages()))
}
