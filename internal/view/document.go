package view

import (
	"sync"
	"time"

	"github.com/muurk/catalog-admin/internal/admin"
	"github.com/muurk/catalog-admin/internal/catalog"
)

const (
	// ErrorDuration is how long the error banner stays visible
	ErrorDuration = 5 * time.Second

	// SuccessDuration is how long the success banner stays visible
	SuccessDuration = 3 * time.Second
)

// Banner is a transient message. Visible is evaluated at snapshot time.
type Banner struct {
	Message string
	Visible bool
}

// Row is one rendered table row
type Row struct {
	ID     int
	Name   string
	SKU    string
	Price  string
	Status string
	Active bool
}

// ModalView is the product form modal
type ModalView struct {
	Open  bool
	Title string
	Form  admin.Form

	// Revision changes every time the form is reset or loaded, so front-ends
	// holding their own input widgets know when to reseed them.
	Revision uint64
}

// ConfirmView is the delete confirmation dialog
type ConfirmView struct {
	Open    bool
	Message string
	Target  admin.DeleteTarget
}

// Snapshot is everything a display surface needs to paint one frame
type Snapshot struct {
	Loading    bool
	Error      Banner
	Success    *Banner // nil until the first success message
	Modal      ModalView
	Confirm    ConfirmView
	Rows       []Row
	Empty      bool
	Pagination admin.Pagination
	ScrollSeq  uint64
	Revision   uint64
}

type banner struct {
	message string
	until   time.Time
	timer   *time.Timer
}

// Document is the rendered state of the console. It implements
// admin.Renderer and is safe for concurrent use.
type Document struct {
	mu  sync.Mutex
	now func() time.Time

	currencySymbol string

	loading    int
	errBanner  banner
	okBanner   *banner
	modal      ModalView
	confirm    ConfirmView
	rows       []Row
	rendered   bool
	pagination admin.Pagination
	scrollSeq  uint64
	revision   uint64

	subscribers []chan struct{}
}

var _ admin.Renderer = (*Document)(nil)

// NewDocument creates an empty document. An empty symbol means no prefix.
func NewDocument(currencySymbol string) *Document {
	d := &Document{
		now:            time.Now,
		currencySymbol: currencySymbol,
	}
	d.resetModalLocked()
	return d
}

// SetClock replaces the time source (tests)
func (d *Document) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

// Subscribe returns a channel that receives a value after every change.
// Changes are coalesced: a slow reader sees one pending notification.
func (d *Document) Subscribe() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch := make(chan struct{}, 1)
	d.subscribers = append(d.subscribers, ch)
	return ch
}

// Unsubscribe stops notifications on ch
func (d *Document) Unsubscribe(ch <-chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, sub := range d.subscribers {
		if sub == ch {
			d.subscribers = append(d.subscribers[:i], d.subscribers[i+1:]...)
			return
		}
	}
}

// ShowLoading turns the loading indicator on or off. Calls nest, so the
// indicator stays on until every operation that turned it on is done.
func (d *Document) ShowLoading(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if on {
		d.loading++
	} else if d.loading > 0 {
		d.loading--
	}
	d.changedLocked()
}

// ShowError shows msg in the error banner for ErrorDuration. A new message
// replaces the old one and restarts the window.
func (d *Document) ShowError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.showLocked(&d.errBanner, msg, ErrorDuration)
}

// ShowSuccess shows msg in the success banner for SuccessDuration.
// The banner is created on first use.
func (d *Document) ShowSuccess(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.okBanner == nil {
		d.okBanner = &banner{}
	}
	d.showLocked(d.okBanner, msg, SuccessDuration)
}

// OpenModal shows the product form with its current contents
func (d *Document) OpenModal() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.modal.Open = true
	d.changedLocked()
}

// CloseModal hides the form, resets its fields and hidden id and restores
// the "New Product" title.
func (d *Document) CloseModal() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.modal.Open = false
	d.resetModalLocked()
	d.changedLocked()
}

// LoadProductToForm fills the form from p and switches it to edit mode
func (d *Document) LoadProductToForm(p catalog.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.modal.Form = admin.FormFromProduct(p)
	d.modal.Title = admin.FormModeEdit.Title()
	d.modal.Revision++
	d.changedLocked()
}

// SetForm stores values typed by the user so a failed submit can redisplay them
func (d *Document) SetForm(f admin.Form) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.modal.Form = f
	d.modal.Title = f.Mode().Title()
	d.changedLocked()
}

// Form returns the current form values
func (d *Document) Form() admin.Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modal.Form
}

// OpenConfirmModal asks to confirm deleting target
func (d *Document) OpenConfirmModal(target admin.DeleteTarget) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.confirm = ConfirmView{
		Open:    true,
		Message: target.ConfirmMessage(),
		Target:  target,
	}
	d.changedLocked()
}

// CloseConfirmModal hides the confirmation dialog
func (d *Document) CloseConfirmModal() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.confirm.Open = false
	d.changedLocked()
}

// RenderProducts replaces the table rows. An empty slice shows the empty state.
func (d *Document) RenderProducts(products []catalog.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, d.rowLocked(p))
	}
	d.rows = rows
	d.rendered = true
	d.changedLocked()
}

// RenderPagination replaces the pagination bar
func (d *Document) RenderPagination(p admin.Pagination) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pagination = p
	d.changedLocked()
}

// ScrollToTop asks the display surface to scroll back to the top
func (d *Document) ScrollToTop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.scrollSeq++
	d.changedLocked()
}

// Snapshot returns a copy of the document for painting
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	snap := Snapshot{
		Loading:    d.loading > 0,
		Error:      d.errBanner.view(now),
		Modal:      d.modal,
		Confirm:    d.confirm,
		Rows:       append([]Row(nil), d.rows...),
		Empty:      d.rendered && len(d.rows) == 0,
		Pagination: d.pagination,
		ScrollSeq:  d.scrollSeq,
		Revision:   d.revision,
	}
	snap.Pagination.Items = append([]admin.PageItem(nil), d.pagination.Items...)
	if d.okBanner != nil {
		b := d.okBanner.view(now)
		snap.Success = &b
	}
	return snap
}

// FormatRow renders a product the way the table shows it
func FormatRow(symbol string, p catalog.Product) Row {
	return Row{
		ID:     p.ID,
		Name:   p.Name,
		SKU:    p.SKU,
		Price:  catalog.FormatMoney(symbol, p.Price),
		Status: catalog.StatusLabel(p.Active),
		Active: p.Active,
	}
}

func (d *Document) rowLocked(p catalog.Product) Row {
	return FormatRow(d.currencySymbol, p)
}

func (d *Document) resetModalLocked() {
	d.modal.Form = admin.NewForm()
	d.modal.Title = admin.FormModeCreate.Title()
	d.modal.Revision++
}

func (d *Document) showLocked(b *banner, msg string, duration time.Duration) {
	b.message = msg
	b.until = d.now().Add(duration)

	// Repaint when the banner expires so it disappears without user input
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(duration, d.expire)

	d.changedLocked()
}

func (d *Document) expire() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changedLocked()
}

func (d *Document) changedLocked() {
	d.revision++
	for _, ch := range d.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (b banner) view(now time.Time) Banner {
	return Banner{
		Message: b.message,
		Visible: b.message != "" && now.Before(b.until),
	}
}
