package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/muurk/catalog-admin/internal/admin"
	"github.com/muurk/catalog-admin/internal/catalog"
	"github.com/muurk/catalog-admin/internal/discovery"
	"github.com/muurk/catalog-admin/internal/logging"
	"github.com/muurk/catalog-admin/internal/version"
	"github.com/muurk/catalog-admin/internal/view"
)

// Default rate limit for mutating routes, per client address
const (
	DefaultRateLimit = rate.Limit(10)
	DefaultRateBurst = 20
)

// Config holds the web console configuration
type Config struct {
	Listen         string
	APIURL         string
	CurrencySymbol string

	// Advertise announces the console over mDNS
	Advertise bool
	Instance  string

	RateLimit rate.Limit
	RateBurst int

	ShutdownTimeout time.Duration
}

// Server is the browser front-end of the console. All tabs share one
// Controller and one Document.
type Server struct {
	cfg     Config
	ctrl    *admin.Controller
	doc     *view.Document
	hub     *Hub
	limiter *rateLimiter
	router  chi.Router

	mu         sync.Mutex
	filterName string
	filterID   string
}

// New creates the web console
func New(cfg Config, ctrl *admin.Controller, doc *view.Document) *Server {
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = catalog.DefaultCurrencySymbol
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = DefaultRateBurst
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Instance == "" {
		host, _ := os.Hostname()
		cfg.Instance = "catalog-admin"
		if host != "" {
			cfg.Instance += " on " + host
		}
	}

	s := &Server{
		cfg:     cfg,
		ctrl:    ctrl,
		doc:     doc,
		hub:     NewHub(doc),
		limiter: newRateLimiter(cfg.RateLimit, cfg.RateBurst),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the console
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket change feed
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(instrument)

	r.Get("/", s.renderPage)
	r.Get("/ws", s.hub.ServeWS)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.limiter.Middleware)

		r.Get("/filter", s.handleFilter)
		r.Get("/page/{n}", s.handlePage)
		r.Post("/filter/clear", s.handleClearFilters)
		r.Post("/products/new", s.handleNewProduct)
		r.Post("/products/{id}/edit", s.handleEditProduct)
		r.Post("/products/{id}/delete", s.handleDeleteProduct)
		r.Post("/products", s.handleSaveProduct)
		r.Post("/modal/close", s.handleCloseModal)
		r.Post("/confirm", s.handleConfirmDelete)
		r.Post("/confirm/cancel", s.handleCancelDelete)
	})

	return r
}

// ListenAndServe serves the console until ctx is done, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	if s.cfg.Advertise {
		if addr, ok := ln.Addr().(*net.TCPAddr); ok {
			adv, err := discovery.Advertise(s.cfg.Instance, addr.Port, map[string]string{
				"api":     s.cfg.APIURL,
				"version": version.Version,
			})
			if err != nil {
				logging.Warn("mDNS advertisement failed", zap.Error(err))
			} else {
				defer adv.Shutdown()
			}
		}
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("Web console listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("api", s.cfg.APIURL),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ln)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.Info("Shutting down web console...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		stopHub()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
			_ = srv.Close()
		}
		return nil
	}
}

func (s *Server) filters() (name, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterName, s.filterID
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleFilter updates only the filters present in the query, so a
// request carrying just id keeps the name filter
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Has("name") {
		name := query.Get("name")
		s.mu.Lock()
		s.filterName = name
		s.mu.Unlock()
		s.ctrl.SetFilterName(name)
	}
	if query.Has("id") {
		id := query.Get("id")
		s.mu.Lock()
		s.filterID = id
		s.mu.Unlock()
		s.ctrl.SetFilterID(id)
	}
	redirectHome(w, r)
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.filterName, s.filterID = "", ""
	s.mu.Unlock()

	s.ctrl.ClearFilters()
	redirectHome(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		http.Error(w, "invalid page number", http.StatusBadRequest)
		return
	}
	if s.ctrl.GoToPage(n) {
		http.Redirect(w, r, "/#top", http.StatusSeeOther)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleNewProduct(w http.ResponseWriter, r *http.Request) {
	s.ctrl.OpenNewProductModal()
	redirectHome(w, r)
}

func (s *Server) handleEditProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	if err := s.ctrl.EditProduct(r.Context(), id); err != nil {
		recordProductOperation("get", statusError)
	} else {
		recordProductOperation("get", statusSuccess)
	}
	redirectHome(w, r)
}

func (s *Server) handleCloseModal(w http.ResponseWriter, r *http.Request) {
	s.ctrl.CloseModal()
	redirectHome(w, r)
}

func (s *Server) handleSaveProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := admin.Form{
		ID:     r.PostFormValue("id"),
		Name:   r.PostFormValue("name"),
		SKU:    r.PostFormValue("sku"),
		Price:  r.PostFormValue("price"),
		Active: r.PostFormValue("active") != "",
	}
	s.doc.SetForm(form)

	operation := "create"
	if s.ctrl.Snapshot().State.EditingID != nil {
		operation = "update"
	}

	err := s.ctrl.SubmitForm(r.Context(), form.Data())
	switch {
	case err == nil, errors.Is(err, admin.ErrReloadFailed):
		recordProductOperation(operation, statusSuccess)
	case catalog.IsValidationError(err):
		recordProductOperation(operation, statusInvalid)
	default:
		recordProductOperation(operation, statusError)
	}
	redirectHome(w, r)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if p, found := s.ctrl.Product(id); found {
		name = p.Name
	}
	s.ctrl.RequestDelete(id, name)
	redirectHome(w, r)
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	err := s.ctrl.ConfirmDelete(r.Context())
	switch {
	case errors.Is(err, admin.ErrNoPendingDelete):
	case err != nil && !errors.Is(err, admin.ErrReloadFailed):
		recordProductOperation("delete", statusError)
	default:
		recordProductOperation("delete", statusSuccess)
	}
	redirectHome(w, r)
}

func (s *Server) handleCancelDelete(w http.ResponseWriter, r *http.Request) {
	s.ctrl.CancelDelete()
	redirectHome(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": version.Version,
		"api":     s.cfg.APIURL,
		"clients": s.hub.Clients(),
	})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
