package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nikolayk812/carrito/internal/cart"
	"github.com/nikolayk812/carrito/internal/domain"
	"github.com/nikolayk812/carrito/internal/port"
)

// Server is the presentation layer: it renders the catalog and cart
// pages and maps form submissions onto cart store mutations. Dialogs
// of the browser original (confirm/alert) become confirmation pages
// and one-shot flash notifications.
type Server struct {
	catalog  port.Catalog
	sessions *sessionManager
	logger   *slog.Logger
	pages    map[string]*template.Template
}

func New(catalog port.Catalog, storage port.CartStorage, logger *slog.Logger) (*Server, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if storage == nil {
		return nil, fmt.Errorf("storage is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	pages, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parseTemplates: %w", err)
	}

	return &Server{
		catalog:  catalog,
		sessions: newSessionManager(storage, logger),
		logger:   logger,
		pages:    pages,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	mux.HandleFunc("GET /{$}", s.handleCatalog)
	mux.HandleFunc("POST /cart/items", s.handleAddItem)
	mux.HandleFunc("GET /cart", s.handleCart)
	mux.HandleFunc("POST /cart/items/{id}/quantity", s.handleQuantity)
	mux.HandleFunc("GET /cart/items/{id}/remove", s.handleRemoveConfirm)
	mux.HandleFunc("POST /cart/items/{id}/remove", s.handleRemove)
	mux.HandleFunc("GET /checkout", s.handleCheckoutConfirm)
	mux.HandleFunc("POST /checkout", s.handleCheckout)

	return mux
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	view := catalogView{
		baseView: s.base(w, r, "Products", st),
	}

	products, err := s.catalog.Products(r.Context())
	if err != nil {
		s.logger.Warn("catalog fetch failed", slog.Any("err", err))
		view.LoadFailed = true
	}
	for _, p := range products {
		view.Products = append(view.Products, productToView(p))
	}

	s.render(w, "catalog", view)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil {
		setFlash(w, "warning", "That product could not be added.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	title := r.PostFormValue("title")

	price, err := decimal.NewFromString(r.PostFormValue("price"))
	if err != nil {
		setFlash(w, "warning", "That product could not be added.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	_, added, err := st.AddItem(r.Context(), id, title, domain.USD(price))
	switch {
	case err == nil && added:
		setFlash(w, "success", fmt.Sprintf("%q added to your cart.", title))
	case err == nil:
		setFlash(w, "info", fmt.Sprintf("Quantity of %q updated in your cart.", title))
	default:
		s.notifyFailure(w, err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	s.render(w, "cart", cartToView(s.base(w, r, "Your cart", st), st.Cart()))
}

func (s *Server) handleQuantity(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
	if err != nil || quantity < 0 {
		// Discard the invalid edit; the redirect re-renders from the store.
		setFlash(w, "warning", "Quantity must be a positive whole number.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	// Zero is removal intent, routed through the confirmation page.
	if quantity == 0 {
		http.Redirect(w, r, fmt.Sprintf("/cart/items/%d/remove", id), http.StatusSeeOther)
		return
	}

	_, err = st.SetQuantity(r.Context(), id, quantity)
	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		setFlash(w, "warning", "That product is no longer in your cart.")
	case err != nil:
		s.notifyFailure(w, err)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleRemoveConfirm(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	c := st.Cart()
	i := c.Find(id)
	if i < 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	s.render(w, "confirm", confirmView{
		baseView:  s.base(w, r, "Remove product", st),
		Prompt:    fmt.Sprintf("Remove %q from your cart?", c.Lines[i].Title),
		Action:    fmt.Sprintf("/cart/items/%d/remove", id),
		CancelURL: "/cart",
	})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || r.PostFormValue("confirm") != "yes" {
		// Declined: nothing changes, the cart re-renders as it was.
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	title := "Product"
	c := st.Cart()
	if i := c.Find(id); i >= 0 {
		title = c.Lines[i].Title
	}

	if _, err := st.RemoveItem(r.Context(), id); err != nil {
		s.notifyFailure(w, err)
	} else {
		setFlash(w, "info", fmt.Sprintf("%q removed from your cart.", title))
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleCheckoutConfirm(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	if st.Cart().Empty() {
		setFlash(w, "warning", "Your cart is empty. There is nothing to buy.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	s.render(w, "confirm", confirmView{
		baseView:  s.base(w, r, "Checkout", st),
		Prompt:    "Confirm the purchase of the items in your cart?",
		Detail:    fmt.Sprintf("Total: %s", st.Total().Display()),
		Action:    "/checkout",
		CancelURL: "/cart",
	})
}

// handleCheckout clears the cart on confirmation. This deployment uses
// the clear-immediately variant: there is no hand-off to a separate
// payment page, the confirmed checkout is terminal.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	if st.Cart().Empty() {
		setFlash(w, "warning", "Your cart is empty. There is nothing to buy.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if _, err := st.Clear(r.Context()); err != nil {
		s.notifyFailure(w, err)
	} else {
		setFlash(w, "success", "Thanks for your purchase! Your order has been processed.")
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	st, err := s.sessions.store(w, r)
	if err != nil {
		s.logger.Error("session store failed", slog.Any("err", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

func (s *Server) base(w http.ResponseWriter, r *http.Request, title string, st *cart.Store) baseView {
	return baseView{
		Title:      title,
		BadgeCount: st.TotalItemCount(),
		Flash:      popFlash(w, r),
	}
}

// notifyFailure downgrades mutation errors to notifications. A persist
// failure keeps the in-memory state and warns instead of losing it.
func (s *Server) notifyFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, cart.ErrPersist) {
		s.logger.Warn("cart kept in memory only", slog.Any("err", err))
		setFlash(w, "warning", "Saved for this session only: cart storage is unavailable.")
		return
	}

	s.logger.Error("cart mutation failed", slog.Any("err", err))
	setFlash(w, "danger", "Something went wrong. Please try again.")
}
