package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/nikolayk812/carrito/internal/cart"
	"github.com/nikolayk812/carrito/internal/port"
)

const (
	sessionCookie = "carrito_sid"
	keyPrefix     = "carrito:"
)

// sessionManager gives each browser session its own cart store, keyed
// by a uuid cookie. Stores are loaded from storage on first sight of a
// session and cached for the life of the process.
type sessionManager struct {
	mu      sync.Mutex
	storage port.CartStorage
	logger  *slog.Logger
	stores  map[string]*cart.Store
}

func newSessionManager(storage port.CartStorage, logger *slog.Logger) *sessionManager {
	return &sessionManager{
		storage: storage,
		logger:  logger,
		stores:  map[string]*cart.Store{},
	}
}

// store resolves the request's cart store, minting a session cookie
// when the browser does not have one yet.
func (m *sessionManager) store(w http.ResponseWriter, r *http.Request) (*cart.Store, error) {
	sid := ""
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if _, err := uuid.Parse(c.Value); err == nil {
			sid = c.Value
		}
	}

	if sid == "" {
		sid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.stores[sid]; ok {
		return st, nil
	}

	st, err := cart.Load(r.Context(), m.storage, keyPrefix+sid, m.logger)
	if err != nil {
		return nil, fmt.Errorf("cart.Load: %w", err)
	}

	m.stores[sid] = st
	return st, nil
}
