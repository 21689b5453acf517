package web

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "carrito_flash"

// flashMessage is a one-shot notification surviving a single redirect,
// the toast of a server-rendered app. Level is a bootstrap alert level:
// success, info, warning or danger.
type flashMessage struct {
	Level   string
	Message string
}

func setFlash(w http.ResponseWriter, level, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the pending notification, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *flashMessage {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}

	level, message, ok := strings.Cut(raw, "|")
	if !ok || message == "" {
		return nil
	}

	return &flashMessage{Level: level, Message: message}
}
