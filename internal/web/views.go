package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/nikolayk812/carrito/internal/domain"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pageNames = []string{"catalog", "cart", "confirm"}

func parseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS,
			"templates/layout.gohtml",
			fmt.Sprintf("templates/%s.gohtml", name))
		if err != nil {
			return nil, fmt.Errorf("template.ParseFS[%s]: %w", name, err)
		}
		pages[name] = t
	}

	return pages, nil
}

type baseView struct {
	Title      string
	BadgeCount int
	Flash      *flashMessage
}

type catalogView struct {
	baseView
	Products   []productView
	LoadFailed bool
}

type productView struct {
	ID           int64
	Title        string
	Price        string
	PriceRaw     string
	ThumbnailURL string
}

type cartView struct {
	baseView
	Lines []lineView
	Total string
	Empty bool
}

type lineView struct {
	ProductID int64
	Title     string
	UnitPrice string
	Quantity  int
	Subtotal  string
}

type confirmView struct {
	baseView
	Prompt    string
	Detail    string
	Action    string
	CancelURL string
}

func productToView(p domain.ProductSummary) productView {
	return productView{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price.Display(),
		PriceRaw:     p.Price.Amount.String(),
		ThumbnailURL: p.ThumbnailURL,
	}
}

func cartToView(base baseView, c domain.Cart) cartView {
	v := cartView{
		baseView: base,
		Total:    c.Total().Display(),
		Empty:    c.Empty(),
	}
	for _, l := range c.Lines {
		v.Lines = append(v.Lines, lineView{
			ProductID: l.ProductID,
			Title:     l.Title,
			UnitPrice: l.UnitPrice.Display(),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal().Display(),
		})
	}
	return v
}

func (s *Server) render(w http.ResponseWriter, page string, data any) {
	t, ok := s.pages[page]
	if !ok {
		s.logger.Error("unknown page", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		s.logger.Error("template execute failed", "page", page, "err", err)
	}
}
