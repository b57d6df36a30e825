package handlers

import (
	"log/slog"
	"net/http"

	"github.com/doshyw/celeste-progression/pkg/catalog"
)

type AreaView struct {
	Chapter string   `json:"chapter"`
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	Sides   []string `json:"sides"`
}

type CatalogResponse struct {
	Game             string           `json:"game"`
	Areas            []AreaView       `json:"areas"`
	ItemNameToID     map[string]int64 `json:"item_name_to_id"`
	LocationNameToID map[string]int64 `json:"location_name_to_id"`
}

// CatalogHandler serves the whole-catalog identity tables hosts register
// before any player's options are known.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewCatalogHandler(cat *catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cat, logger: logger}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported at /v1/catalog.")
		return
	}

	areas := make([]AreaView, 0, len(h.catalog.Areas()))
	for _, a := range h.catalog.Areas() {
		view := AreaView{Chapter: a.Chapter.String(), Number: int(a.Chapter), Title: a.Title}
		for _, s := range a.Sides {
			view.Sides = append(view.Sides, s.String())
		}
		areas = append(areas, view)
	}

	writeJSON(w, h.logger, http.StatusOK, CatalogResponse{
		Game:             h.catalog.Game(),
		Areas:            areas,
		ItemNameToID:     h.catalog.ItemNameToID(),
		LocationNameToID: h.catalog.LocationNameToID(),
	})
}
