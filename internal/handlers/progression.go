package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/doshyw/celeste-progression/internal/logger"
	"github.com/doshyw/celeste-progression/internal/middleware"
	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/options"
	"github.com/doshyw/celeste-progression/pkg/progression"
	"github.com/doshyw/celeste-progression/pkg/rules"
	"github.com/doshyw/celeste-progression/pkg/world"
)

// ProgressionRequest is one player's option set. Omitted options keep
// their defaults and an omitted player uses the server default.
type ProgressionRequest struct {
	Player  rules.PlayerID  `json:"player"`
	Options json.RawMessage `json:"options"`
}

type LocationView struct {
	Name       string `json:"name"`
	ID         int64  `json:"id"`
	AccessRule string `json:"access_rule"`
}

type ExitView struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Rule   string `json:"rule"`
}

type RegionView struct {
	Name      string         `json:"name"`
	Exits     []ExitView     `json:"exits,omitempty"`
	Locations []LocationView `json:"locations,omitempty"`
}

type PoolSummary struct {
	Total       int `json:"total"`
	Progression int `json:"progression"`
	Filler      int `json:"filler"`
}

type ProgressionResponse struct {
	Player           rules.PlayerID           `json:"player"`
	VictoryItem      string                   `json:"victory_item"`
	SlotData         map[string]any           `json:"slot_data"`
	Adjustments      []progression.Adjustment `json:"adjustments"`
	ItemNameGroups   map[string][]string      `json:"item_name_groups"`
	ItemNameToID     map[string]int64         `json:"item_name_to_id"`
	LocationNameToID map[string]int64         `json:"location_name_to_id"`
	Pool             PoolSummary              `json:"pool"`
	Regions          []RegionView             `json:"regions"`
}

// ProgressionHandler builds a player's full logic on demand.
// Routes:
// POST /v1/progression - Build regions, items and locations for one player
type ProgressionHandler struct {
	catalog       *catalog.Catalog
	defaultPlayer rules.PlayerID
	logger        *slog.Logger
}

func NewProgressionHandler(cat *catalog.Catalog, defaultPlayer rules.PlayerID, logger *slog.Logger) *ProgressionHandler {
	return &ProgressionHandler{
		catalog:       cat,
		defaultPlayer: defaultPlayer,
		logger:        logger,
	}
}

func (h *ProgressionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.WithRequestID(h.logger, middleware.RequestID(r.Context()))

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed for progression endpoint", "method", r.Method)
		writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported at /v1/progression.")
		return
	}

	var req ProgressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Invalid JSON in request body", "error", err)
		writeError(w, log, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Player == 0 {
		req.Player = h.defaultPlayer
	}

	opts := options.Defaults()
	if len(bytes.TrimSpace(req.Options)) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			log.Warn("Invalid options document", "error", err)
			writeError(w, log, http.StatusBadRequest, "Invalid options: "+err.Error())
			return
		}
	}
	if err := opts.Validate(); err != nil {
		log.Warn("Options out of range", "error", err)
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.build(req.Player, opts, log)
	if err != nil {
		if errors.Is(err, progression.ErrConfiguration) {
			log.Warn("Rejected progression configuration", "error", err)
			writeError(w, log, http.StatusBadRequest, err.Error())
			return
		}
		logger.WithError(log, err).Error("Failed to build progression", "player", req.Player)
		writeError(w, log, http.StatusInternalServerError, "Failed to build progression")
		return
	}

	log.Info("Built progression",
		"player", req.Player,
		"victory_item", resp.VictoryItem,
		"regions", len(resp.Regions),
		"adjustments", len(resp.Adjustments))
	writeJSON(w, log, http.StatusOK, resp)
}

func (h *ProgressionHandler) build(player rules.PlayerID, opts options.Options, log *slog.Logger) (*ProgressionResponse, error) {
	p, err := progression.New(h.catalog, opts, log)
	if err != nil {
		return nil, err
	}

	graph := world.NewGraph()
	regions, err := p.Regions(player, graph)
	if err != nil {
		return nil, err
	}
	pool, err := p.ItemPool(player, graph)
	if err != nil {
		return nil, err
	}
	itemIDs, err := p.ItemNameToID()
	if err != nil {
		return nil, err
	}
	locationIDs, err := p.LocationNameToID()
	if err != nil {
		return nil, err
	}
	groups, err := p.ItemNameGroups()
	if err != nil {
		return nil, err
	}
	slotData, err := p.SlotData()
	if err != nil {
		return nil, err
	}

	resp := &ProgressionResponse{
		Player:           player,
		VictoryItem:      p.VictoryItemName(),
		SlotData:         slotData,
		Adjustments:      p.Adjustments(),
		ItemNameGroups:   groups,
		ItemNameToID:     itemIDs,
		LocationNameToID: locationIDs,
		Regions:          make([]RegionView, 0, len(regions)),
	}
	if resp.Adjustments == nil {
		resp.Adjustments = []progression.Adjustment{}
	}

	for _, item := range pool {
		resp.Pool.Total++
		if item.Classification == world.Progression {
			resp.Pool.Progression++
		} else {
			resp.Pool.Filler++
		}
	}

	for _, region := range regions {
		resp.Regions = append(resp.Regions, regionView(region))
	}
	return resp, nil
}

func regionView(r *world.Region) RegionView {
	view := RegionView{Name: r.Name}
	for _, e := range r.Exits {
		rule := "always"
		if e.Rule != nil {
			rule = e.Rule.String()
		}
		view.Exits = append(view.Exits, ExitView{Name: e.Name, Target: e.Target.Name, Rule: rule})
	}
	for _, loc := range r.Locations {
		view.Locations = append(view.Locations, LocationView{Name: loc.Name, ID: loc.ID, AccessRule: loc.Rule.String()})
	}
	return view
}
