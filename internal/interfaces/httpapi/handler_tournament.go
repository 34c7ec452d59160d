package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/VeselinMar/TournamentManager/internal/usecase"
)

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTournamentRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Create(ctx, usecase.CreateTournamentInput{
		OwnerID: principal.UserID,
		Name:    req.Name,
	})
	if err != nil {
		h.fail(ctx, w, "create tournament failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(item))
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament", slugAttr(slug))
	defer span.End()

	item, err := h.tournamentService.Get(ctx, slug)
	if err != nil {
		h.fail(ctx, w, "get tournament failed", err, "slug", slug)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournament", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateTournamentRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Update(ctx, usecase.UpdateTournamentInput{
		OwnerID:    principal.UserID,
		Slug:       slug,
		Name:       req.Name,
		IsFinished: req.IsFinished,
	})
	if err != nil {
		h.fail(ctx, w, "update tournament failed", err, "slug", slug, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) ListMyTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTournaments")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	mine, err := h.tournamentService.ListMine(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "list my tournaments failed", err, "user_id", principal.UserID)
		return
	}

	items := make([]tournamentDTO, 0, len(mine.Items))
	for _, item := range mine.Items {
		dto := tournamentToDTO(item)
		dto.IsActive = item.ID == mine.ActiveID
		items = append(items, dto)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.tournamentService.Overview(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "owner overview failed", err, "user_id", principal.UserID)
		return
	}

	items := make([]overviewDTO, 0, len(overview))
	for _, item := range overview {
		items = append(items, overviewToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings", slugAttr(slug))
	defer span.End()

	top := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("top")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, invalidInput("top must be a non-negative integer"))
			return
		}
		top = parsed
	}

	table, err := h.standingsService.Get(ctx, slug, top)
	if err != nil {
		h.fail(ctx, w, "get standings failed", err, "slug", slug)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(table))
}
