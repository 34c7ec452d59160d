package httpapi

import (
	"net/http"

	"github.com/VeselinMar/TournamentManager/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams", slugAttr(slug))
	defer span.End()

	teams, err := h.rosterService.ListTeams(ctx, slug)
	if err != nil {
		h.fail(ctx, w, "list teams failed", err, "slug", slug)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, item := range teams {
		items = append(items, teamToDTO(item.Team, item.Players))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTeamRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.CreateTeam(ctx, usecase.CreateTeamInput{
		OwnerID: principal.UserID,
		Slug:    slug,
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		h.fail(ctx, w, "create team failed", err, "slug", slug)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item, nil))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	teamID := r.PathValue("teamID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateTeamRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.UpdateTeam(ctx, usecase.UpdateTeamInput{
		OwnerID: principal.UserID,
		Slug:    slug,
		TeamID:  teamID,
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		h.fail(ctx, w, "update team failed", err, "slug", slug, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item, nil))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	teamID := r.PathValue("teamID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		OwnerID: principal.UserID,
		Slug:    slug,
		TeamID:  teamID,
		Name:    req.Name,
	})
	if err != nil {
		h.fail(ctx, w, "create player failed", err, "slug", slug, "team_id", teamID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRoster", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req importRosterRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.ImportRoster(ctx, usecase.ImportRosterInput{
		OwnerID: principal.UserID,
		Slug:    slug,
		Text:    req.Text,
	})
	if err != nil {
		h.fail(ctx, w, "import roster failed", err, "slug", slug)
		return
	}

	out := rosterImportDTO{
		CreatedTeams:   result.CreatedTeams,
		CreatedPlayers: result.CreatedPlayers,
		Skipped:        make([]skippedLineDTO, 0, len(result.Skipped)),
	}
	for _, s := range result.Skipped {
		out.Skipped = append(out.Skipped, skippedLineDTO{Line: s.Line, Text: s.Text, Reason: s.Reason})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListFields(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFields", slugAttr(slug))
	defer span.End()

	fields, err := h.rosterService.ListFields(ctx, slug)
	if err != nil {
		h.fail(ctx, w, "list fields failed", err, "slug", slug)
		return
	}

	items := make([]fieldDTO, 0, len(fields))
	for _, item := range fields {
		items = append(items, fieldToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateField(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateField", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createFieldRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.CreateField(ctx, usecase.CreateFieldInput{
		OwnerID: principal.UserID,
		Slug:    slug,
		Name:    req.Name,
	})
	if err != nil {
		h.fail(ctx, w, "create field failed", err, "slug", slug)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fieldToDTO(item))
}

func (h *Handler) DeleteField(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	fieldID := r.PathValue("fieldID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteField", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.DeleteField(ctx, principal.UserID, slug, fieldID); err != nil {
		h.fail(ctx, w, "delete field failed", err, "slug", slug, "field_id", fieldID)
		return
	}

	writeNoContent(w)
}
