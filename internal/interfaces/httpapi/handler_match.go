package httpapi

import (
	"fmt"
	"net/http"

	"github.com/VeselinMar/TournamentManager/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches", slugAttr(slug))
	defer span.End()

	matches, err := h.matchService.List(ctx, slug)
	if err != nil {
		h.fail(ctx, w, "list matches failed", err, "slug", slug)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, item := range matches {
		items = append(items, matchViewToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	matchID := r.PathValue("matchID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch", slugAttr(slug))
	defer span.End()

	view, err := h.matchService.Get(ctx, slug, matchID)
	if err != nil {
		h.fail(ctx, w, "get match failed", err, "slug", slug, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchViewToDTO(view))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		OwnerID:    principal.UserID,
		Slug:       slug,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		FieldID:    req.FieldID,
		StartTime:  req.StartTime,
	})
	if err != nil {
		h.fail(ctx, w, "create match failed", err, "slug", slug)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchViewToDTO(view))
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	matchID := r.PathValue("matchID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEvent", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createEventRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ledgerService.CreateEvent(ctx, usecase.CreateEventInput{
		OwnerID:            principal.UserID,
		Slug:               slug,
		MatchID:            matchID,
		Type:               req.Type,
		Side:               usecase.TeamSide(req.TeamSide),
		PlayerID:           req.PlayerID,
		SubstitutePlayerID: req.SubstitutePlayerID,
		Minute:             *req.Minute,
	})
	if err != nil {
		h.fail(ctx, w, "create match event failed", err, "slug", slug, "match_id", matchID)
		return
	}

	event := eventToDTO(result.Event)
	event.Summary = result.Summary
	writeSuccess(ctx, w, http.StatusCreated, eventResultDTO{
		Event:     event,
		HomeScore: result.HomeScore,
		AwayScore: result.AwayScore,
	})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	eventID := r.PathValue("eventID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteEvent", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ledgerService.DeleteEvent(ctx, principal.UserID, slug, eventID)
	if err != nil {
		h.fail(ctx, w, "delete match event failed", err, "slug", slug, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreDTO{
		MatchID:   result.MatchID,
		HomeScore: result.HomeScore,
		AwayScore: result.AwayScore,
	})
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	matchID := r.PathValue("matchID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.ledgerService.FinishMatch(ctx, principal.UserID, slug, matchID)
	if err != nil {
		h.fail(ctx, w, "finish match failed", err, "slug", slug, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResultToDTO(item))
}

func (h *Handler) DelayMatch(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	matchID := r.PathValue("matchID")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DelayMatch", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req delayMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	moved, err := h.scheduleService.Delay(ctx, usecase.DelayMatchInput{
		OwnerID:      principal.UserID,
		Slug:         slug,
		MatchID:      matchID,
		NewStartTime: req.StartTime,
	})
	if err != nil {
		h.fail(ctx, w, "delay match failed", err, "slug", slug, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scheduleToDTO(moved))
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule", slugAttr(slug))
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req generateScheduleRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.scheduleService.Generate(ctx, usecase.GenerateScheduleInput{
		OwnerID:              principal.UserID,
		Slug:                 slug,
		StartTime:            req.StartTime,
		GameDurationMinutes:  req.GameDurationMinutes,
		PauseDurationMinutes: req.PauseDurationMinutes,
	})
	if err != nil {
		h.fail(ctx, w, "generate schedule failed", err, "slug", slug)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, scheduleToDTO(created))
}

func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	ctx := r.Context()

	if h.live == nil {
		writeError(ctx, w, fmt.Errorf("%w: live feed is disabled", usecase.ErrNotFound))
		return
	}
	item, err := h.tournamentService.Get(ctx, slug)
	if err != nil {
		h.fail(ctx, w, "live feed subscription failed", err, "slug", slug)
		return
	}

	// After a failed upgrade the upgrader has already answered the client.
	if err := h.live.Serve(h.upgrader, w, r, item.Slug); err != nil {
		h.logger.WarnContext(ctx, "live feed upgrade failed", "slug", slug, "error", err)
	}
}
