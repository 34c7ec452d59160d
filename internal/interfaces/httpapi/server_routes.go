package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments/{slug}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{slug}/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/tournaments/{slug}/fields", handler.ListFields)
	mux.HandleFunc("GET /v1/tournaments/{slug}/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/tournaments/{slug}/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/tournaments/{slug}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/tournaments/{slug}/live", handler.Live)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTournamentRoutes(mux, handler, verifier)
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
}

func registerAuthorizedTournamentRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tournaments", RequireAuth(verifier, http.HandlerFunc(handler.CreateTournament)))
	mux.Handle("PATCH /v1/tournaments/{slug}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTournament)))
	mux.Handle("GET /v1/me/tournaments", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTournaments)))
	mux.Handle("GET /v1/me/overview", RequireAuth(verifier, http.HandlerFunc(handler.GetOverview)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tournaments/{slug}/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PATCH /v1/tournaments/{slug}/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("POST /v1/tournaments/{slug}/teams/{teamID}/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("POST /v1/tournaments/{slug}/roster", RequireAuth(verifier, http.HandlerFunc(handler.ImportRoster)))
	mux.Handle("POST /v1/tournaments/{slug}/fields", RequireAuth(verifier, http.HandlerFunc(handler.CreateField)))
	mux.Handle("DELETE /v1/tournaments/{slug}/fields/{fieldID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteField)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tournaments/{slug}/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /v1/tournaments/{slug}/matches/{matchID}/events", RequireAuth(verifier, http.HandlerFunc(handler.CreateEvent)))
	mux.Handle("DELETE /v1/tournaments/{slug}/events/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteEvent)))
	mux.Handle("POST /v1/tournaments/{slug}/matches/{matchID}/finish", RequireAuth(verifier, http.HandlerFunc(handler.FinishMatch)))
	mux.Handle("PUT /v1/tournaments/{slug}/matches/{matchID}/start-time", RequireAuth(verifier, http.HandlerFunc(handler.DelayMatch)))
	mux.Handle("POST /v1/tournaments/{slug}/schedule", RequireAuth(verifier, http.HandlerFunc(handler.GenerateSchedule)))
}
