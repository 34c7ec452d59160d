package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/usecase"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

const maxRequestBodyBytes = 1 << 20

// LiveFeed attaches a websocket connection to a tournament room.
type LiveFeed interface {
	Serve(upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request, room string) error
}

type Services struct {
	Tournaments *usecase.TournamentService
	Standings   *usecase.StandingsService
	Roster      *usecase.RosterService
	Matches     *usecase.MatchService
	Ledger      *usecase.LedgerService
	Schedule    *usecase.ScheduleService
}

type Handler struct {
	tournamentService *usecase.TournamentService
	standingsService  *usecase.StandingsService
	rosterService     *usecase.RosterService
	matchService      *usecase.MatchService
	ledgerService     *usecase.LedgerService
	scheduleService   *usecase.ScheduleService
	live              LiveFeed
	upgrader          *websocket.Upgrader
	logger            *logging.Logger
	validator         *validator.Validate
}

// NewHandler builds the HTTP handlers. live may be nil, which disables the
// websocket feed.
func NewHandler(services Services, live LiveFeed, upgrader *websocket.Upgrader, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if upgrader == nil {
		upgrader = &websocket.Upgrader{}
	}

	return &Handler{
		tournamentService: services.Tournaments,
		standingsService:  services.Standings,
		rosterService:     services.Roster,
		matchService:      services.Matches,
		ledgerService:     services.Ledger,
		scheduleService:   services.Schedule,
		live:              live,
		upgrader:          upgrader,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

// fail logs the failure at a level matching its cause and writes the error
// envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, msg)
}
