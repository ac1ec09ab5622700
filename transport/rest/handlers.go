package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type matchService interface {
	NewMatch(ctx context.Context, humanMark tictactoe.Mark) (*entity.Match, error)
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
	DeleteMatch(ctx context.Context, id string) error
	MakeTurn(ctx context.Context, id string, action tictactoe.Action) (*entity.Match, error)
	SelfPlay(ctx context.Context) (*entity.Match, error)
	Suggest(board tictactoe.Board) usecase.Suggestion
}

type minimaxRequest struct {
	Board [][]tictactoe.Mark `json:"board"`
}

type minimaxResponse struct {
	Action   *tictactoe.Action `json:"action"`
	Player   tictactoe.Mark    `json:"player"`
	Value    int               `json:"value"`
	Terminal bool              `json:"terminal"`
}

type createMatchRequest struct {
	Human tictactoe.Mark `json:"human"`
}

type matchResponse struct {
	*entity.Match
	Turn tictactoe.Mark `json:"turn"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger       *slog.Logger
	matchService matchService
}

func NewHandlers(logger *slog.Logger, matchService matchService) *Handlers {
	return &Handlers{
		logger:       logger.With("component", "rest"),
		matchService: matchService,
	}
}

func (that *Handlers) Minimax(w http.ResponseWriter, r *http.Request) {
	var req minimaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid board: " + err.Error()})
		return
	}

	board, err := tictactoe.BoardFromRows(req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	suggestion := that.matchService.Suggest(board)

	that.writeJSON(w, http.StatusOK, minimaxResponse{
		Action:   suggestion.Action,
		Player:   suggestion.Player,
		Value:    suggestion.Value,
		Terminal: suggestion.Terminal,
	})
}

func (that *Handlers) CreateMatch(w http.ResponseWriter, r *http.Request) {
	req := createMatchRequest{Human: tictactoe.X}
	// empty body keeps the default seat
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	match, err := that.matchService.NewMatch(r.Context(), req.Human)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newMatchResponse(match))
}

func (that *Handlers) SelfPlay(w http.ResponseWriter, r *http.Request) {
	match, err := that.matchService.SelfPlay(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newMatchResponse(match))
}

func (that *Handlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := that.matchService.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newMatchResponse(match))
}

func (that *Handlers) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := that.matchService.DeleteMatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var action tictactoe.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid action: " + err.Error()})
		return
	}

	match, err := that.matchService.MakeTurn(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newMatchResponse(match))
}

func newMatchResponse(match *entity.Match) matchResponse {
	return matchResponse{Match: match, Turn: match.Turn()}
}

func (that *Handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, tictactoe.ErrUnknownMark),
		errors.Is(err, tictactoe.ErrInvalidBoard):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrMatchNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrGameFinished):
		status = http.StatusConflict
	default:
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("could not encode response", "error", err)
	}
}
