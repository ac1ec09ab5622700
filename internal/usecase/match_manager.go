package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

// Suggestion - engine verdict for an arbitrary board.
type Suggestion struct {
	Action   *tictactoe.Action
	Player   tictactoe.Mark
	Value    int
	Terminal bool
}

type MatchManager struct {
	logger    *slog.Logger
	matchRepo matchRepo
}

func NewMatchManager(logger *slog.Logger, matchRepo matchRepo) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match_manager"),

		matchRepo: matchRepo,
	}
}

// NewMatch - starts a human vs engine match. When the human takes O the engine opens.
func (that *MatchManager) NewMatch(ctx context.Context, humanMark tictactoe.Mark) (*entity.Match, error) {
	if humanMark != tictactoe.X && humanMark != tictactoe.O {
		return nil, fmt.Errorf("%w: human must play X or O", tictactoe.ErrUnknownMark)
	}

	match := entity.NewMatch(uuid.NewString(), entity.WithBotMode, humanMark)

	if !match.IsHumanTurn() {
		if err := that.engineTurn(match); err != nil {
			return nil, err
		}
	}

	if err := that.saveMatch(ctx, match); err != nil {
		return nil, err
	}

	that.logger.Info("match created", "match_id", match.ID, "human", humanMark.String())

	return match, nil
}

func (that *MatchManager) GetMatch(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

func (that *MatchManager) DeleteMatch(ctx context.Context, id string) error {
	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	that.logger.Info("match deleted", "match_id", id)

	return nil
}

// MakeTurn - applies the human move and, if the game goes on, the engine reply.
func (that *MatchManager) MakeTurn(ctx context.Context, id string, action tictactoe.Action) (*entity.Match, error) {
	match, err := that.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = match.ConfirmOngoingState(); err != nil {
		return match, err
	}

	if !match.IsHumanTurn() {
		return match, apperror.ErrNotYourTurn
	}

	if err = match.Apply(action); err != nil {
		return match, fmt.Errorf("failed make turn: %w", err)
	}

	that.logMove(match, action, match.HumanMark)

	if match.IsOngoing() {
		if err = that.engineTurn(match); err != nil {
			return nil, err
		}
	}

	if err = that.saveMatch(ctx, match); err != nil {
		return nil, err
	}

	if match.IsFinished() {
		that.logger.Info("match finished", "match_id", match.ID, "winner", match.Winner)
	}

	return match, nil
}

// SelfPlay - engine against itself from the empty board to the end.
func (that *MatchManager) SelfPlay(ctx context.Context) (*entity.Match, error) {
	match := entity.NewMatch(uuid.NewString(), entity.SelfPlayMode, tictactoe.Empty)

	for match.IsOngoing() {
		if err := that.engineTurn(match); err != nil {
			return nil, err
		}
	}

	if err := that.saveMatch(ctx, match); err != nil {
		return nil, err
	}

	that.logger.Info("self-play finished", "match_id", match.ID, "winner", match.Winner)

	return match, nil
}

// Suggest - stateless best move for any board.
func (that *MatchManager) Suggest(board tictactoe.Board) Suggestion {
	suggestion := Suggestion{
		Player:   tictactoe.Player(board),
		Value:    tictactoe.Evaluate(board),
		Terminal: tictactoe.Terminal(board),
	}

	if action, ok := tictactoe.Minimax(board); ok {
		suggestion.Action = &action
	}

	return suggestion
}

func (that *MatchManager) engineTurn(match *entity.Match) error {
	mark := match.Turn()

	action, ok := tictactoe.Minimax(match.Board)
	if !ok {
		return apperror.ErrGameFinished
	}

	if err := match.Apply(action); err != nil {
		return fmt.Errorf("engine failed to make turn: %w", err)
	}

	that.logMove(match, action, mark)

	return nil
}

func (that *MatchManager) logMove(match *entity.Match, action tictactoe.Action, mark tictactoe.Mark) {
	that.logger.Debug("move played",
		"match_id", match.ID,
		"mark", mark.String(),
		"row", action.Row,
		"col", action.Col,
	)
}

func (that *MatchManager) saveMatch(ctx context.Context, match *entity.Match) error {
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}
