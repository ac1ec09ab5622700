package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func newTestSession(input string, human tictactoe.Mark) (*Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSession(logger, strings.NewReader(input), out, human), out
}

func TestSession_Play(t *testing.T) {
	t.Run("Engine opens when the human plays O", func(t *testing.T) {
		// Given: a human as O who never answers
		session, out := newTestSession("", tictactoe.O)

		// When: playing
		board, err := session.Play(context.Background())

		// Then: the engine has made the first move before input ran out
		require.ErrorIs(t, err, io.EOF)
		assert.Len(t, tictactoe.Actions(board), 8)
		assert.Contains(t, out.String(), "Engine plays")
	})

	t.Run("Bad input and occupied cells are re-prompted", func(t *testing.T) {
		// Given: garbage, then an occupied cell, then nothing
		session, out := newTestSession("hello\n1 1\n1 1\n", tictactoe.X)

		// When: playing
		board, err := session.Play(context.Background())

		// Then: the first valid move is kept and both errors are reported
		require.ErrorIs(t, err, io.EOF)
		assert.Equal(t, tictactoe.X, board[1][1])
		assert.Contains(t, out.String(), ErrBadInput.Error())
		assert.Contains(t, out.String(), "already occupied")
	})

	t.Run("Human never beats the engine", func(t *testing.T) {
		// Given: a human who always takes the first free cell
		var input strings.Builder
		for i := 0; i < tictactoe.Size; i++ {
			for j := 0; j < tictactoe.Size; j++ {
				fmt.Fprintf(&input, "%d %d\n", i, j)
			}
		}
		session, out := newTestSession(input.String(), tictactoe.X)

		// When: playing to the end, skipping occupied cells via re-prompt
		board, err := session.Play(context.Background())

		// Then: the game ends and X did not win
		require.NoError(t, err)
		assert.True(t, tictactoe.Terminal(board))
		assert.NotEqual(t, tictactoe.X, tictactoe.Winner(board))
		assert.Contains(t, out.String(), "Game over")
	})
}

func TestSession_PlayCanceled(t *testing.T) {
	// Given: a human whose input never arrives
	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := NewSession(logger, reader, io.Discard, tictactoe.X)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		_, err := session.Play(ctx)
		errCh <- err
	}()

	// When: the context is canceled while the session waits for a move
	time.Sleep(50 * time.Millisecond)
	cancel()

	// Then: Play returns promptly with the cancellation
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("session kept waiting for input after cancel")
	}
}

func TestSession_PlayAlreadyCanceled(t *testing.T) {
	session, _ := newTestSession("1 1\n", tictactoe.X)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	board, err := session.Play(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, tictactoe.InitialState(), board)
}

func TestParseAction(t *testing.T) {
	action, err := parseAction(" 2, 0 ")
	require.NoError(t, err)
	assert.Equal(t, tictactoe.Action{Row: 2, Col: 0}, action)

	for _, line := range []string{"", "1", "a b", "1 2 3"} {
		_, err = parseAction(line)
		assert.ErrorIs(t, err, ErrBadInput, "line %q", line)
	}
}
