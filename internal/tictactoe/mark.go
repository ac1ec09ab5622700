package tictactoe

import (
	"errors"
	"fmt"
)

var ErrUnknownMark = errors.New("unknown mark")

// ParseMark - accepts "X", "O" and "" (empty cell).
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X":
		return X, nil
	case "O":
		return O, nil
	case "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownMark, s)
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	if that == Empty {
		return []byte{}, nil
	}

	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}
