package maze

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is returned when a move code cannot be decoded
var ErrInvalidMove = errors.New("invalid move")

// Move is one of the four axis directions
//
// Deltas (X is column, Y is row, Y grows downward):
//
//	Up    (0,-1)  keypad 8  key w  letter U
//	Down  (0,+1)  keypad 2  key s  letter D
//	Left  (-1,0)  keypad 4  key a  letter L
//	Right (+1,0)  keypad 6  key d  letter R
type Move uint8

const (
	Up Move = iota
	Down
	Left
	Right
)

// Moves is the move alphabet in canonical order
var Moves = []Move{Up, Down, Left, Right}

var moveDeltas = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

var moveKeypad = [4]int{8, 2, 4, 6}

var moveLetters = [4]byte{'U', 'D', 'L', 'R'}

// Valid reports whether m is one of the four directions
func (m Move) Valid() bool {
	return m <= Right
}

// Delta returns the unit step of m, the zero point for an invalid move
func (m Move) Delta() Point {
	if !m.Valid() {
		return Point{}
	}
	return moveDeltas[m]
}

// Keypad returns the numeric keypad code of m
func (m Move) Keypad() int {
	if !m.Valid() {
		return 0
	}
	return moveKeypad[m]
}

func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
	return string(moveLetters[m])
}

// FromKeypad decodes a numeric keypad code (8 up, 2 down, 4 left, 6 right)
func FromKeypad(code int) (Move, error) {
	for i, k := range moveKeypad {
		if k == code {
			return Move(i), nil
		}
	}
	return 0, fmt.Errorf("%w: keypad code %d", ErrInvalidMove, code)
}

// FromRune decodes a single move character: keypad digit, lower-case w/a/s/d or upper-case U/D/L/R
func FromRune(r rune) (Move, error) {
	switch r {
	case '8', 'w', 'U':
		return Up, nil
	case '2', 's', 'D':
		return Down, nil
	case '4', 'a', 'L':
		return Left, nil
	case '6', 'd', 'R':
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMove, r)
}

// ParseGenome decodes a move sequence written with any FromRune encoding
// Whitespace, commas and brackets are ignored so list literals can be pasted directly
func ParseGenome(s string) ([]Move, error) {
	moves := make([]Move, 0, len(s))
	for i, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', ',', '[', ']':
			continue
		}
		m, err := FromRune(r)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatGenome encodes moves as keypad digits
func FormatGenome(moves []Move) string {
	var sb strings.Builder
	sb.Grow(len(moves))
	for _, m := range moves {
		sb.WriteByte(byte('0' + m.Keypad()))
	}
	return sb.String()
}
