package entity

import (
	"fmt"

	"github.com/playroomhq/playroom-backend/internal/apperror"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// WinCombos lists the eight winning lines: rows top to bottom, columns left
// to right, then the two diagonals. Outcome scans them in this order, so the
// first matching combo is the line that gets highlighted.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game holds the board and whose mark moves next. The outcome is never
// stored: it is recomputed from the board on demand, so it cannot drift.
type Game struct {
	Board [9]string `json:"board"`
	Turn  string    `json:"turn"`
}

// Outcome is the derived game status. Winner and Line are meaningful only
// when Status is StatusWon.
type Outcome struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
	Line   [3]int `json:"line"`
}

func NewGame() *Game {
	return &Game{
		Board: [9]string{},
		Turn:  PlayerX,
	}
}

// ApplyMove places the current turn's mark on cell and flips the turn.
// The move is rejected with no state change when the cell index is out of
// range, the game is already decided, or the cell is occupied.
func (that *Game) ApplyMove(cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Outcome().Status != StatusInProgress {
		return apperror.ErrGameFinished
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = that.Turn
	that.Turn = toggleMark(that.Turn)

	return nil
}

// Reset restores the empty board with X to move.
func (that *Game) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerX
}

// Outcome recomputes the game status from the board: the first uniform
// non-empty combo wins, a full board without one is a draw.
func (that *Game) Outcome() Outcome {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Status: StatusWon, Winner: a, Line: combo}
		}
	}

	for _, cell := range that.Board {
		if cell == EmptyCell {
			return Outcome{Status: StatusInProgress}
		}
	}

	return Outcome{Status: StatusDraw}
}

// IsCellInWinningLine reports whether cell belongs to the winning line.
// Always false while the game is in progress or drawn.
func (that *Game) IsCellInWinningLine(cell int) bool {
	outcome := that.Outcome()
	if outcome.Status != StatusWon {
		return false
	}

	for _, idx := range outcome.Line {
		if idx == cell {
			return true
		}
	}

	return false
}

func (that *Game) IsFinished() bool {
	return that.Outcome().Status != StatusInProgress
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
