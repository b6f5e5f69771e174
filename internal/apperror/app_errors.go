package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrMessageTooLong  = errors.New("message text is too long")
	ErrMessageNotFound = errors.New("message index out of range")
	ErrUnknownReaction = errors.New("unknown reaction symbol")
)

var rejections = []error{
	ErrGameFinished,
	ErrCellOccupied,
	ErrInvalidCell,
	ErrEmptyMessage,
	ErrMessageTooLong,
	ErrMessageNotFound,
	ErrUnknownReaction,
}

// IsRejection reports whether err is a command rejection that the transport
// absorbs as a no-op. Everything else is an infrastructure fault.
func IsRejection(err error) bool {
	for _, rejection := range rejections {
		if errors.Is(err, rejection) {
			return true
		}
	}

	return false
}
