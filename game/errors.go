package game

import "errors"

var (
	ErrMalformed      = errors.New("invalid JSON")
	ErrValidation     = errors.New("invalid request")
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotHost        = errors.New("only the host can perform this action")
	ErrUnknownType    = errors.New("unknown message type")
)
