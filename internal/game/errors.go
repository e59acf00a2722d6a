package game

import "errors"

var (
	ErrNameTaken   = errors.New("username already taken in this room")
	ErrLobbyLocked = errors.New("lobby is locked, race in progress")
)
