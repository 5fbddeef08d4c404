package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownTeam     = errors.New("unknown team")
	ErrInvalidPick     = errors.New("character is not in the undrafted pool")
	ErrInvalidTeams    = errors.New("invalid team list")
	ErrTooManySessions = errors.New("session limit reached")
	ErrPoolInvariant   = errors.New("rosters and pool do not partition the universe")
	ErrPickIDConflict  = errors.New("pick id already used for a different pick")
	ErrCaptainRequired = errors.New("team must draft a captain")
	ErrSecondCaptain   = errors.New("team already has a captain")
)
