package services

import "errors"

// Validation failures shared across league and bracket operations. Handlers
// map these onto HTTP status codes.
var (
	ErrLeagueNotFound  = errors.New("league not found")
	ErrBracketNotFound = errors.New("bracket not found")
	ErrNotLeagueAdmin  = errors.New("only the league admin may perform this operation")
	ErrLeagueEnded     = errors.New("league has ended")
	ErrRoundLocked     = errors.New("round is locked")
)
