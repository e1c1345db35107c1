package services

import "errors"

// Lifecycle error taxonomy. Handlers map these onto HTTP status codes with
// errors.Is; everything except notification delivery aborts the operation
// and propagates to the caller.
var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMemberNotFound         = errors.New("member not found")
	ErrSeasonNotFound         = errors.New("season not found")
	ErrInvalidStateTransition = errors.New("match status does not allow this operation")
	ErrNotAParticipant        = errors.New("member is not a participant of this match")
	ErrNotOnRoster            = errors.New("member is not on the season roster")
)
