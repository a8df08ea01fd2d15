package search

import "errors"

// ErrInterrupted is returned by search/idsearch when the search was
// cancelled or timed out before completing. The caller's best-known move,
// if any, remains valid to play.
var ErrInterrupted = errors.New("search: interrupted")

// ErrLostPosition is returned when the searched position is already lost
// (the returned score is at or below -Mate).
var ErrLostPosition = errors.New("search: lost position")
