package services

import "errors"

var (
	ErrMissingAPIKey    = errors.New("missing api key")
	ErrInvalidAPIKey    = errors.New("invalid api key")
	ErrNoStatsCollected = errors.New("no stats collected")
	ErrInternal         = errors.New("internal error")
)
