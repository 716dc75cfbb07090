package services

import "errors"

var (
	ErrContentNotFound   = errors.New("freet not found")
	ErrInvalidCategory   = errors.New("invalid report category: must be offensive, sensitive, or misinformation")
	ErrUnauthenticated   = errors.New("you must be logged in")
	ErrDetectionExists   = errors.New("freet has already been evaluated")
	ErrDetectionNotFound = errors.New("freet has not been evaluated")
)
