package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrEmptyBatch   = errors.New("batch is empty")
	ErrBackpressure = errors.New("batch queue is full")
)
