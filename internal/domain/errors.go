package domain

import "errors"

var (
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrRecordNotFound         = errors.New("record not found")
	ErrEditConflict           = errors.New("edit conflict")
	ErrAuthRequired           = errors.New("authentication required")
	ErrPersistence            = errors.New("booking could not be persisted")
	ErrDraftNotFound          = errors.New("booking draft not found")
	ErrNoActiveDraft          = errors.New("there is no active booking to pay for")
	ErrIncompleteSelection    = errors.New("please select date, hall, and showtime")
	ErrInvalidSeatCount       = errors.New("seat count must be between 1 and 10")
	ErrSubmissionInProgress   = errors.New("a payment for this booking is already in progress")
	ErrFlowCompleted          = errors.New("this booking has already been completed")
	ErrPaymentAlreadyResolved = errors.New("payment status has already been resolved")
	ErrPaymentDeclined        = errors.New("payment was declined by the gateway")
)
