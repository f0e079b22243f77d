package services

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrNoPendingRequest     = errors.New("follow request not found")
	ErrNotFollowing         = errors.New("not following")
	ErrContentNotFound      = errors.New("content not found")
	ErrGiftNotFound         = errors.New("gift not found")
	ErrInsufficientCoins    = errors.New("insufficient coins")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrPaymentVerification  = errors.New("payment verification failed")
	ErrAlreadyExists        = errors.New("username or email already exists")
	ErrInvalidCredentials   = errors.New("invalid password")
	ErrPrivateAccount       = errors.New("account is private")
	ErrInvalidAction        = errors.New("invalid action")
	ErrFederatedUnavailable = errors.New("federated login not configured")
)
