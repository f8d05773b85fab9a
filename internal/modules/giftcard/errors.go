package giftcard

import "errors"

var (
	ErrGiftCardNotFound  = errors.New("gift card not found")
	ErrDuplicateCode     = errors.New("gift card code already exists")
	ErrCardNotActive     = errors.New("gift card is not active")
	ErrCardExpired       = errors.New("gift card has expired")
	ErrCardDepleted      = errors.New("gift card has no remaining balance")
	ErrCardRedeemed      = errors.New("gift card has redemptions and cannot be deleted")
	ErrInvalidAmount     = errors.New("initialAmount must be at least 1")
	ErrNegativeOrder     = errors.New("orderAmount must not be negative")
	ErrInvalidCustomerID = errors.New("customerId must be a valid UUID")
	ErrInvalidDate       = errors.New("expirationDate must be RFC 3339 or YYYY-MM-DD")
	ErrCodeGeneration    = errors.New("could not generate a unique gift card code")
)
