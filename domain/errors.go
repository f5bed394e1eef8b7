package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// listing lifecycle errors
	ErrInvalidPrice        = errors.New("invalid price")
	ErrNotOwner            = errors.New("caller is not the asset owner")
	ErrNotApproved         = errors.New("marketplace is not approved to transfer the asset")
	ErrNotSeller           = errors.New("caller is not the listing seller")
	ErrNotActive           = errors.New("listing is not active")
	ErrInsufficientPayment = errors.New("payment is below listing price")
	ErrInvalidFee          = errors.New("fee percentage exceeds 100")
	ErrUnauthorized        = errors.New("caller is not the marketplace owner")
	ErrInsufficientFunds   = errors.New("insufficient funds")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
)
