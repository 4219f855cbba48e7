package catalog

import (
	"designmarket/internal/domain"
	"designmarket/internal/pkg/apperr"
)

var (
	ErrDesignNotFound   = apperr.New(apperr.ErrNotFound, "DESIGN_NOT_FOUND", "Design not found")
	ErrDesignerNotFound = apperr.New(apperr.ErrNotFound, "DESIGNER_NOT_FOUND", "Designer not found")
	ErrNotDesignOwner   = apperr.New(apperr.ErrPermissionDenied, "NOT_DESIGN_OWNER", "You don't own this design")
	ErrInvalidPrice     = apperr.Validation("price", "must be greater than 0")
	ErrPricePrecision   = apperr.Validation("price", "must have at most 2 decimal places")
	ErrPriceTooLarge    = apperr.Validation("price", "must not exceed 99999999.99")
)

var priceErrors = map[error]error{
	domain.ErrMoneyNotPositive: ErrInvalidPrice,
	domain.ErrMoneyPrecision:   ErrPricePrecision,
	domain.ErrMoneyTooLarge:    ErrPriceTooLarge,
}
