package store

import "LulaiPlatform/pkg/response"

var (
	ErrProductNotFound   = response.NewError(404, "product not found")
	ErrMissingSession    = response.NewError(400, "missing session id")
	ErrProductInactive   = response.NewError(400, "product is not available")
	ErrInsufficientStock = response.NewError(409, "insufficient stock")
	ErrCartItemNotFound  = response.NewError(404, "cart item not found")
	ErrCartEmpty         = response.NewError(400, "cart is empty")
	ErrOrderNotFound     = response.NewError(404, "order not found")
	ErrPaymentFailed     = response.NewError(502, "failed to create payment")
	ErrInvalidFileType   = response.NewError(400, "invalid file type")
	ErrFailedToUpload    = response.NewError(502, "failed to upload file")
)
