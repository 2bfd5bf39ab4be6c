package service

import "errors"

// Engine rejections. All are local and recoverable: the operation is refused
// with no mutation performed, and the handler surfaces the specific reason.
var (
	ErrNoOpenShift        = errors.New("no open shift for this organization")
	ErrShiftAlreadyOpen   = errors.New("a shift is already open for this organization")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientTender = errors.New("tendered amount does not cover the total")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderState  = errors.New("order is not in a state that allows this operation")
	ErrItemNotFound       = errors.New("item not found in catalog")
	ErrItemNotInCart      = errors.New("item not in cart")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrNotStockTracked    = errors.New("item does not track stock")
)
