package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

// Kind groups error codes into the three families callers branch on.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindCoupon          Kind = "coupon"
	KindExternalService Kind = "external_service"
	KindRequest         Kind = "request"
	KindInternal        Kind = "internal"
)

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeThirdPartyError   = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeExternalService   = "EXTERNAL_SERVICE_ERROR"
	ErrCodeStockChanged      = "STOCK_CHANGED"
	ErrCodeQuantityRange     = "QUANTITY_OUT_OF_RANGE"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeUnselectable      = "LINE_UNSELECTABLE"
	ErrCodeProductInactive   = "PRODUCT_INACTIVE"
	ErrCodeLineNotFound      = "LINE_NOT_FOUND"
	ErrCodeEmptySelection    = "EMPTY_SELECTION"
	ErrCodeIntentStale       = "INTENT_STALE"

	ErrCodeCouponNotFound        = "COUPON_NOT_FOUND"
	ErrCodeCouponExpired         = "COUPON_EXPIRED"
	ErrCodeCouponUsageExhausted  = "COUPON_USAGE_EXHAUSTED"
	ErrCodeCouponMinOrderNotMet  = "COUPON_MIN_ORDER_NOT_MET"
	ErrCodeCouponMinQuantity     = "COUPON_MIN_QUANTITY_NOT_MET"
	ErrCodeCouponCategory        = "COUPON_CATEGORY_MISMATCH"
	ErrCodeCouponSuperseded      = "COUPON_SUPERSEDED"
	ErrCodeCouponInvalidArgument = "COUPON_CODE_REQUIRED"
)

var kinds = map[string]Kind{
	ErrCodeValidation:        KindValidation,
	ErrCodeQuantityRange:     KindValidation,
	ErrCodeInsufficientStock: KindValidation,
	ErrCodeUnselectable:      KindValidation,
	ErrCodeProductInactive:   KindValidation,
	ErrCodeLineNotFound:      KindValidation,
	ErrCodeEmptySelection:    KindValidation,
	ErrCodeIntentStale:       KindValidation,

	ErrCodeCouponNotFound:        KindCoupon,
	ErrCodeCouponExpired:         KindCoupon,
	ErrCodeCouponUsageExhausted:  KindCoupon,
	ErrCodeCouponMinOrderNotMet:  KindCoupon,
	ErrCodeCouponMinQuantity:     KindCoupon,
	ErrCodeCouponCategory:        KindCoupon,
	ErrCodeCouponSuperseded:      KindCoupon,
	ErrCodeCouponInvalidArgument: KindCoupon,

	ErrCodeExternalService: KindExternalService,
	ErrCodeStockChanged:    KindExternalService,
	ErrCodeDatabaseError:   KindExternalService,
	ErrCodeThirdPartyError: KindExternalService,

	ErrCodeBadRequest:      KindRequest,
	ErrCodeNotFound:        KindRequest,
	ErrCodeUnauthorized:    KindRequest,
	ErrCodeForbidden:       KindRequest,
	ErrCodeTooManyRequests: KindRequest,
}

// KindOf classifies an error code; unknown codes are internal.
func KindOf(code string) Kind {
	if k, ok := kinds[code]; ok {
		return k
	}

	return KindInternal
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusBadGateway)
}

func ExternalServiceError(message string) *AppError {
	return NewAppError(ErrCodeExternalService, message, http.StatusBadGateway)
}

func StockChangedError(message string) *AppError {
	return NewAppError(ErrCodeStockChanged, message, http.StatusConflict)
}

// cart & checkout validation

func QuantityOutOfRangeError(quantity int) *AppError {
	return NewAppError(ErrCodeQuantityRange, "Quantity must be at least 1", http.StatusBadRequest).
		WithDetail(fmt.Sprintf("requested quantity %d", quantity))
}

func InsufficientStockError(quantity, stock int) *AppError {
	return NewAppError(ErrCodeInsufficientStock, "Not enough stock for the requested quantity", http.StatusConflict).
		WithDetail(fmt.Sprintf("requested %d, available %d", quantity, stock))
}

func UnselectableError(cartID string) *AppError {
	return NewAppError(ErrCodeUnselectable, "This item is unavailable and cannot be selected", http.StatusUnprocessableEntity).
		WithDetail(cartID)
}

func ProductInactiveError(cartID string) *AppError {
	return NewAppError(ErrCodeProductInactive, "This product is no longer available", http.StatusUnprocessableEntity).
		WithDetail(cartID)
}

func LineNotFoundError(cartID string) *AppError {
	return NewAppError(ErrCodeLineNotFound, "Item not found in the cart", http.StatusNotFound).
		WithDetail(cartID)
}

func EmptySelectionError() *AppError {
	return NewAppError(ErrCodeEmptySelection, "Select at least one item to check out", http.StatusBadRequest)
}

func IntentStaleError() *AppError {
	return NewAppError(ErrCodeIntentStale, "Your cart changed since checkout started, please review it again", http.StatusConflict)
}

// coupon reasons

func CouponNotFoundError(code string) *AppError {
	return NewAppError(ErrCodeCouponNotFound, "Coupon code does not exist or is no longer active", http.StatusNotFound).
		WithDetail(code)
}

func CouponExpiredError(code string) *AppError {
	return NewAppError(ErrCodeCouponExpired, "Coupon has expired", http.StatusUnprocessableEntity).
		WithDetail(code)
}

func CouponUsageExhaustedError(code string) *AppError {
	return NewAppError(ErrCodeCouponUsageExhausted, "Coupon has no uses left", http.StatusUnprocessableEntity).
		WithDetail(code)
}

func CouponMinOrderNotMetError(minOrder string) *AppError {
	return NewAppError(ErrCodeCouponMinOrderNotMet, "Order value is below the coupon minimum", http.StatusUnprocessableEntity).
		WithDetail("minimum order value " + minOrder)
}

func CouponMinQuantityNotMetError(minimum int) *AppError {
	return NewAppError(ErrCodeCouponMinQuantity, "Not enough items selected for this coupon", http.StatusUnprocessableEntity).
		WithDetail(fmt.Sprintf("select at least %d items", minimum))
}

func CouponCategoryMismatchError(code string) *AppError {
	return NewAppError(ErrCodeCouponCategory, "Coupon does not apply to the selected items", http.StatusUnprocessableEntity).
		WithDetail(code)
}

func CouponSupersededError(code string) *AppError {
	return NewAppError(ErrCodeCouponSuperseded, "A newer coupon request replaced this one", http.StatusConflict).
		WithDetail(code)
}

func CouponCodeRequiredError() *AppError {
	return NewAppError(ErrCodeCouponInvalidArgument, "Coupon code is required", http.StatusBadRequest)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == code
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
