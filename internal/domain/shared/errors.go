package shared

import (
	"errors"
	"fmt"
)

// ResultCode is the machine-readable code attached to a recoverable game error.
// Clients map these onto the API result_code field.
type ResultCode int

const (
	ResultCodeSuccess ResultCode = 1

	ResultCodeCommonDataNotFound       ResultCode = 100
	ResultCodeCommonDataValidation     ResultCode = 101
	ResultCodeCommonMaterialShort      ResultCode = 104
	ResultCodeCommonRequestLimit       ResultCode = 110
	ResultCodeShopPaymentTypeInvalid   ResultCode = 209
	ResultCodeShopInsufficientFunds    ResultCode = 210
	ResultCodeFortBuildCarpenterBusy   ResultCode = 605
	ResultCodeFortExtendCarpenterLimit ResultCode = 606
	ResultCodeFortLevelMax             ResultCode = 607
)

var resultCodeNames = map[ResultCode]string{
	ResultCodeSuccess:                  "SUCCESS",
	ResultCodeCommonDataNotFound:       "COMMON_DATA_NOT_FOUND",
	ResultCodeCommonDataValidation:     "COMMON_DATA_VALIDATION_ERROR",
	ResultCodeCommonMaterialShort:      "COMMON_MATERIAL_SHORT",
	ResultCodeCommonRequestLimit:       "COMMON_REQUEST_LIMIT",
	ResultCodeShopPaymentTypeInvalid:   "SHOP_PAYMENT_TYPE_INVALID",
	ResultCodeShopInsufficientFunds:    "SHOP_INSUFFICIENT_FUNDS",
	ResultCodeFortBuildCarpenterBusy:   "FORT_BUILD_CARPENTER_BUSY",
	ResultCodeFortExtendCarpenterLimit: "FORT_EXTEND_CARPENTER_LIMIT",
	ResultCodeFortLevelMax:             "FORT_LEVEL_MAX",
}

func (c ResultCode) String() string {
	if name, ok := resultCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("RESULT_CODE_%d", int(c))
}

// DomainError is the base error type for all domain errors
type DomainError struct {
	Code    ResultCode
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any DomainError carrying the same code, so callers can write
// errors.Is(err, &shared.DomainError{Code: shared.ResultCodeFortBuildCarpenterBusy}).
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func NewDomainError(code ResultCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// CodeOf extracts the result code from err, returning false when err is not a domain error.
func CodeOf(err error) (ResultCode, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return 0, false
}

// HasCode reports whether err is a domain error carrying code.
func HasCode(err error, code ResultCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// ErrInvalidOperation marks a caller-contract violation: the request does not fit the
// current entity state. It carries no result code and indicates a client/server desync.
var ErrInvalidOperation = errors.New("invalid operation")

// NewInvalidOperationError wraps ErrInvalidOperation with a description.
func NewInvalidOperationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
