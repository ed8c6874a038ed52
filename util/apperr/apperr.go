// Package apperr holds the business-rule error codes shared by the services.
package apperr

import "errors"

type ErrCode string

const (
	ErrUnauthorized       ErrCode = "UNAUTHORIZED"
	ErrForbidden          ErrCode = "FORBIDDEN"
	ErrInvalidState       ErrCode = "INVALID_STATE"
	ErrInvalidInput       ErrCode = "INVALID_INPUT"
	ErrSelfTransaction    ErrCode = "SELF_TRANSACTION"
	ErrSelfCredit         ErrCode = "SELF_CREDIT"
	ErrSelfChat           ErrCode = "SELF_CHAT"
	ErrNotEntitled        ErrCode = "NOT_ENTITLED"
	ErrAlreadyCredited    ErrCode = "ALREADY_CREDITED"
	ErrAlreadyUnavailable ErrCode = "ALREADY_UNAVAILABLE"
	ErrEmptyCart          ErrCode = "EMPTY_CART"
	ErrNotFound           ErrCode = "NOT_FOUND"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg == "" {
		return string(e.code)
	}
	return string(e.code) + ": " + e.msg
}

func (e codedError) Code() ErrCode { return e.code }

// Is lets errors.Is match on the code alone.
func (e codedError) Is(target error) bool {
	t, ok := target.(codedError)
	return ok && t.code == e.code
}

func New(c ErrCode) error { return codedError{code: c} }

// Newf attaches a human readable detail to the code.
func Newf(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the error code, or "" for infrastructure errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
