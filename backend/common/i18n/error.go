package i18n

import (
	"errors"
)

// I18nError is an error with a stable code and a localized message.
type I18nError struct {
	Code string
	Msg  string
	Err  error
}

func (e *I18nError) Error() string {
	return e.Msg
}

func (e *I18nError) ErrorCode() string {
	return e.Code
}

func (e *I18nError) Unwrap() error {
	return e.Err
}

// New creates a localized error for code.
func New(code string, lang string, args ...interface{}) *I18nError {
	msg := Translate(code, lang, args...)
	return &I18nError{
		Code: code,
		Msg:  msg,
		Err:  errors.New(msg),
	}
}

// Wrap attaches a localized code to an existing error.
func Wrap(err error, code string, lang string, args ...interface{}) *I18nError {
	msg := Translate(code, lang, args...)
	return &I18nError{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// IsErrorCode reports whether err carries the given code.
func IsErrorCode(err error, code string) bool {
	var i18nErr *I18nError
	if errors.As(err, &i18nErr) {
		return i18nErr.Code == code
	}
	return false
}
