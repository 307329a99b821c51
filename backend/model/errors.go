package model

import "errors"

// errNew turns an error code constant into a plain error. Handlers translate
// codes via the i18n package when they reach the API boundary.
func errNew(code string) error {
	return errors.New(code)
}
