package x12

import "errors"

var (
	ErrPatch  = errors.New("patch error")
	ErrSelect = errors.New("select error")
)
