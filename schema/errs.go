package schema

import "errors"

var (
	ErrUnknownTransactionSet = errors.New("unknown transaction set")
	ErrBadSpec               = errors.New("bad loop specification")
)
