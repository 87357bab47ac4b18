package encode

import (
	"errors"
	"fmt"
)

var (
	ErrEncoding        = errors.New("encoding error")
	ErrDelimiterInData = fmt.Errorf("%w: delimiter in data", ErrEncoding)
)
