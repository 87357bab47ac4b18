package encode

import (
	"bytes"

	"github.com/signadot/x12-format/go-x12/ir"
)

func MustString(t *ir.Transmission, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(t, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
