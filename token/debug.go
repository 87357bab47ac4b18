package token

import (
	"fmt"

	"github.com/signadot/x12-format/go-x12/debug"
)

func PrintTokens(toks []Token, msg string) {
	debug.Logf("%s %d tokens\n", msg, len(toks))
	for i := range toks {
		t := &toks[i]
		debug.Logf("\t%s %s\n", t.Info(), fmt.Sprintf("%q", t.Elements))
	}
}
