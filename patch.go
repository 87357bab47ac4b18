package x12

import (
	"fmt"

	"github.com/signadot/x12-format/go-x12/debug"
	"github.com/signadot/x12-format/go-x12/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 6902 JSON patch to the tree form of t (see
// ir.Transmission.Tree) and rebuilds a transmission from the result.
// Control counts in the patched tree need not be maintained, they are
// recomputed on Serialize.
func Patch(t *ir.Transmission, patch []byte) (*ir.Transmission, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	d, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if debug.Envelope() {
		debug.Logf("patch %d ops on %d bytes of tree\n", len(ops), len(d))
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return ir.FromTree(out)
}
