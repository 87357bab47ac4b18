package x12

import (
	"fmt"

	"github.com/signadot/x12-format/go-x12/ir"
	"github.com/signadot/x12-format/go-x12/segment"

	"github.com/expr-lang/expr"
)

// Match is a segment picked by Select.
type Match struct {
	Group   int
	Set     int
	Path    ir.Path
	Segment *segment.Segment
}

type selectEnv struct {
	Tag   string `expr:"tag"`
	Path  string `expr:"path"`
	Set   string `expr:"set"`
	Group int    `expr:"group"`
}

// Select returns the transaction set segments for which the boolean
// expression src holds. src sees tag, path, set (the ST01 identifier)
// and group (the group index), and may call el(i) for the value of
// element i and comp(i, j) for component j of element i.
func Select(t *ir.Transmission, src string) ([]Match, error) {
	var cur *segment.Segment
	prg, err := expr.Compile(src,
		expr.Env(selectEnv{}),
		expr.AsBool(),
		expr.Function("el", func(params ...any) (any, error) {
			return cur.Value(params[0].(int)), nil
		},
			new(func(int) string)),
		expr.Function("comp", func(params ...any) (any, error) {
			return cur.Get(params[0].(int)).Component(params[1].(int)), nil
		},
			new(func(int, int) string)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSelect, err)
	}
	var res []Match
	for gi, g := range t.Groups {
		for si, set := range g.Sets {
			env := selectEnv{Set: ir.SetID(set), Group: gi}
			err := set.Walk(func(s *segment.Segment, p ir.Path) error {
				cur = s
				env.Tag = s.Tag
				env.Path = p.String()
				out, err := expr.Run(prg, env)
				if err != nil {
					return fmt.Errorf("%w: at %s: %w", ErrSelect, p, err)
				}
				if ok, _ := out.(bool); ok {
					res = append(res, Match{Group: gi, Set: si, Path: p, Segment: s})
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}
