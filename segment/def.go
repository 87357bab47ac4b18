package segment

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Def describes the elements of one segment tag.
type Def struct {
	Tag      string     `yaml:"tag"`
	Name     string     `yaml:"name"`
	Elements []*ElemDef `yaml:"elements"`
}

// ElemDef describes one data element. Min and Max bound the length of a
// scalar value; zero means unbounded. Codes, when set, lists the only
// allowed values.
type ElemDef struct {
	Ref       string   `yaml:"ref"`
	Name      string   `yaml:"name"`
	Required  bool     `yaml:"req"`
	Min       int      `yaml:"min"`
	Max       int      `yaml:"max"`
	Codes     []string `yaml:"codes"`
	Composite bool     `yaml:"composite"`
}

//go:embed defs.yaml
var defsYAML []byte

var builtinDefs = mustLoadDefs(defsYAML)

// LoadDefs reads a YAML list of segment definitions.
func LoadDefs(d []byte) (map[string]*Def, error) {
	var defs []*Def
	if err := yaml.Unmarshal(d, &defs); err != nil {
		return nil, err
	}
	res := make(map[string]*Def, len(defs))
	for _, def := range defs {
		if def.Tag == "" {
			return nil, fmt.Errorf("segment definition without tag")
		}
		if _, dup := res[def.Tag]; dup {
			return nil, fmt.Errorf("duplicate segment definition %s", def.Tag)
		}
		for i, ed := range def.Elements {
			if ed.Min > 0 && ed.Max > 0 && ed.Min > ed.Max {
				return nil, fmt.Errorf("%s%02d: min %d > max %d", def.Tag, i+1, ed.Min, ed.Max)
			}
		}
		res[def.Tag] = def
	}
	return res, nil
}

func mustLoadDefs(d []byte) map[string]*Def {
	defs, err := LoadDefs(d)
	if err != nil {
		panic(err)
	}
	return defs
}
