package segment

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// field is one `x12:"NN[,width=W]"` tagged struct field.
type field struct {
	index int
	pos   int
	width int
}

func fieldsOf(ty reflect.Type) ([]field, error) {
	var res []field
	for i := range ty.NumField() {
		f := ty.Field(i)
		tag, ok := f.Tag.Lookup("x12")
		if !ok || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		pos, err := strconv.Atoi(parts[0])
		if err != nil || pos < 1 {
			return nil, fmt.Errorf("field %s: bad x12 position %q", f.Name, parts[0])
		}
		fd := field{index: i, pos: pos}
		for _, opt := range parts[1:] {
			k, v, _ := strings.Cut(opt, "=")
			switch k {
			case "width":
				fd.width, err = strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("field %s: bad width %q", f.Name, v)
				}
			default:
				return nil, fmt.Errorf("field %s: unknown x12 option %q", f.Name, k)
			}
		}
		res = append(res, fd)
	}
	return res, nil
}

func structOf(v any) (reflect.Value, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%T is not a struct", v)
	}
	return val, nil
}

// Unmarshal copies the elements of s into the x12 tagged fields of the
// struct pointed to by v. Supported field types are string, int,
// []string and Element. Fields with a width have trailing spaces
// trimmed.
func Unmarshal(s *Segment, v any) error {
	if reflect.ValueOf(v).Kind() != reflect.Pointer {
		return fmt.Errorf("unmarshal %s into non-pointer %T", s.Tag, v)
	}
	val, err := structOf(v)
	if err != nil {
		return err
	}
	fields, err := fieldsOf(val.Type())
	if err != nil {
		return err
	}
	for _, fd := range fields {
		e := s.Get(fd.pos)
		fv := val.Field(fd.index)
		switch fv.Interface().(type) {
		case Element:
			fv.Set(reflect.ValueOf(e.Clone()))
			continue
		case []string:
			fv.Set(reflect.ValueOf([]string(e.Clone())))
			continue
		}
		switch fv.Kind() {
		case reflect.String:
			str := e.Value()
			if fd.width > 0 {
				str = strings.TrimRight(str, " ")
			}
			fv.SetString(str)
		case reflect.Int:
			if e.Absent() {
				fv.SetInt(0)
				continue
			}
			n, err := strconv.Atoi(e.Value())
			if err != nil {
				return malformed(s.Tag, fd.pos, "%q is not a number", e.Value())
			}
			// counts are rewritten on output, so only the form they are
			// written in is read
			if strconv.Itoa(n) != e.Value() {
				return malformed(s.Tag, fd.pos, "%q is not written as %d", e.Value(), n)
			}
			fv.SetInt(int64(n))
		default:
			return fmt.Errorf("%s%02d: unsupported field type %s", s.Tag, fd.pos, fv.Type())
		}
	}
	return nil
}

// Marshal builds a segment with the given tag from the x12 tagged fields
// of v. String fields with a width are padded with spaces.
func Marshal(tag string, v any) (*Segment, error) {
	val, err := structOf(v)
	if err != nil {
		return nil, err
	}
	fields, err := fieldsOf(val.Type())
	if err != nil {
		return nil, err
	}
	s := &Segment{Tag: tag}
	for _, fd := range fields {
		fv := val.Field(fd.index)
		var e Element
		switch x := fv.Interface().(type) {
		case Element:
			e = x.Clone()
		case []string:
			e = Composite(x...)
		default:
			switch fv.Kind() {
			case reflect.String:
				str := fv.String()
				if fd.width > 0 && len(str) < fd.width {
					str += strings.Repeat(" ", fd.width-len(str))
				}
				e = Scalar(str)
			case reflect.Int:
				e = Scalar(strconv.Itoa(int(fv.Int())))
			default:
				return nil, fmt.Errorf("%s%02d: unsupported field type %s", tag, fd.pos, fv.Type())
			}
		}
		s.Set(fd.pos, e)
	}
	return s, nil
}
