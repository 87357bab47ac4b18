package schema

import "fmt"

// TransactionSet is the grammar of one transaction set type. Body starts
// with the ST slot and ends with the SE slot.
type TransactionSet struct {
	ID      string
	Name    string
	Version string
	Body    *Loop
}

func NewTransactionSet(id, name, version string, body *Loop) (*TransactionSet, error) {
	ts := &TransactionSet{ID: id, Name: name, Version: version, Body: body}
	if err := ts.check(); err != nil {
		return nil, err
	}
	return ts, nil
}

func (ts *TransactionSet) check() error {
	if len(ts.ID) != 3 {
		return fmt.Errorf("%w: transaction set id %q", ErrBadSpec, ts.ID)
	}
	if ts.Body == nil {
		return fmt.Errorf("%w: transaction set %s has no body", ErrBadSpec, ts.ID)
	}
	if err := ts.Body.checkBuilt(); err != nil {
		return fmt.Errorf("%w: transaction set %s: %w", ErrBadSpec, ts.ID, err)
	}
	slots := ts.Body.Slots
	if len(slots) < 2 {
		return fmt.Errorf("%w: transaction set %s must start with ST and end with SE", ErrBadSpec, ts.ID)
	}
	first, last := slots[0], slots[len(slots)-1]
	if first.Kind != Single || first.Tag != "ST" {
		return fmt.Errorf("%w: transaction set %s must start with ST", ErrBadSpec, ts.ID)
	}
	if last.Kind != Single || last.Tag != "SE" {
		return fmt.Errorf("%w: transaction set %s must end with SE", ErrBadSpec, ts.ID)
	}
	return nil
}

func (ts *TransactionSet) String() string {
	if ts.Name == "" {
		return ts.ID
	}
	return ts.ID + " " + ts.Name
}
