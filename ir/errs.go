package ir

import "errors"

var (
	ErrNoSlot      = errors.New("no such slot")
	ErrSlotKind    = errors.New("wrong slot kind")
	ErrTagMismatch = errors.New("segment tag does not match slot")
	ErrTree        = errors.New("bad tree")
)
