package domain

// FieldState distinguishes "no data" from "zero value" from "unparseable value"
// on every leaf of the report model.
type FieldState int

const (
	FieldAbsent FieldState = iota
	FieldPresent
	FieldMalformed
)

func (s FieldState) String() string {
	switch s {
	case FieldPresent:
		return "present"
	case FieldMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

// Field is a leaf scalar with an explicit presence state. A malformed leaf
// keeps the raw upstream value for diagnostics; its Value is the zero value
// and must not be displayed.
type Field[T any] struct {
	Value T
	State FieldState
	Raw   any
}

func Present[T any](v T) Field[T] {
	return Field[T]{Value: v, State: FieldPresent}
}

func Absent[T any]() Field[T] {
	return Field[T]{State: FieldAbsent}
}

func Malformed[T any](raw any) Field[T] {
	return Field[T]{State: FieldMalformed, Raw: raw}
}

func (f Field[T]) IsPresent() bool {
	return f.State == FieldPresent
}

func (f Field[T]) IsMalformed() bool {
	return f.State == FieldMalformed
}
