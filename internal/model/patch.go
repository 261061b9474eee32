package model

type fieldState uint8

const (
	fieldKeep fieldState = iota
	fieldSet
	fieldClear
)

// Field is one entry of a partial update. Its zero value means "not
// provided"; Set carries a replacement and Clear explicitly removes the
// current value. Keeping the three states apart stops "don't touch" from
// collapsing into "remove".
type Field[T any] struct {
	state fieldState
	value T
}

// Keep returns a field that leaves the current value untouched.
func Keep[T any]() Field[T] {
	return Field[T]{}
}

// Set returns a field that replaces the current value with v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// Clear returns a field that removes the current value.
func Clear[T any]() Field[T] {
	return Field[T]{state: fieldClear}
}

// SetOrClear returns Set(*v) for a non-nil pointer and Clear otherwise.
func SetOrClear[T any](v *T) Field[T] {
	if v == nil {
		return Clear[T]()
	}
	return Set(*v)
}

// IsKeep reports whether the field was left out of the patch.
func (f Field[T]) IsKeep() bool { return f.state == fieldKeep }

// IsSet reports whether the field carries a replacement value.
func (f Field[T]) IsSet() bool { return f.state == fieldSet }

// IsClear reports whether the field asks for removal.
func (f Field[T]) IsClear() bool { return f.state == fieldClear }

// Value returns the replacement value and whether one is present.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == fieldSet
}

// applyPtr resolves the field against an optional current value.
func applyPtr[T any](f Field[T], cur *T) *T {
	switch f.state {
	case fieldSet:
		v := f.value
		return &v
	case fieldClear:
		return nil
	default:
		return cur
	}
}
