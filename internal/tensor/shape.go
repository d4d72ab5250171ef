package tensor

import "fmt"

// MaxDims is the maximum number of axes a Shape may describe.
const MaxDims = 5

// Shape represents the dimensions of a tensor. Axis 0 is conventionally the
// sample count. A nil Shape means "not yet known" and is never valid.
type Shape []int

// NumElements returns the total number of elements described by the shape.
// The nil shape describes no elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// NumDims returns the number of significant axes: the index of the highest
// axis larger than one, plus one. A valid all-ones shape degenerates to 1.
func (s Shape) NumDims() int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] > 1 {
			return i + 1
		}
	}
	if len(s) == 0 {
		return 0
	}
	return 1
}

// Validate checks that the shape has between 1 and MaxDims axes and that
// every axis is positive.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: shape not bound", ErrInvalidShape)
	}
	if len(s) > MaxDims {
		return fmt.Errorf("%w: %d axes exceeds the maximum of %d", ErrInvalidShape, len(s), MaxDims)
	}
	for i, dim := range s {
		if dim < 1 {
			return fmt.Errorf("%w: axis %d is %d (must be >= 1)", ErrInvalidShape, i, dim)
		}
	}
	return nil
}

// Valid reports whether the shape passes Validate.
func (s Shape) Valid() bool {
	return s.Validate() == nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Item returns the shape of one slice along axis 0. A one-axis shape
// slices down to scalar items of shape {1}.
func (s Shape) Item() Shape {
	if len(s) <= 1 {
		return Shape{1}
	}
	return s[1:].Clone()
}

// ItemStride returns the number of elements in one axis-0 slice, which is
// also the distance between consecutive slices in the flat buffer.
func (s Shape) ItemStride() int {
	return s.Item().NumElements()
}

// Strides calculates row-major strides for the shape.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// String returns a human-readable representation, e.g. "(32, 784)".
func (s Shape) String() string {
	if len(s) == 0 {
		return "(?)"
	}
	out := "("
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", dim)
	}
	return out + ")"
}
