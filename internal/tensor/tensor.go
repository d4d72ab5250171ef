package tensor

import "fmt"

// Tensor is a Shape paired with a flat float32 buffer of
// shape.NumElements() values.
//
// A Tensor constructed with New or FromSlice owns its buffer exclusively.
// A Tensor returned by Index is a borrowed view: it aliases a contiguous
// block of the parent's buffer, must never be resized, and must not be used
// after the parent's buffer is replaced.
//
// Example:
//
//	batch, _ := tensor.New(tensor.Shape{32, 784})
//	sample := batch.Index(3) // zero-copy view, shape (784)
type Tensor struct {
	shape Shape
	data  []float32
	view  bool
}

// New creates a zero-filled tensor owning its buffer.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float32, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor owning a copy of the given data.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(data))
	}
	t := &Tensor{
		shape: shape.Clone(),
		data:  make([]float32, len(data)),
	}
	copy(t.data, data)
	return t, nil
}

// Empty creates an unallocated tensor with no shape bound. It is the usual
// starting point for output arguments, which are resized by the callee.
func Empty() *Tensor {
	return &Tensor{}
}

// Shape returns the tensor's shape. Callers must not modify it.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// IsView reports whether the tensor borrows its buffer from a parent.
func (t *Tensor) IsView() bool {
	return t.view
}

// Data returns the flat buffer for numeric loops.
// The slice directly accesses the underlying memory (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Resize binds the tensor to the given shape, reallocating the buffer when
// the element count changes. Resizing to the current shape is a no-op.
// Borrowed views cannot be resized.
func (t *Tensor) Resize(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	if t.shape.Equal(shape) {
		return nil
	}
	if t.view {
		return fmt.Errorf("%w: view %v to %v", ErrViewResize, t.shape, shape)
	}
	if n := shape.NumElements(); n != len(t.data) {
		t.data = make([]float32, n)
	}
	t.shape = shape.Clone()
	return nil
}

// Fill broadcasts a scalar to every element.
func (t *Tensor) Fill(v float32) {
	for i := range t.data {
		t.data[i] = v
	}
}

// Index returns a borrowed view of the i-th slice along axis 0. The view
// shares the parent's buffer: writes through either are visible to both.
// Panics if the tensor has no shape bound or i is out of range.
func (t *Tensor) Index(i int) *Tensor {
	if !t.shape.Valid() {
		panic("tensor: Index on a tensor with no shape bound")
	}
	if i < 0 || i >= t.shape[0] {
		panic(fmt.Sprintf("tensor: index %d out of bounds for axis 0 (size %d)", i, t.shape[0]))
	}
	stride := t.shape.ItemStride()
	lo, hi := i*stride, (i+1)*stride
	return &Tensor{
		shape: t.shape.Item(),
		data:  t.data[lo:hi:hi],
		view:  true,
	}
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) At(indices ...int) float32 {
	return t.data[t.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) Set(v float32, indices ...int) {
	t.data[t.offset(indices)] = v
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: expected %d indices, got %d", len(t.shape), len(indices)))
	}
	offset := 0
	strides := t.shape.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of bounds for axis %d (size %d)", idx, i, t.shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// Clone creates a deep copy owning its own buffer.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		shape: t.shape.Clone(),
		data:  make([]float32, len(t.data)),
	}
	copy(c.data, t.data)
	return c
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", t.shape)
}

// Copy copies src into dst element-wise. Both tensors must already have
// identical shapes.
func Copy(dst, src *Tensor) error {
	if !dst.shape.Equal(src.shape) {
		return fmt.Errorf("%w: copy %v into %v", ErrShapeMismatch, src.shape, dst.shape)
	}
	copy(dst.data, src.data)
	return nil
}

// Assign resizes dst to src's shape, then copies src into it.
func Assign(dst, src *Tensor) error {
	if err := dst.Resize(src.shape); err != nil {
		return err
	}
	copy(dst.data, src.data)
	return nil
}

// Add adds src to dst element-wise, in place. Equal shapes required.
func Add(dst, src *Tensor) error {
	if !dst.shape.Equal(src.shape) {
		return fmt.Errorf("%w: add %v to %v", ErrShapeMismatch, src.shape, dst.shape)
	}
	for i, v := range src.data {
		dst.data[i] += v
	}
	return nil
}

// Sub subtracts src from dst element-wise, in place. Equal shapes required.
func Sub(dst, src *Tensor) error {
	if !dst.shape.Equal(src.shape) {
		return fmt.Errorf("%w: subtract %v from %v", ErrShapeMismatch, src.shape, dst.shape)
	}
	for i, v := range src.data {
		dst.data[i] -= v
	}
	return nil
}
