package tensor

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tt, err := New(Shape{2, 3})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tt.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", tt.NumElements())
	}
	for i, v := range tt.Data() {
		if v != 0 {
			t.Errorf("Data()[%d] = %f, want 0", i, v)
		}
	}
	if tt.IsView() {
		t.Error("a fresh tensor must own its buffer")
	}

	if _, err := New(Shape{0, 3}); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("New(invalid) error = %v, want ErrInvalidShape", err)
	}
}

func TestFromSlice(t *testing.T) {
	data := []float32{1, 2, 3, 4}
	tt, err := FromSlice(data, Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice() error = %v", err)
	}

	// The tensor owns a copy of the data.
	data[0] = 99
	if tt.Data()[0] != 1 {
		t.Error("FromSlice() must copy the input slice")
	}

	if _, err := FromSlice(data, Shape{3, 2}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("FromSlice(wrong size) error = %v, want ErrShapeMismatch", err)
	}
}

func TestTensor_CopyRoundTrip(t *testing.T) {
	src, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	// Assign into an unallocated tensor, then Copy into a pre-shaped one.
	mid := Empty()
	if err := Assign(mid, src); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	dst, _ := New(Shape{2, 3})
	if err := Copy(dst, mid); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	if !dst.Shape().Equal(src.Shape()) {
		t.Errorf("round-trip shape = %v, want %v", dst.Shape(), src.Shape())
	}
	for i, v := range src.Data() {
		if dst.Data()[i] != v {
			t.Fatalf("round-trip data[%d] = %f, want %f", i, dst.Data()[i], v)
		}
	}
}

func TestTensor_CopyShapeMismatch(t *testing.T) {
	a, _ := New(Shape{2, 3})
	b, _ := New(Shape{3, 2})
	if err := Copy(a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Copy() error = %v, want ErrShapeMismatch", err)
	}
}

func TestTensor_AddSub(t *testing.T) {
	a, _ := FromSlice([]float32{1, 2, 3}, Shape{3})
	b, _ := FromSlice([]float32{10, 20, 30}, Shape{3})

	if err := Add(a, b); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	want := []float32{11, 22, 33}
	for i := range want {
		if a.Data()[i] != want[i] {
			t.Fatalf("Add() data = %v, want %v", a.Data(), want)
		}
	}

	if err := Sub(a, b); err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	want = []float32{1, 2, 3}
	for i := range want {
		if a.Data()[i] != want[i] {
			t.Fatalf("Sub() data = %v, want %v", a.Data(), want)
		}
	}

	c, _ := New(Shape{4})
	if err := Add(a, c); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Add(mismatch) error = %v, want ErrShapeMismatch", err)
	}
	if err := Sub(a, c); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Sub(mismatch) error = %v, want ErrShapeMismatch", err)
	}
}

func TestTensor_Fill(t *testing.T) {
	a, _ := New(Shape{2, 2})
	a.Fill(3.5)
	for i, v := range a.Data() {
		if v != 3.5 {
			t.Fatalf("Fill() data[%d] = %f, want 3.5", i, v)
		}
	}
}

func TestTensor_Index(t *testing.T) {
	batch, _ := FromSlice([]float32{
		0, 1, 2,
		10, 11, 12,
	}, Shape{2, 3})

	sample := batch.Index(1)
	if !sample.IsView() {
		t.Error("Index() must return a borrowed view")
	}
	if !sample.Shape().Equal(Shape{3}) {
		t.Errorf("view shape = %v, want (3)", sample.Shape())
	}
	if sample.Data()[0] != 10 {
		t.Errorf("view data[0] = %f, want 10", sample.Data()[0])
	}

	// Writes through the view are visible in the parent.
	sample.Data()[2] = 99
	if batch.At(1, 2) != 99 {
		t.Error("view must alias the parent's buffer")
	}

	// Writes through the parent are visible in the view.
	batch.Set(-5, 1, 0)
	if sample.Data()[0] != -5 {
		t.Error("parent writes must be visible through the view")
	}
}

func TestTensor_ViewResize(t *testing.T) {
	batch, _ := New(Shape{4, 3})
	view := batch.Index(0)

	if err := view.Resize(Shape{6}); !errors.Is(err, ErrViewResize) {
		t.Errorf("Resize(view) error = %v, want ErrViewResize", err)
	}
	// Resizing a view to its current shape is a no-op, not a violation.
	if err := view.Resize(Shape{3}); err != nil {
		t.Errorf("Resize(view, same shape) error = %v, want nil", err)
	}
}

func TestTensor_Resize(t *testing.T) {
	a := Empty()
	if err := a.Resize(Shape{2, 2}); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if a.NumElements() != 4 {
		t.Errorf("NumElements() = %d, want 4", a.NumElements())
	}

	if err := a.Resize(Shape{5}); err != nil {
		t.Fatalf("Resize(grow) error = %v", err)
	}
	if a.NumElements() != 5 {
		t.Errorf("NumElements() = %d, want 5", a.NumElements())
	}

	if err := a.Resize(Shape{-1}); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Resize(invalid) error = %v, want ErrInvalidShape", err)
	}
}

func TestTensor_Clone(t *testing.T) {
	a, _ := FromSlice([]float32{1, 2}, Shape{2})
	b := a.Clone()
	b.Data()[0] = 42
	if a.Data()[0] != 1 {
		t.Error("Clone() must not alias the original buffer")
	}
	if b.IsView() {
		t.Error("Clone() must own its buffer")
	}
}
