// Package tensor implements the flat float32 tensor the flint engine
// computes on.
//
// A Tensor pairs a Shape (up to 5 axes) with a contiguous float32 buffer.
// Tensors either own their buffer exclusively or are borrowed views produced
// by Index, which alias a contiguous axis-0 slice of a parent's buffer.
// Borrowed views must never be resized and must not outlive their parent.
//
// Element-wise operations (Copy, Add, Sub) require both operands to have
// identical shapes and report ErrShapeMismatch otherwise; Assign is the
// explicit resize-then-copy variant.
package tensor
