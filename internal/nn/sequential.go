package nn

import (
	"fmt"
	"strings"

	"github.com/flint-ml/flint/internal/optim"
	"github.com/flint-ml/flint/internal/tensor"
)

// Sequential is a composite layer that chains child layers together.
// Forward threads a working tensor through the children in insertion
// order; Backward threads the gradient through them in reverse order.
//
// Shapes propagate eagerly during construction when the first layer's
// input shape is supplied to Add, or lazily on the first forward pass
// otherwise.
//
// Example:
//
//	model := nn.NewSequential()
//	model.Add(nn.NewDense(2), tensor.Shape{2})
//	model.Add(nn.NewActivation(nn.SELU))
//	model.Add(nn.NewDense(1))
//	model.Compile(optim.NewSGD(optim.SGDConfig{LR: 0.05}), nn.MSE)
//	err := model.Train(x, y, 32, 1000)
type Sequential struct {
	layers []Layer

	in, out tensor.Shape
	next    tensor.Shape // running output shape during eager construction

	opt  optim.Optimizer
	loss Loss

	// Working tensors threaded between children; two per direction so a
	// child never reads and writes the same buffer.
	fwd [2]*tensor.Tensor
	bwd [2]*tensor.Tensor
}

// seqBatch holds one child accumulator per layer, in insertion order.
type seqBatch struct {
	children []Batch
	samples  int
}

func (b *seqBatch) Samples() int { return b.samples }

// NewSequential creates an empty composite layer.
func NewSequential() *Sequential {
	return &Sequential{}
}

// Name returns "Sequential".
func (s *Sequential) Name() string {
	return "Sequential"
}

// Len returns the number of child layers.
func (s *Sequential) Len() int {
	return len(s.layers)
}

// Layer returns the child layer at the given index.
// Panics if index is out of bounds.
func (s *Sequential) Layer(index int) Layer {
	if index < 0 || index >= len(s.layers) {
		panic("nn: Sequential.Layer index out of bounds")
	}
	return s.layers[index]
}

// Add appends a child layer. An explicit input shape is accepted only for
// the first layer; it seeds shape propagation so every subsequently added
// layer is initialized immediately against the running output shape. With
// no seed, shapes resolve lazily on the first forward pass.
func (s *Sequential) Add(layer Layer, inputShape ...tensor.Shape) error {
	if len(inputShape) > 1 {
		return fmt.Errorf("nn: Add accepts at most one input shape, got %d", len(inputShape))
	}
	if len(inputShape) == 1 {
		if len(s.layers) > 0 {
			return fmt.Errorf("nn: an input shape may only accompany the first layer")
		}
		if err := inputShape[0].Validate(); err != nil {
			return err
		}
		s.in = inputShape[0].Clone()
		s.next = s.in
	}
	if s.next != nil {
		if err := LazyInit(layer, s.next); err != nil {
			return err
		}
		s.next = layer.OutputShape()
		s.out = s.next.Clone()
	}
	s.layers = append(s.layers, layer)
	return nil
}

// Init binds the composite by lazily initializing every child against the
// running output shape, starting from the given input shape.
func (s *Sequential) Init(in tensor.Shape) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if s.in != nil {
		if s.in.Equal(in) {
			return nil
		}
		return fmt.Errorf("%w: %s is bound to %v, got %v", ErrShapeBound, s.Name(), s.in, in)
	}

	cur := in
	for _, l := range s.layers {
		if err := LazyInit(l, cur); err != nil {
			return err
		}
		cur = l.OutputShape()
	}
	s.in = in.Clone()
	s.out = cur.Clone()
	s.next = s.out
	return nil
}

// InputShape returns the bound input shape, or nil before initialization.
func (s *Sequential) InputShape() tensor.Shape { return s.in }

// OutputShape returns the output shape of the last child, or nil while
// unknown.
func (s *Sequential) OutputShape() tensor.Shape { return s.out }

// Forward threads the input through every child in insertion order.
func (s *Sequential) Forward(input, output *tensor.Tensor) error {
	if err := forwardSetup(s, input, output); err != nil {
		return err
	}
	if len(s.layers) == 0 {
		return tensor.Copy(output, input)
	}

	cur := input
	for i, l := range s.layers {
		dst := output
		if i < len(s.layers)-1 {
			dst = s.fwdBuf(i % 2)
		}
		if err := l.Forward(cur, dst); err != nil {
			return err
		}
		cur = dst
	}
	return nil
}

// StartBatch creates one accumulator per child, in insertion order.
func (s *Sequential) StartBatch() Batch {
	children := make([]Batch, len(s.layers))
	for i, l := range s.layers {
		children[i] = l.StartBatch()
	}
	return &seqBatch{children: children}
}

// Backward threads the gradient through every child in reverse insertion
// order, accumulating each child's parameter gradients into its slot of
// the batch.
func (s *Sequential) Backward(batch Batch, outputGrad, inputGrad *tensor.Tensor) error {
	b, ok := batch.(*seqBatch)
	if !ok || len(b.children) != len(s.layers) {
		return fmt.Errorf("%w: %s", ErrBatchMismatch, s.Name())
	}
	if err := backwardSetup(s, outputGrad, inputGrad); err != nil {
		return err
	}
	if len(s.layers) == 0 {
		return tensor.Copy(inputGrad, outputGrad)
	}

	cur := outputGrad
	for i := len(s.layers) - 1; i >= 0; i-- {
		dst := inputGrad
		if i > 0 {
			dst = s.bwdBuf(i % 2)
		}
		if err := s.layers[i].Backward(b.children[i], cur, dst); err != nil {
			return err
		}
		cur = dst
	}

	b.samples++
	return nil
}

// EndBatch fans out to every child in insertion order. Child updates are
// independent, so the order is not significant.
func (s *Sequential) EndBatch(batch Batch, learningRate float32) error {
	b, ok := batch.(*seqBatch)
	if !ok || len(b.children) != len(s.layers) {
		return fmt.Errorf("%w: %s", ErrBatchMismatch, s.Name())
	}
	for i, l := range s.layers {
		if err := l.EndBatch(b.children[i], learningRate); err != nil {
			return err
		}
	}
	b.samples = 0
	return nil
}

// TrainableParams sums the trainable parameters of all children.
func (s *Sequential) TrainableParams() int {
	total := 0
	for _, l := range s.layers {
		total += l.TrainableParams()
	}
	return total
}

// Trainable reports whether any child is trainable.
func (s *Sequential) Trainable() bool {
	for _, l := range s.layers {
		if l.Trainable() {
			return true
		}
	}
	return false
}

// Compile binds the optimizer and loss used by Train.
func (s *Sequential) Compile(opt optim.Optimizer, loss Loss) error {
	if opt == nil {
		return fmt.Errorf("nn: Compile requires an optimizer")
	}
	if loss != MSE {
		return fmt.Errorf("nn: unsupported loss %v", loss)
	}
	s.opt = opt
	s.loss = loss
	return nil
}

// Train runs mini-batch stochastic gradient descent.
//
// x and y are batch tensors whose axis-0 length is the sample count. Each
// epoch partitions the samples into floor(n/minibatchSize) contiguous,
// non-overlapping mini-batches; trailing samples that do not fill a batch
// are dropped, not carried over. For every sample the loss gradient is
// injected at the output and backpropagated through all children; after
// each mini-batch the averaged update is applied with the optimizer's
// learning rate.
func (s *Sequential) Train(x, y *tensor.Tensor, minibatchSize, epochs int) error {
	if s.opt == nil {
		return fmt.Errorf("%w: call Compile before Train", ErrNotCompiled)
	}
	if minibatchSize < 1 {
		return fmt.Errorf("nn: mini-batch size must be positive, got %d", minibatchSize)
	}
	if err := x.Shape().Validate(); err != nil {
		return err
	}
	if err := y.Shape().Validate(); err != nil {
		return err
	}
	n := x.Shape()[0]
	if y.Shape()[0] != n {
		return fmt.Errorf("%w: %d input samples but %d targets", tensor.ErrShapeMismatch, n, y.Shape()[0])
	}
	if n < minibatchSize {
		return fmt.Errorf("%w: %d samples, mini-batch size %d", ErrInsufficientSamples, n, minibatchSize)
	}
	if err := LazyInit(s, x.Index(0).Shape()); err != nil {
		return err
	}

	pred := tensor.Empty()
	grad := tensor.Empty()
	sink := tensor.Empty() // gradient past the first layer, discarded

	batches := n / minibatchSize
	for epoch := 0; epoch < epochs; epoch++ {
		for bi := 0; bi < batches; bi++ {
			acc := s.StartBatch()
			for k := 0; k < minibatchSize; k++ {
				i := bi*minibatchSize + k
				if err := s.Forward(x.Index(i), pred); err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				if err := s.loss.Gradient(pred, y.Index(i), grad); err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				if err := s.Backward(acc, grad, sink); err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
			}
			if err := s.EndBatch(acc, s.opt.LearningRate()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Summary returns a human-readable table of the children, their output
// shapes and parameter counts.
func (s *Sequential) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s %-16s %s\n", "Layer", "Output Shape", "Params")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 48))
	for _, l := range s.layers {
		fmt.Fprintf(&b, "%-24s %-16s %d\n", l.Name(), l.OutputShape().String(), l.TrainableParams())
	}
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 48))
	fmt.Fprintf(&b, "Trainable params: %d\n", s.TrainableParams())
	return b.String()
}

func (s *Sequential) fwdBuf(i int) *tensor.Tensor {
	if s.fwd[i] == nil {
		s.fwd[i] = tensor.Empty()
	}
	return s.fwd[i]
}

func (s *Sequential) bwdBuf(i int) *tensor.Tensor {
	if s.bwd[i] == nil {
		s.bwd[i] = tensor.Empty()
	}
	return s.bwd[i]
}
