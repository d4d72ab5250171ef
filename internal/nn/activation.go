package nn

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/flint-ml/flint/internal/tensor"
)

// SELU constants from Klambauer et al., "Self-Normalizing Neural Networks".
const (
	seluAlpha = 1.673263242354377
	seluScale = 1.05070098735548
)

// leakySlope is the fixed negative-side slope of the leaky ReLU.
const leakySlope = 0.3

// Func identifies an element-wise activation function.
type Func int

// Supported activation functions.
const (
	Sigmoid Func = iota
	ReLU
	LeakyReLU
	SELU
)

// String returns the function name.
func (f Func) String() string {
	switch f {
	case Sigmoid:
		return "Sigmoid"
	case ReLU:
		return "ReLU"
	case LeakyReLU:
		return "LeakyReLU"
	case SELU:
		return "SELU"
	default:
		return fmt.Sprintf("Func(%d)", int(f))
	}
}

// Apply evaluates the function at x.
func (f Func) Apply(x float32) float32 {
	switch f {
	case Sigmoid:
		return 1 / (1 + math32.Exp(-x))
	case ReLU:
		if x < 0 {
			return 0
		}
		return x
	case LeakyReLU:
		if x < 0 {
			return leakySlope * x
		}
		return x
	case SELU:
		if x < 0 {
			return seluScale * seluAlpha * (math32.Exp(x) - 1)
		}
		return seluScale * x
	default:
		panic("nn: unknown activation function")
	}
}

// Derivative evaluates d(Apply)/dx at x. The piecewise functions take their
// positive-side derivative at x = 0.
func (f Func) Derivative(x float32) float32 {
	switch f {
	case Sigmoid:
		s := f.Apply(x)
		return s * (1 - s)
	case ReLU:
		if x < 0 {
			return 0
		}
		return 1
	case LeakyReLU:
		if x < 0 {
			return leakySlope
		}
		return 1
	case SELU:
		if x < 0 {
			return seluScale * seluAlpha * math32.Exp(x)
		}
		return seluScale
	default:
		panic("nn: unknown activation function")
	}
}

// Activation applies an element-wise activation function. It has no
// trainable parameters; its output shape equals its input shape.
//
// The layer stores the pre-activation input values of the most recent
// Forward call, at which the derivative is evaluated during Backward.
type Activation struct {
	fn Func

	in, out tensor.Shape

	// Pre-activation values from the most recent Forward call.
	last *tensor.Tensor
}

type activationBatch struct {
	samples int
}

func (b *activationBatch) Samples() int { return b.samples }

// NewActivation creates an unbound activation layer.
func NewActivation(fn Func) *Activation {
	return &Activation{
		fn:   fn,
		last: tensor.Empty(),
	}
}

// Name returns the activation function name.
func (a *Activation) Name() string {
	return a.fn.String()
}

// Function returns the configured activation function.
func (a *Activation) Function() Func {
	return a.fn
}

// Init binds the input shape; the output shape is the same.
func (a *Activation) Init(in tensor.Shape) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if a.in != nil {
		if a.in.Equal(in) {
			return nil
		}
		return fmt.Errorf("%w: %s is bound to %v, got %v", ErrShapeBound, a.Name(), a.in, in)
	}
	a.in = in.Clone()
	a.out = in.Clone()
	return nil
}

// InputShape returns the bound input shape, or nil before initialization.
func (a *Activation) InputShape() tensor.Shape { return a.in }

// OutputShape returns the bound output shape, or nil before initialization.
func (a *Activation) OutputShape() tensor.Shape { return a.out }

// Forward applies the function element-wise and captures the
// pre-activation input for Backward.
func (a *Activation) Forward(input, output *tensor.Tensor) error {
	if err := forwardSetup(a, input, output); err != nil {
		return err
	}
	if err := tensor.Assign(a.last, input); err != nil {
		return err
	}
	in := input.Data()
	out := output.Data()
	for i, x := range in {
		out[i] = a.fn.Apply(x)
	}
	return nil
}

// StartBatch creates an accumulator that only counts samples; the layer
// has no parameters to update.
func (a *Activation) StartBatch() Batch {
	return &activationBatch{}
}

// Backward chains the incoming gradient through the derivative evaluated
// at the stored pre-activation values.
func (a *Activation) Backward(batch Batch, outputGrad, inputGrad *tensor.Tensor) error {
	b, ok := batch.(*activationBatch)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBatchMismatch, a.Name())
	}
	if err := backwardSetup(a, outputGrad, inputGrad); err != nil {
		return err
	}
	if !a.last.Shape().Equal(a.in) {
		return fmt.Errorf("%w: %s", ErrNoForward, a.Name())
	}

	g := outputGrad.Data()
	last := a.last.Data()
	back := inputGrad.Data()
	for i := range back {
		back[i] = g[i] * a.fn.Derivative(last[i])
	}

	b.samples++
	return nil
}

// EndBatch consumes the accumulator; there are no parameters to update.
func (a *Activation) EndBatch(batch Batch, learningRate float32) error {
	b, ok := batch.(*activationBatch)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBatchMismatch, a.Name())
	}
	b.samples = 0
	return nil
}

// TrainableParams returns 0.
func (a *Activation) TrainableParams() int {
	return 0
}

// Trainable reports false.
func (a *Activation) Trainable() bool {
	return false
}
