package nn

import (
	"fmt"

	"github.com/flint-ml/flint/internal/tensor"
)

// Dense implements a fully connected layer.
//
// For an input of n elements (the input is flattened, whatever its shape)
// and u output units it computes the affine map
//
//	output[o] = bias[o] + Σ_i input[i] * weight[i + o*n]
//
// Weights are laid out row-major by output unit and initialized with
// Xavier-uniform; biases start at zero. The layer captures its most recent
// forward input, which the backward pass reads.
//
// Example:
//
//	layer := nn.NewDense(8)
//	err := layer.Init(tensor.Shape{16}) // or let Forward bind it lazily
type Dense struct {
	units int

	in, out tensor.Shape

	weight *tensor.Tensor // (units, inputUnits), row-major by output unit
	bias   *tensor.Tensor // (units)

	// Input of the most recent Forward call, needed by Backward.
	lastInput *tensor.Tensor
}

// denseBatch accumulates parameter gradients across one mini-batch.
// Gradients are allocated on the first Backward call and discarded by
// EndBatch.
type denseBatch struct {
	weightGrad *tensor.Tensor
	biasGrad   *tensor.Tensor
	samples    int
}

func (b *denseBatch) Samples() int { return b.samples }

// NewDense creates an unbound fully connected layer with the given number
// of output units.
func NewDense(units int) *Dense {
	if units < 1 {
		panic(fmt.Sprintf("nn: Dense requires at least one unit, got %d", units))
	}
	return &Dense{
		units:     units,
		lastInput: tensor.Empty(),
	}
}

// Name returns "Dense(units)".
func (d *Dense) Name() string {
	return fmt.Sprintf("Dense(%d)", d.units)
}

// Units returns the number of output units.
func (d *Dense) Units() int {
	return d.units
}

// Weight returns the weight tensor, nil before initialization.
func (d *Dense) Weight() *tensor.Tensor {
	return d.weight
}

// Bias returns the bias tensor, nil before initialization.
func (d *Dense) Bias() *tensor.Tensor {
	return d.bias
}

// Init binds the input shape and allocates Xavier-initialized weights and
// zero biases.
func (d *Dense) Init(in tensor.Shape) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if d.in != nil {
		if d.in.Equal(in) {
			return nil
		}
		return fmt.Errorf("%w: %s is bound to %v, got %v", ErrShapeBound, d.Name(), d.in, in)
	}

	inputUnits := in.NumElements()
	d.weight = Xavier(inputUnits, d.units, tensor.Shape{d.units, inputUnits})
	d.bias = Zeros(tensor.Shape{d.units})
	d.in = in.Clone()
	d.out = tensor.Shape{d.units}
	return nil
}

// InputShape returns the bound input shape, or nil before initialization.
func (d *Dense) InputShape() tensor.Shape { return d.in }

// OutputShape returns (units), or nil before initialization.
func (d *Dense) OutputShape() tensor.Shape { return d.out }

// Forward computes the affine map and captures the input for Backward.
func (d *Dense) Forward(input, output *tensor.Tensor) error {
	if err := forwardSetup(d, input, output); err != nil {
		return err
	}
	if err := tensor.Assign(d.lastInput, input); err != nil {
		return err
	}

	in := input.Data()
	out := output.Data()
	w := d.weight.Data()
	b := d.bias.Data()
	n := len(in)

	for o := range out {
		sum := b[o]
		row := w[o*n : (o+1)*n]
		for i, x := range in {
			sum += x * row[i]
		}
		out[o] = sum
	}
	return nil
}

// StartBatch creates an empty gradient accumulator.
func (d *Dense) StartBatch() Batch {
	return &denseBatch{}
}

// Backward accumulates the weight and bias gradients for one sample into
// batch and writes the gradient with respect to the input into inputGrad.
// The propagated gradient is computed from the current, not yet updated,
// weights.
func (d *Dense) Backward(batch Batch, outputGrad, inputGrad *tensor.Tensor) error {
	b, ok := batch.(*denseBatch)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBatchMismatch, d.Name())
	}
	if err := backwardSetup(d, outputGrad, inputGrad); err != nil {
		return err
	}
	if !d.lastInput.Shape().Equal(d.in) {
		return fmt.Errorf("%w: %s", ErrNoForward, d.Name())
	}
	if b.weightGrad == nil {
		b.weightGrad = Zeros(d.weight.Shape())
		b.biasGrad = Zeros(d.bias.Shape())
	}

	g := outputGrad.Data()
	in := d.lastInput.Data()
	w := d.weight.Data()
	wg := b.weightGrad.Data()
	bg := b.biasGrad.Data()
	n := len(in)

	for o, gradOut := range g {
		row := wg[o*n : (o+1)*n]
		for i, x := range in {
			row[i] += gradOut * x
		}
		bg[o] += gradOut
	}

	back := inputGrad.Data()
	for i := range back {
		var sum float32
		for o, gradOut := range g {
			sum += gradOut * w[o*n+i]
		}
		back[i] = sum
	}

	b.samples++
	return nil
}

// EndBatch applies the plain SGD update with the learning rate scaled by
// 1/samples, then discards the accumulators. A batch that accumulated
// nothing applies no update.
func (d *Dense) EndBatch(batch Batch, learningRate float32) error {
	b, ok := batch.(*denseBatch)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBatchMismatch, d.Name())
	}
	if d.in == nil {
		return fmt.Errorf("%w: %s", ErrUninitialized, d.Name())
	}
	if b.samples == 0 || b.weightGrad == nil {
		return nil
	}

	step := learningRate / float32(b.samples)
	w := d.weight.Data()
	for i, g := range b.weightGrad.Data() {
		w[i] -= step * g
	}
	bias := d.bias.Data()
	for o, g := range b.biasGrad.Data() {
		bias[o] -= step * g
	}

	b.weightGrad = nil
	b.biasGrad = nil
	b.samples = 0
	return nil
}

// TrainableParams returns inputUnits*units + units once bound, 0 before.
func (d *Dense) TrainableParams() int {
	if d.in == nil {
		return 0
	}
	return d.weight.NumElements() + d.bias.NumElements()
}

// Trainable reports true: Dense has learnable parameters.
func (d *Dense) Trainable() bool {
	return true
}
