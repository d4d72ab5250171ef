package nn

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/flint-ml/flint/internal/tensor"
)

func TestFunc_Apply(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid.Apply(0), 1e-6)
	assert.InDelta(t, 1/(1+1/2.718281828), Sigmoid.Apply(1), 1e-6)

	assert.Equal(t, float32(0), ReLU.Apply(-2))
	assert.Equal(t, float32(0), ReLU.Apply(0))
	assert.Equal(t, float32(2), ReLU.Apply(2))

	assert.InDelta(t, -0.6, LeakyReLU.Apply(-2), 1e-6)
	assert.Equal(t, float32(2), LeakyReLU.Apply(2))

	assert.InDelta(t, seluScale*2, SELU.Apply(2), 1e-5)
	assert.InDelta(t, seluScale*seluAlpha*(1/2.718281828-1), SELU.Apply(-1), 1e-5)
	assert.Equal(t, float32(0), SELU.Apply(0))
}

// TestFunc_DerivativeFiniteDifferences checks each closed-form derivative
// against a finite-difference estimate of the forward function. The x = 0
// boundary uses a one-sided estimate, since the piecewise functions take
// their positive-side derivative there.
func TestFunc_DerivativeFiniteDifferences(t *testing.T) {
	funcs := []Func{Sigmoid, ReLU, LeakyReLU, SELU}
	points := []float32{-2.5, -1, -0.25, 0.25, 1, 2.5}

	central := &fd.Settings{Formula: fd.Central, Step: 1e-3}
	forward := &fd.Settings{Formula: fd.Forward, Step: 1e-3}

	for _, fn := range funcs {
		f := func(x float64) float64 {
			return float64(fn.Apply(float32(x)))
		}
		for _, x := range points {
			t.Run(fmt.Sprintf("%v_at_%v", fn, x), func(t *testing.T) {
				want := fd.Derivative(f, float64(x), central)
				assert.InDelta(t, want, fn.Derivative(x), 1e-3)
			})
		}
		t.Run(fmt.Sprintf("%v_at_0", fn), func(t *testing.T) {
			want := fd.Derivative(f, 0, forward)
			assert.InDelta(t, want, fn.Derivative(0), 1e-3)
		})
	}
}

func TestActivation_Forward(t *testing.T) {
	a := NewActivation(ReLU)

	input, _ := tensor.FromSlice([]float32{-1, 0, 2, -3}, tensor.Shape{4})
	out := tensor.Empty()
	require.NoError(t, a.Forward(input, out))

	assert.True(t, a.InputShape().Equal(tensor.Shape{4}))
	assert.True(t, a.OutputShape().Equal(tensor.Shape{4}))
	assert.Equal(t, []float32{0, 0, 2, 0}, out.Data())

	// The input tensor is untouched.
	assert.Equal(t, []float32{-1, 0, 2, -3}, input.Data())
}

func TestActivation_Backward(t *testing.T) {
	a := NewActivation(LeakyReLU)

	input, _ := tensor.FromSlice([]float32{-2, 3}, tensor.Shape{2})
	out := tensor.Empty()
	require.NoError(t, a.Forward(input, out))

	grad, _ := tensor.FromSlice([]float32{1, 1}, tensor.Shape{2})
	back := tensor.Empty()
	acc := a.StartBatch()
	require.NoError(t, a.Backward(acc, grad, back))

	// The derivative is evaluated at the stored pre-activation values.
	assert.InDelta(t, 0.3, back.Data()[0], 1e-6)
	assert.InDelta(t, 1.0, back.Data()[1], 1e-6)
	assert.Equal(t, 1, acc.Samples())
}

func TestActivation_BackwardUsesStoredInput(t *testing.T) {
	a := NewActivation(Sigmoid)

	first, _ := tensor.FromSlice([]float32{0}, tensor.Shape{1})
	second, _ := tensor.FromSlice([]float32{10}, tensor.Shape{1})
	out := tensor.Empty()
	require.NoError(t, a.Forward(first, out))
	require.NoError(t, a.Forward(second, out))

	grad, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1})
	back := tensor.Empty()
	require.NoError(t, a.Backward(a.StartBatch(), grad, back))

	// sigma'(10) ~ 4.5e-5, not sigma'(0) = 0.25.
	assert.InDelta(t, Sigmoid.Derivative(10), back.Data()[0], 1e-6)
}

func TestActivation_NotTrainable(t *testing.T) {
	a := NewActivation(SELU)
	require.NoError(t, a.Init(tensor.Shape{3, 2}))

	assert.Equal(t, 0, a.TrainableParams())
	assert.False(t, a.Trainable())

	// EndBatch has nothing to update.
	require.NoError(t, a.EndBatch(a.StartBatch(), 0.5))
}

func TestActivation_ContractErrors(t *testing.T) {
	a := NewActivation(ReLU)
	grad, _ := tensor.New(tensor.Shape{2})
	back := tensor.Empty()

	assert.ErrorIs(t, a.Backward(a.StartBatch(), grad, back), ErrUninitialized)

	require.NoError(t, a.Init(tensor.Shape{2}))
	assert.ErrorIs(t, a.Backward(a.StartBatch(), grad, back), ErrNoForward)
	assert.ErrorIs(t, a.Init(tensor.Shape{3}), ErrShapeBound)
	assert.ErrorIs(t, a.Backward(&denseBatch{}, grad, back), ErrBatchMismatch)
}
