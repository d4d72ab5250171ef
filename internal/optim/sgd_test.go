package optim

import "testing"

func TestSGD_DefaultLR(t *testing.T) {
	opt := NewSGD(SGDConfig{})
	if opt.LearningRate() != 0.01 {
		t.Errorf("LearningRate() = %f, want default 0.01", opt.LearningRate())
	}
}

func TestSGD_SetLearningRate(t *testing.T) {
	opt := NewSGD(SGDConfig{LR: 0.05})
	if opt.LearningRate() != 0.05 {
		t.Errorf("LearningRate() = %f, want 0.05", opt.LearningRate())
	}

	opt.SetLearningRate(0.001)
	if opt.LearningRate() != 0.001 {
		t.Errorf("LearningRate() = %f after SetLearningRate, want 0.001", opt.LearningRate())
	}
}
