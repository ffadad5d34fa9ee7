//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

// ONNXProvider stub type when built without CGO (see onnx.go for the real implementation).
type ONNXProvider struct{}

// NewONNXProvider returns an error when built without CGO (ONNX not available).
func NewONNXProvider(_ string, _, _, _ int) (*ONNXProvider, error) {
	return nil, errors.New("ONNX provider requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// HiddenStates is unreachable in non-CGO builds; NewONNXProvider always fails.
func (p *ONNXProvider) HiddenStates(_ context.Context, _ string, _ int) ([][]float32, error) {
	return nil, errors.New("ONNX provider requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// Layers is unreachable in non-CGO builds; NewONNXProvider always fails.
func (p *ONNXProvider) Layers() int {
	return 0
}

// Dimensions is unreachable in non-CGO builds; NewONNXProvider always fails.
func (p *ONNXProvider) Dimensions() int {
	return 0
}

// Close is unreachable in non-CGO builds; NewONNXProvider always fails.
func (p *ONNXProvider) Close() error {
	return nil
}
