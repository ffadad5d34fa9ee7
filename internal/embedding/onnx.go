//go:build cgo
// +build cgo

// ONNX-based model provider (requires CGO and the onnxruntime library).
package embedding

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXProvider runs a transformer encoder exported to ONNX with all hidden
// layers in one output tensor of shape (layers, maxTokens, dimensions).
// It requires CGO and the onnxruntime shared library.
type ONNXProvider struct {
	session    *ort.AdvancedSession
	layers     int
	dimensions int
	maxTokens  int
	tokenizer  Tokenizer
	// Pre-allocated tensors for Run(); we update input data and read output.
	inputIDsTensor      *ort.Tensor[int64]
	attentionMaskTensor *ort.Tensor[int64]
	tokenTypeIDsTensor  *ort.Tensor[int64]
	hiddenStatesTensor  *ort.Tensor[float32]
	mu                  sync.Mutex
}

// NewONNXProvider creates an ONNX provider. InitializeEnvironment is called
// if not already done.
func NewONNXProvider(modelPath string, layers, dimensions, maxTokens int) (*ONNXProvider, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	tokenizer := &SimpleTokenizer{}
	inputIDs, attentionMask, tokenTypeIDs, _, err := tokenizer.Tokenize("", maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to prime tokenizer: %w", err)
	}

	inputIDsTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), inputIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	attentionMaskTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), attentionMask)
	if err != nil {
		inputIDsTensor.Destroy()
		return nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	tokenTypeIDsTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), tokenTypeIDs)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		return nil, fmt.Errorf("failed to create token_type_ids tensor: %w", err)
	}
	hiddenData := make([]float32, layers*maxTokens*dimensions)
	hiddenStatesTensor, err := ort.NewTensor(ort.NewShape(int64(layers), int64(maxTokens), int64(dimensions)), hiddenData)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		tokenTypeIDsTensor.Destroy()
		return nil, fmt.Errorf("failed to create hidden_states tensor: %w", err)
	}

	inputs := []ort.ArbitraryTensor{inputIDsTensor, attentionMaskTensor, tokenTypeIDsTensor}
	outputs := []ort.ArbitraryTensor{hiddenStatesTensor}
	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"hidden_states"},
		inputs,
		outputs,
		nil,
	)
	if err != nil {
		inputIDsTensor.Destroy()
		attentionMaskTensor.Destroy()
		tokenTypeIDsTensor.Destroy()
		hiddenStatesTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXProvider{
		session:             session,
		layers:              layers,
		dimensions:          dimensions,
		maxTokens:           maxTokens,
		tokenizer:           tokenizer,
		inputIDsTensor:      inputIDsTensor,
		attentionMaskTensor: attentionMaskTensor,
		tokenTypeIDsTensor:  tokenTypeIDsTensor,
		hiddenStatesTensor:  hiddenStatesTensor,
	}, nil
}

// HiddenStates runs inference and returns one row per live token at the
// given layer. A text that does not fit the token budget fails with
// ErrSentenceTooLong.
func (p *ONNXProvider) HiddenStates(ctx context.Context, text string, layer int) ([][]float32, error) {
	resolved, err := ResolveLayer(layer, p.layers)
	if err != nil {
		return nil, err
	}
	inputIDs, attentionMask, tokenTypeIDs, n, err := p.tokenizer.Tokenize(text, p.maxTokens)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	copy(p.inputIDsTensor.GetData(), inputIDs)
	copy(p.attentionMaskTensor.GetData(), attentionMask)
	copy(p.tokenTypeIDsTensor.GetData(), tokenTypeIDs)

	if err := p.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := p.hiddenStatesTensor.GetData()
	base := resolved * p.maxTokens * p.dimensions
	states := make([][]float32, n)
	for t := 0; t < n; t++ {
		row := make([]float32, p.dimensions)
		copy(row, out[base+t*p.dimensions:base+(t+1)*p.dimensions])
		states[t] = row
	}
	return states, nil
}

// Layers returns the number of hidden layers in the exported graph.
func (p *ONNXProvider) Layers() int {
	return p.layers
}

// Dimensions returns the hidden-state width.
func (p *ONNXProvider) Dimensions() int {
	return p.dimensions
}

// Close destroys the session and tensors.
func (p *ONNXProvider) Close() error {
	var err error
	if p.session != nil {
		err = p.session.Destroy()
		p.session = nil
	}
	if p.inputIDsTensor != nil {
		_ = p.inputIDsTensor.Destroy()
		p.inputIDsTensor = nil
	}
	if p.attentionMaskTensor != nil {
		_ = p.attentionMaskTensor.Destroy()
		p.attentionMaskTensor = nil
	}
	if p.tokenTypeIDsTensor != nil {
		_ = p.tokenTypeIDsTensor.Destroy()
		p.tokenTypeIDsTensor = nil
	}
	if p.hiddenStatesTensor != nil {
		_ = p.hiddenStatesTensor.Destroy()
		p.hiddenStatesTensor = nil
	}
	return err
}
