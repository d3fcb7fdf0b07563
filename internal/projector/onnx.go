package projector

import (
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	defaultInputName  = "input"
	defaultOutputName = "output"
)

// ONNXConfig points the projector at the exported model artifacts.
type ONNXConfig struct {
	// SharedLibrary is the path to the onnxruntime shared library.
	SharedLibrary string
	// ModelPath is the pretrained embedding model exported to ONNX.
	ModelPath string
	// ScalerPath is the JSON file with the fitted scaler parameters.
	ScalerPath string
	// InputName and OutputName are the model's tensor names.
	InputName  string
	OutputName string
}

// ONNX runs the pretrained embedding model through onnxruntime. The model is a
// black box here: the projector owns no weights and performs no training, it
// only replays the fitted scaler and the forward pass.
type ONNX struct {
	cfg    ONNXConfig
	scaler *Scaler

	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
}

// The onnxruntime environment is process wide. It is initialized on first use
// and torn down only when the process exits.
var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initRuntime(sharedLibrary string) error {
	ortInitOnce.Do(func() {
		if sharedLibrary != "" {
			ort.SetSharedLibraryPath(sharedLibrary)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// NewONNX loads the scaler parameters and opens an inference session.
func NewONNX(cfg ONNXConfig) (*ONNX, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("onnx projector requires a model path")
	}
	if cfg.ScalerPath == "" {
		return nil, errors.New("onnx projector requires fitted scaler parameters")
	}
	if cfg.InputName == "" {
		cfg.InputName = defaultInputName
	}
	if cfg.OutputName == "" {
		cfg.OutputName = defaultOutputName
	}

	scaler, err := LoadScaler(cfg.ScalerPath)
	if err != nil {
		return nil, err
	}

	if err := initRuntime(cfg.SharedLibrary); err != nil {
		return nil, fmt.Errorf("initialize onnxruntime: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("open onnx session: %w", err)
	}

	return &ONNX{cfg: cfg, scaler: scaler, session: session}, nil
}

// Close releases the inference session.
func (p *ONNX) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil
	}
	err := p.session.Destroy()
	p.session = nil
	return err
}

// Normalize applies the fitted scaler to the batch.
func (p *ONNX) Normalize(batch [][]float64) ([][]float64, error) {
	return p.scaler.Transform(batch)
}

// Embed runs the model forward pass on the whole batch at once.
func (p *ONNX) Embed(batch [][]float64) ([][]float32, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	width := p.scaler.Width()
	if err := checkWidth(batch, width); err != nil {
		return nil, fmt.Errorf("embed input: %w", err)
	}

	flat := make([]float32, 0, len(batch)*width)
	for _, vec := range batch {
		for _, v := range vec {
			flat = append(flat, float32(v))
		}
	}

	input, err := ort.NewTensor(ort.NewShape(int64(len(batch)), int64(width)), flat)
	if err != nil {
		return nil, fmt.Errorf("build input tensor: %w", err)
	}
	defer input.Destroy()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil, errors.New("onnx projector is closed")
	}

	outputs := []ort.Value{nil}
	if err := p.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}

	tensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("model returned unexpected output type %T", outputs[0])
	}
	defer tensor.Destroy()

	shape := tensor.GetShape()
	if len(shape) != 2 || shape[0] != int64(len(batch)) {
		return nil, fmt.Errorf("model returned malformed output shape %v for batch of %d", shape, len(batch))
	}

	dim := int(shape[1])
	data := tensor.GetData()
	if len(data) != len(batch)*dim {
		return nil, fmt.Errorf("model returned %d values, expected %d", len(data), len(batch)*dim)
	}

	out := make([][]float32, len(batch))
	for i := range out {
		emb := make([]float32, dim)
		copy(emb, data[i*dim:(i+1)*dim])
		out[i] = emb
	}
	return out, nil
}
