package whisperx

// Config captures runtime settings for the WhisperX process.
type Config struct {
	// UVXCommand launches WhisperX in an isolated environment.
	UVXCommand string
	// Package is the uvx package spec, e.g. "whisperx" or "whisperx==3.4.2".
	Package string
	// ComputeType is passed to faster-whisper on CPU runs.
	ComputeType string
	// BatchSize of 0 keeps the WhisperX default.
	BatchSize int
	// VADMethod selects voice activity detection ("silero" or "pyannote").
	VADMethod    string
	CUDAIndexURL string
	PyPIIndexURL string
}

// WhisperX invocation constants.
const (
	EngineName        = "WhisperX"
	OutputFormat      = "json"
	SegmentResolution = "sentence"
	VADMethodSilero   = "silero"
	CPUComputeType    = "float32"
	CUDAComputeType   = "float16"
	DefaultUVX        = "uvx"
	DefaultPackage    = "whisperx"
	DefaultFFmpeg     = "ffmpeg"
	DefaultCUDAIndex  = "https://download.pytorch.org/whl/cu128"
	DefaultPyPIIndex  = "https://pypi.org/simple"
)

func (c Config) withDefaults() Config {
	if c.UVXCommand == "" {
		c.UVXCommand = DefaultUVX
	}
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	if c.ComputeType == "" {
		c.ComputeType = CPUComputeType
	}
	if c.VADMethod == "" {
		c.VADMethod = VADMethodSilero
	}
	if c.CUDAIndexURL == "" {
		c.CUDAIndexURL = DefaultCUDAIndex
	}
	if c.PyPIIndexURL == "" {
		c.PyPIIndexURL = DefaultPyPIIndex
	}
	return c
}
