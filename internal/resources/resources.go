package resources

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"time"

	"whisperbatch/internal/engine"
)

const acceleratorProbeTimeout = 5 * time.Second

// Facts is the resource snapshot taken once per run.
type Facts struct {
	MemoryGB    float64
	Accelerator bool
}

// Probe reads host capabilities. Every probe is best effort and degrades to
// the conservative answer (0 GB, no accelerator) instead of failing.
type Probe struct {
	memory      func() float64
	accelerator func(ctx context.Context) bool
}

// New returns a Probe backed by the host.
func New() *Probe {
	return &Probe{memory: AvailableMemoryGB, accelerator: AcceleratorPresent}
}

// NewWith returns a Probe with injected probe functions.
func NewWith(memory func() float64, accelerator func(ctx context.Context) bool) *Probe {
	p := New()
	if memory != nil {
		p.memory = memory
	}
	if accelerator != nil {
		p.accelerator = accelerator
	}
	return p
}

// Snapshot reads both probes once.
func (p *Probe) Snapshot(ctx context.Context) Facts {
	mem := p.memory()
	if mem < 0 {
		mem = 0
	}
	return Facts{MemoryGB: mem, Accelerator: p.accelerator(ctx)}
}

// SuggestTier maps resources to the largest model expected to run comfortably.
func SuggestTier(memoryGB float64, accelerator bool) engine.Tier {
	switch {
	case accelerator:
		return engine.TierLarge
	case memoryGB >= 6:
		return engine.TierSmall
	case memoryGB >= 4:
		return engine.TierBase
	default:
		return engine.TierTiny
	}
}

// AcceleratorPresent reports whether nvidia-smi lists at least one GPU.
func AcceleratorPresent(ctx context.Context) bool {
	return acceleratorPresent(ctx, "nvidia-smi")
}

func acceleratorPresent(ctx context.Context, binary string) bool {
	path, err := exec.LookPath(binary)
	if err != nil {
		return false
	}
	probeCtx, cancel := context.WithTimeout(ctx, acceleratorProbeTimeout)
	defer cancel()
	output, err := exec.CommandContext(probeCtx, path, "-L").Output()
	if err != nil {
		return false
	}
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		if strings.HasPrefix(strings.TrimSpace(scanner.Text()), "GPU ") {
			return true
		}
	}
	return false
}
