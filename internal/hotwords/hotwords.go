package hotwords

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Separator joins phrases into the single string passed to the engine.
const Separator = ", "

// ErrMissing reports that the sidecar file does not exist.
var ErrMissing = errors.New("hotwords file not found")

// Load returns the non-empty trimmed lines of path joined with Separator.
// A missing file yields "" and ErrMissing; callers treat that as a warning.
func Load(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return "", fmt.Errorf("open hotwords: %w", err)
	}
	defer file.Close()

	var phrases []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			phrases = append(phrases, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read hotwords: %w", err)
	}
	return strings.Join(phrases, Separator), nil
}
