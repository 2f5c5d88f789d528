package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".ogg":  {},
	".flac": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {},
	".avi": {},
	".mov": {},
	".mkv": {},
}

// MediaFile is one eligible input file.
type MediaFile struct {
	Path string
	Name string
	// Ext is lower-case and includes the leading dot.
	Ext  string
	Size int64
}

// IsVideo reports whether audio must be extracted before transcription.
func (m MediaFile) IsVideo() bool {
	_, ok := videoExtensions[m.Ext]
	return ok
}

// BaseName returns the file name without its extension.
func (m MediaFile) BaseName() string {
	return strings.TrimSuffix(m.Name, filepath.Ext(m.Name))
}

// SizeMB returns the size in megabytes (MiB).
func (m MediaFile) SizeMB() float64 {
	return float64(m.Size) / (1 << 20)
}

// Supported reports whether name has an eligible extension, case-insensitively.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := audioExtensions[ext]; ok {
		return true
	}
	_, ok := videoExtensions[ext]
	return ok
}

// Scan lists eligible regular files directly inside dir, in directory listing
// order. Subdirectories are not descended into. An empty result is not an
// error.
func Scan(dir string) ([]MediaFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve input dir: %w", err)
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	files := make([]MediaFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !Supported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between listing and stat.
			continue
		}
		files = append(files, MediaFile{
			Path: filepath.Join(absDir, entry.Name()),
			Name: entry.Name(),
			Ext:  strings.ToLower(filepath.Ext(entry.Name())),
			Size: info.Size(),
		})
	}
	return files, nil
}

// Extensions returns the eligible extensions, audio first.
func Extensions() []string {
	return []string{".wav", ".mp3", ".ogg", ".flac", ".mp4", ".avi", ".mov", ".mkv"}
}
