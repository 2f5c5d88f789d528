package config

import (
	"fmt"
	"os"
	"strings"

	"whisperbatch/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeEngine()
	c.normalizeNotifications()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if strings.TrimSpace(c.Paths.OutputRoot) == "" {
		c.Paths.OutputRoot = defaultOutputRoot
	}
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputRoot, err = expandPath(c.Paths.OutputRoot); err != nil {
		return fmt.Errorf("paths.output_root: %w", err)
	}
	// An empty hotwords_file disables the sidecar entirely.
	if strings.TrimSpace(c.Paths.HotwordsFile) != "" {
		if c.Paths.HotwordsFile, err = expandPath(c.Paths.HotwordsFile); err != nil {
			return fmt.Errorf("paths.hotwords_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	c.Transcription.Language = strings.TrimSpace(c.Transcription.Language)
	if c.Transcription.Language == "" {
		c.Transcription.Language = defaultLanguage
	}
	if code := language.ToISO2(c.Transcription.Language); code != "" {
		c.Transcription.Language = code
	}
	c.Transcription.Model = strings.ToLower(strings.TrimSpace(c.Transcription.Model))
	c.Transcription.Device = strings.ToLower(strings.TrimSpace(c.Transcription.Device))
	if c.Transcription.Device == "" {
		c.Transcription.Device = defaultDevice
	}
}

func (c *Config) normalizeEngine() {
	c.Engine.UVXCommand = strings.TrimSpace(c.Engine.UVXCommand)
	if c.Engine.UVXCommand == "" {
		c.Engine.UVXCommand = defaultUVXCommand
	}
	c.Engine.Package = strings.TrimSpace(c.Engine.Package)
	if c.Engine.Package == "" {
		c.Engine.Package = defaultWhisperXPackage
	}
	c.Engine.ComputeType = strings.ToLower(strings.TrimSpace(c.Engine.ComputeType))
	if c.Engine.ComputeType == "" {
		c.Engine.ComputeType = defaultComputeType
	}
	c.Engine.VADMethod = strings.ToLower(strings.TrimSpace(c.Engine.VADMethod))
	if c.Engine.VADMethod == "" {
		c.Engine.VADMethod = defaultVADMethod
	}
	c.Engine.CUDAIndexURL = strings.TrimSpace(c.Engine.CUDAIndexURL)
	if c.Engine.CUDAIndexURL == "" {
		c.Engine.CUDAIndexURL = defaultCUDAIndexURL
	}
	c.Engine.PyPIIndexURL = strings.TrimSpace(c.Engine.PyPIIndexURL)
	if c.Engine.PyPIIndexURL == "" {
		c.Engine.PyPIIndexURL = defaultPyPIIndexURL
	}
	c.Engine.FFmpegBinary = strings.TrimSpace(c.Engine.FFmpegBinary)
	if c.Engine.FFmpegBinary == "" {
		c.Engine.FFmpegBinary = defaultFFmpegBinary
	}
	c.Engine.FFprobeBinary = strings.TrimSpace(c.Engine.FFprobeBinary)
	if c.Engine.FFprobeBinary == "" {
		c.Engine.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("WHISPERBATCH_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
