package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"whisperbatch/internal/engine"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Watch.SettleSeconds < 0 {
		return errors.New("watch.settle_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if _, err := language.ParseBase(c.Transcription.Language); err != nil {
		return fmt.Errorf("transcription.language %q is not a recognized language code", c.Transcription.Language)
	}
	if c.Transcription.Model != "" {
		if _, err := engine.ParseTier(c.Transcription.Model); err != nil {
			return fmt.Errorf("transcription.model: %w", err)
		}
	}
	switch c.Transcription.Device {
	case "auto", string(engine.DeviceCPU), string(engine.DeviceCUDA):
	default:
		return fmt.Errorf("transcription.device must be auto, cuda, or cpu (got %q)", c.Transcription.Device)
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.BatchSize < 0 {
		return errors.New("engine.batch_size must be >= 0")
	}
	switch c.Engine.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("engine.vad_method must be silero or pyannote (got %q)", c.Engine.VADMethod)
	}
	switch c.Engine.ComputeType {
	case "float32", "float16", "int8":
	default:
		return fmt.Errorf("engine.compute_type must be float32, float16, or int8 (got %q)", c.Engine.ComputeType)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	parsed, err := url.Parse(topic)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic must be a full URL such as https://ntfy.sh/mytopic (got %q)", topic)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	if strings.TrimSpace(c.Logging.File) != "" && c.Logging.FileMaxSizeMB <= 0 {
		return errors.New("logging.file_max_size_mb must be positive when logging.file is set")
	}
	return nil
}
