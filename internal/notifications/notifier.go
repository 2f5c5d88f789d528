package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"whisperbatch/internal/config"
)

const userAgent = "whisperbatch/1"

// Notifier sends a single notice.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// NewNotifier builds the notifier described by cfg. Without an ntfy topic and
// with desktop notices disabled a no-op notifier is returned.
func NewNotifier(cfg *config.Config) Notifier {
	if cfg == nil {
		return Noop{}
	}
	var list Multi
	if topic := strings.TrimSpace(cfg.Notifications.NtfyTopic); topic != "" {
		list = append(list, NewNtfy(topic, time.Duration(cfg.NotificationTimeout())*time.Second))
	}
	if cfg.Notifications.Desktop {
		list = append(list, NewDesktop())
	}
	switch len(list) {
	case 0:
		return Noop{}
	case 1:
		return list[0]
	}
	return list
}

// Ntfy publishes notices to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	client   *http.Client
	tags     []string
	priority string
}

// NewNtfy returns an ntfy notifier. A non-positive timeout falls back to ten
// seconds.
func NewNtfy(endpoint string, timeout time.Duration) *Ntfy {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Ntfy{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		tags:     []string{"whisperbatch", "transcription"},
	}
}

// Notify posts message with title, tags and priority headers.
func (n *Ntfy) Notify(ctx context.Context, title, message string) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if title != "" {
		req.Header.Set("Title", title)
	}
	if len(n.tags) > 0 {
		req.Header.Set("Tags", strings.Join(n.tags, ","))
	}
	if n.priority != "" && n.priority != "default" {
		req.Header.Set("Priority", n.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Desktop shows notices through notify-send.
type Desktop struct {
	binary string
	run    func(ctx context.Context, name string, args ...string) error
}

// NewDesktop returns a notify-send backed notifier.
func NewDesktop() *Desktop {
	return &Desktop{binary: "notify-send", run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run() //nolint:gosec
}

// Notify runs notify-send with the app name, title and message.
func (d *Desktop) Notify(ctx context.Context, title, message string) error {
	if err := d.run(ctx, d.binary, "--app-name=whisperbatch", title, message); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// Multi fans a notice out to every notifier and joins their errors.
type Multi []Notifier

// Notify sends to all members even when some fail.
func (m Multi) Notify(ctx context.Context, title, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop discards notices. It reports ErrDisabled so Deliver prints the
// console fallback.
type Noop struct{}

// ErrDisabled marks a notifier with no configured transport.
var ErrDisabled = errors.New("notifications disabled")

func (Noop) Notify(context.Context, string, string) error { return ErrDisabled }
