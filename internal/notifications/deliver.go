package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"whisperbatch/internal/logging"
)

// CompletionTitle is the title of the end-of-run notice.
const CompletionTitle = "Transcription complete"

// CompletionMessage formats the end-of-run notice body.
func CompletionMessage(processed int, outputDir string) string {
	return fmt.Sprintf("Done: processed %d files. Results in %s", processed, outputDir)
}

// Deliver sends the notice through n. When n fails or is disabled the notice
// is written to fallback as "[NOTIFY] title: message". Deliver never returns
// an error.
func Deliver(ctx context.Context, n Notifier, fallback io.Writer, logger *slog.Logger, title, message string) {
	if n == nil {
		n = Noop{}
	}
	err := n.Notify(ctx, title, message)
	if err == nil {
		return
	}
	if !errors.Is(err, ErrDisabled) {
		logging.WarnWithContext(logger, "notification delivery failed", "notify_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic and network access"),
			logging.String(logging.FieldImpact, "notice printed to console instead"),
		)
	}
	if fallback != nil {
		fmt.Fprintf(fallback, "[NOTIFY] %s: %s\n", title, message)
	}
}
