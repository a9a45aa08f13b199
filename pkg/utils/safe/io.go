package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/riskboard/pkg/utils/logging"
)

// Close closes c and logs a failure instead of returning it. A nil closer is ignored.
func Close(ctx context.Context, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", slog.Any("error", err))
	}
}

// Write writes data once the response status is committed, when nothing can be
// reported to the peer any more. A failure is logged with the number of bytes
// that did go out.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	n, err := w.Write(data)
	if err != nil {
		logging.From(ctx).Warn("failed to write response",
			slog.Any("error", err),
			slog.Int("written", n),
			slog.Int("size", len(data)),
		)
	}
}
