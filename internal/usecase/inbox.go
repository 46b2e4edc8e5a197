package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/twitton/internal/domain"
)

// InboxMessage is a received federation payload. It is never stored.
type InboxMessage struct {
	Kind      domain.InboxKind
	Username  string // empty for the shared inbox
	RequestID string
	Header    http.Header
	Body      []byte
}

type InboxUsecase struct {
	onAccept func(domain.InboxKind)
}

// NewInboxUsecase returns an acceptor that only logs. onAccept, if non-nil,
// is called once per accepted message.
func NewInboxUsecase(onAccept func(domain.InboxKind)) *InboxUsecase {
	return &InboxUsecase{onAccept: onAccept}
}

// Accept logs msg. The only failure is a body that is not valid UTF-8.
func (uc *InboxUsecase) Accept(ctx context.Context, msg InboxMessage) error {
	ctx, span := tracer.Start(ctx, "Inbox.Usecase.Accept")
	defer span.End()
	span.SetAttributes(
		attribute.String("kind", msg.Kind.String()),
		attribute.Int("size", len(msg.Body)),
	)

	if !utf8.Valid(msg.Body) {
		span.RecordError(domain.ErrInvalidEncoding)
		slog.WarnContext(ctx, "rejected inbox payload",
			slog.String("kind", msg.Kind.String()),
			slog.String("username", msg.Username),
			slog.String("request_id", msg.RequestID),
			slog.Int("size", len(msg.Body)),
			slog.String("module", "inbox"),
		)
		return domain.ErrInvalidEncoding
	}

	attrs := []any{
		slog.String("kind", msg.Kind.String()),
		slog.String("request_id", msg.RequestID),
		slog.Any("headers", msg.Header),
		slog.String("body", string(msg.Body)),
		slog.String("module", "inbox"),
	}
	if msg.Username != "" {
		attrs = append(attrs, slog.String("username", msg.Username))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}
	slog.InfoContext(ctx, "inbox message received", attrs...)

	if uc.onAccept != nil {
		uc.onAccept(msg.Kind)
	}

	return nil
}
