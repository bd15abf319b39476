// Package chatbot runs a conversation turn end to end: parse the message, retrieve catalog
// context, merge it with the session, compute the size recommendation and compose the reply.
package chatbot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonathan/sizing-assistant/internal/avatar"
	"github.com/jonathan/sizing-assistant/internal/composer"
	"github.com/jonathan/sizing-assistant/internal/db"
	"github.com/jonathan/sizing-assistant/internal/retrieval"
	"github.com/jonathan/sizing-assistant/internal/session"
	"github.com/jonathan/sizing-assistant/internal/types"
)

// Catalog is the read-only catalog view the bot needs.
type Catalog interface {
	retrieval.Catalog
	AllProducts() []*types.Product
}

// AvatarGenerator renders outfit previews.
type AvatarGenerator interface {
	Generate(ctx context.Context, clientID, productID string, size types.Size, color string) (*avatar.Image, error)
}

// TurnRecorder persists finished turns.
type TurnRecorder interface {
	RecordTurn(ctx context.Context, rec db.TurnRecord) error
}

// Options wires a Bot. Only Catalog is required for a working bot; nil collaborators are
// replaced by in-memory or template-only defaults, and a nil Avatars or Recorder disables
// that feature.
type Options struct {
	Catalog  Catalog
	Composer *composer.Composer
	Sessions *session.Manager
	Avatars  AvatarGenerator
	Recorder TurnRecorder
	Logger   *slog.Logger
}

// Bot is the sizing assistant.
type Bot struct {
	catalog   Catalog
	retriever *retrieval.Retriever
	composer  *composer.Composer
	sessions  *session.Manager
	avatars   AvatarGenerator
	recorder  TurnRecorder
	logger    *slog.Logger
	telemetry instruments
}

// New creates a Bot. A nil catalog yields a bot that answers every message with
// NotInitializedMessage.
func New(opts Options) *Bot {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	comp := opts.Composer
	if comp == nil {
		comp = composer.New(nil, 0, logger)
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewManager(session.DefaultMaxTurns)
	}

	b := &Bot{
		catalog:   opts.Catalog,
		composer:  comp,
		sessions:  sessions,
		avatars:   opts.Avatars,
		recorder:  opts.Recorder,
		logger:    logger,
		telemetry: newInstruments(),
	}
	if opts.Catalog != nil {
		b.retriever = retrieval.New(opts.Catalog)
	}
	return b
}

// Initialized reports whether the bot has a catalog to answer from.
func (b *Bot) Initialized() bool {
	return b.catalog != nil
}

// Sessions exposes the conversation memory.
func (b *Bot) Sessions() *session.Manager {
	return b.sessions
}

// StartConversation starts (or restarts) a session and records the welcome turn. An empty
// id gets a fresh UUID. It returns the session id.
func (b *Bot) StartConversation(sessionID string) string {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	b.sessions.Start(sessionID)
	b.sessions.AddTurn(sessionID, WelcomeTurnMarker, WelcomeMessage, session.TurnContext{},
		map[string]any{"turn_type": "welcome"})
	return sessionID
}

// ProcessMessage answers one user message. It never returns an error: failures become a
// Response with Error set, and the turn is still recorded.
func (b *Bot) ProcessMessage(ctx context.Context, sessionID, message string) (resp Response) {
	if !b.Initialized() {
		return Response{SessionID: sessionID, Text: NotInitializedMessage, Error: true}
	}

	ctx, span := b.telemetry.tracer.Start(ctx, "chatbot.ProcessMessage",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	unlock := b.sessions.Lock(sessionID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			resp = b.failTurn(ctx, span, sessionID, message, fmt.Errorf("panic: %v", r))
		}
	}()

	resp, tc, err := b.dispatch(ctx, sessionID, message)
	if err != nil {
		return b.failTurn(ctx, span, sessionID, message, err)
	}
	resp.SessionID = sessionID

	b.sessions.AddTurn(sessionID, message, resp.Text, tc, resp.Metadata)
	b.record(ctx, sessionID, message, resp)

	intent := attribute.String("intent", string(resp.Intent))
	span.SetAttributes(intent)
	b.telemetry.messages.Add(ctx, 1, metric.WithAttributes(intent))
	if resp.FallbackUsed {
		b.telemetry.fallbacks.Add(ctx, 1, metric.WithAttributes(intent))
	}
	return resp
}

func (b *Bot) failTurn(ctx context.Context, span trace.Span, sessionID, message string, err error) Response {
	b.logger.Error("failed to process message", "session_id", sessionID, "error", err)
	sentry.CaptureException(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	b.telemetry.failures.Add(ctx, 1)

	resp := Response{
		SessionID:    sessionID,
		Text:         ErrorMessage,
		Error:        true,
		ErrorDetails: err.Error(),
		Metadata:     map[string]any{"error": true},
	}
	b.sessions.AddTurn(sessionID, message, resp.Text, session.TurnContext{}, resp.Metadata)
	b.record(ctx, sessionID, message, resp)
	return resp
}

// record writes the turn to the recorder. Failures are logged and never reach the user.
func (b *Bot) record(ctx context.Context, sessionID, message string, resp Response) {
	if b.recorder == nil {
		return
	}
	rec := db.TurnRecord{
		SessionID:    sessionID,
		UserMessage:  message,
		BotResponse:  resp.Text,
		Intent:       string(resp.Intent),
		FallbackUsed: resp.FallbackUsed,
		IsError:      resp.Error,
		Metadata:     resp.Metadata,
	}
	if resp.Client != nil {
		rec.ClientID = &resp.Client.ID
	}
	if resp.Product != nil {
		rec.ProductID = &resp.Product.ID
	}
	if resp.Recommendation != nil {
		size := string(resp.Recommendation.RecommendedSize)
		confidence := resp.Recommendation.Confidence
		rec.RecommendedSize = &size
		rec.Confidence = &confidence
	}
	if err := b.recorder.RecordTurn(ctx, rec); err != nil {
		b.logger.Warn("failed to record turn", "session_id", sessionID, "error", err)
	}
}

// SessionInfo summarizes a session, or reports false if it does not exist.
func (b *Bot) SessionInfo(sessionID string) (session.Summary, bool) {
	return b.sessions.Summary(sessionID)
}

// ClearSession forgets a session.
func (b *Bot) ClearSession(sessionID string) {
	b.sessions.Clear(sessionID)
}

// AvailableClients lists up to limit clients in catalog order.
func (b *Bot) AvailableClients(limit int) []ClientSummary {
	if b.catalog == nil {
		return []ClientSummary{}
	}
	clients := b.catalog.AllClients()
	if limit > 0 && len(clients) > limit {
		clients = clients[:limit]
	}
	out := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, SummarizeClient(c))
	}
	return out
}

// AvailableProducts lists up to limit products in catalog order.
func (b *Bot) AvailableProducts(limit int) []ProductSummary {
	if b.catalog == nil {
		return []ProductSummary{}
	}
	products := b.catalog.AllProducts()
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, SummarizeProduct(p))
	}
	return out
}
