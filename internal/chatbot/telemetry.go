package chatbot

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jonathan/sizing-assistant/internal/chatbot"

// instruments are the chatbot's spans and counters. They are no-ops until an OpenTelemetry
// SDK is installed globally.
type instruments struct {
	tracer    trace.Tracer
	messages  metric.Int64Counter
	fallbacks metric.Int64Counter
	failures  metric.Int64Counter
}

func newInstruments() instruments {
	meter := otel.Meter(instrumentationName)
	return instruments{
		tracer:    otel.Tracer(instrumentationName),
		messages:  counter(meter, "chatbot.messages", "Messages processed, by intent"),
		fallbacks: counter(meter, "chatbot.composer_fallbacks", "Replies that used a template instead of the LLM"),
		failures:  counter(meter, "chatbot.failures", "Messages that ended in an apology"),
	}
}

func counter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		c, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter(name)
	}
	return c
}
