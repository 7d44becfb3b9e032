package llm

import "github.com/rs/zerolog"

// CallEvent records metadata about a single generation call.
type CallEvent struct {
	Task         TaskType
	Model        string
	LatencyMs    int64
	Success      bool
	ErrorCode    string
	PromptTokens int
	OutputTokens int
}

// Observer receives events about generation calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events through a zerolog logger.
type LogObserver struct {
	log zerolog.Logger
}

// NewLogObserver creates an Observer that logs events to the given logger.
func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	evt := o.log.Info()
	if !event.Success {
		evt = o.log.Warn().Str("error_code", event.ErrorCode)
	}
	evt.Str("task", string(event.Task)).
		Str("model", event.Model).
		Int64("latency_ms", event.LatencyMs).
		Int("prompt_tokens", event.PromptTokens).
		Int("output_tokens", event.OutputTokens).
		Bool("success", event.Success).
		Msg("generation call")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
