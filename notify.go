package moviekeep

import "github.com/rs/zerolog"

// Notifier receives the transient user notices the tracker emits when a
// best-effort side effect could not be completed (calendar unavailable,
// event creation failed, reminder is local-only). Implementations must
// not block.
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a plain function to a Notifier.
type NotifierFunc func(title, message string)

func (f NotifierFunc) Notify(title, message string) { f(title, message) }

// logNotifier is the default sink: notices go to the log and nowhere
// else. Embedders with a UI install their own Notifier.
type logNotifier struct {
	log zerolog.Logger
}

func (n logNotifier) Notify(title, message string) {
	n.log.Info().Str("notice", title).Msg(message)
}
