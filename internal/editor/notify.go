package editor

// Notifier displays a non-blocking, user-visible message. Errors during
// note operations are surfaced through it rather than escalated.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

// Notify calls f.
func (f NotifierFunc) Notify(msg string) {
	f(msg)
}

// MultiNotifier fans a message out to several notifiers.
type MultiNotifier []Notifier

// Notify delivers msg to every wrapped notifier.
func (m MultiNotifier) Notify(msg string) {
	for _, n := range m {
		n.Notify(msg)
	}
}
