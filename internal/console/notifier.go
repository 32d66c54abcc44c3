package console

import (
	"sync"

	"github.com/aquamarinepk/aqm"
)

// Notifier surfaces transient user-facing notices, the terminal analog of
// toast notifications.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// LogNotifier routes notices to the structured logger.
type LogNotifier struct {
	logger aqm.Logger
}

func NewLogNotifier(logger aqm.Logger) *LogNotifier {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(message string) {
	n.logger.Info("notice", "kind", "success", "message", message)
}

func (n *LogNotifier) Error(message string) {
	n.logger.Info("notice", "kind", "error", "message", message)
}

func (n *LogNotifier) Info(message string) {
	n.logger.Info("notice", "kind", "info", "message", message)
}

// Notice is one buffered user notice.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// BufferedNotifier collects notices so the HTTP console can drain and render
// them alongside the next response.
type BufferedNotifier struct {
	mu      sync.Mutex
	pending []Notice
}

func NewBufferedNotifier() *BufferedNotifier {
	return &BufferedNotifier{}
}

func (n *BufferedNotifier) Success(message string) { n.push("success", message) }
func (n *BufferedNotifier) Error(message string)   { n.push("error", message) }
func (n *BufferedNotifier) Info(message string)    { n.push("info", message) }

func (n *BufferedNotifier) push(kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, Notice{Kind: kind, Message: message})
}

// Drain returns and clears the pending notices.
func (n *BufferedNotifier) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
