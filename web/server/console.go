package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and echoing them to a server side logger
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	echo        core.Logger
}

// NewWebLogger creates a new web logger for a specific render. A nil echo
// logger discards the server side copy.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, echo core.Logger) core.Logger {
	if echo == nil {
		echo = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		echo:        echo,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.echo.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}

	// Never block the renderer; drop the message when the channel is full
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}:
	default:
	}
}
