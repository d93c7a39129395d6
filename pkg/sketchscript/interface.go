package sketchscript

import (
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/shared"
)

// --- Communication Helpers ---

// sendMessage sends a typed message with text content to the output channel.
// Returns true if sent/queued, false if dropped.
func (s *SketchScript) sendMessage(msgType shared.MessageType, content string) bool {
	msg := shared.Message{Type: msgType, Content: content, SessionID: s.sessionID}
	return s.sendMessageObject(msg)
}

// sendMessageObject sends a pre-constructed message without blocking the
// interpreter. Returns true if sent/queued, false if dropped or when no
// channel is attached.
func (s *SketchScript) sendMessageObject(msg shared.Message) bool {
	if s.OutputChan == nil {
		return false
	}
	if msg.SessionID == "" {
		msg.SessionID = s.sessionID
	}

	select {
	case s.OutputChan <- msg:
		return true
	default:
		logger.Warn(logger.AreaInterpreter, "output channel full, message dropped (type=%d, session=%s)",
			int(msg.Type), s.sessionID)
		return false
	}
}

// SendError reports a run-aborting error to the frontend.
func (s *SketchScript) SendError(err error) {
	msg := shared.Message{
		Type:      shared.MessageTypeError,
		Content:   err.Error(),
		SessionID: s.sessionID,
	}
	if se, ok := err.(*SketchError); ok {
		msg.ErrorCategory = se.Category
		msg.ErrorDetail = se.Detail
	}
	s.sendMessageObject(msg)
}

// SendCursor reports the final cursor state after a run.
func (s *SketchScript) SendCursor() {
	c := s.Cursor()
	s.sendMessageObject(shared.Message{
		Type:      shared.MessageTypeCursor,
		SessionID: s.sessionID,
		X:         c.X,
		Y:         c.Y,
		Angle:     c.Angle,
		Color:     c.Color.Hex(),
	})
}
