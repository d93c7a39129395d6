package shared

// MessageType identifies a websocket message for the canvas frontend.
type MessageType int

// Message type values are mirrored in the frontend (sketchcanvas.js
// RESPONSE_TYPE_MAP) and must not be renumbered.
const (
	MessageTypeText     MessageType = 0 // plain text output (syntax help, notices)
	MessageTypeClear    MessageType = 1 // clear the canvas before a run
	MessageTypeGraphics MessageType = 2 // drawing primitive (Command + Params)
	MessageTypeSession  MessageType = 3 // session ID handover
	MessageTypeError    MessageType = 4 // interpreter error, run aborted
	MessageTypeRunState MessageType = 5 // run lifecycle ("running", "done", "stopped", "error")
	MessageTypeCursor   MessageType = 6 // final cursor state after a run
)

// Message is the envelope sent to the canvas frontend over the websocket.
// Field names match the direct property accesses in sketchcanvas.js.
type Message struct {
	Type    MessageType `json:"type"`
	Content string      `json:"content,omitempty"`

	// For SESSION
	SessionID string `json:"sessionId,omitempty"`

	// For GRAPHICS: Command is the primitive name ("LINE", "CIRCLE", "RECT",
	// "POLYGON") and Params carries its named operands. The frontend reads
	// response.command and response.params.
	Command string                 `json:"command,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`

	// For ERROR
	ErrorCategory string `json:"errorCategory,omitempty"`
	ErrorDetail   string `json:"errorDetail,omitempty"`

	// For RUNSTATE
	RunState string `json:"runState,omitempty"`

	// For CURSOR
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Angle float64 `json:"angle,omitempty"`
	Color string  `json:"color,omitempty"`
}
