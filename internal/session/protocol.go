package session

import (
	"encoding/json"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
	"github.com/pressproof/pressproof/backend-go/internal/geometry"
)

// Message is the WebSocket envelope between the host page and a session.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// State push after every mutating call
	TypeChange = "change"

	// Pointer/touch event injection
	TypePointerDown   = "pointer.down"
	TypePointerMove   = "pointer.move"
	TypePointerUp     = "pointer.up"
	TypePointerCancel = "pointer.cancel"

	// Programmatic control surface
	TypeOpSelect          = "op.select"
	TypeOpDelete          = "op.delete"
	TypeOpDeleteSelected  = "op.deleteSelected"
	TypeOpBringToFront    = "op.bringToFront"
	TypeOpSendToBack      = "op.sendToBack"
	TypeOpReorder         = "op.reorder"
	TypeOpUpdateTransform = "op.updateTransform"
	TypeOpSetActiveView   = "op.setActiveView"
	TypeOpSetDisplayScale = "op.setDisplayScale"
	TypeOpAddImage        = "op.addImage"
)

// TargetPayload carries an image id for select/delete/z-order ops.
type TargetPayload struct {
	ID string `json:"id"`
}

// ReorderPayload moves the image at From to To in the active collection.
type ReorderPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// UpdateTransformPayload is a direct transform write outside the gesture
// flow. It goes through the same clamp path as gestures.
type UpdateTransformPayload struct {
	ID        string             `json:"id"`
	Transform geometry.Transform `json:"transform"`
}

// SetActiveViewPayload switches the collection gestures operate on.
type SetActiveViewPayload struct {
	View editor.View `json:"view"`
}

// SetDisplayScalePayload updates the host's display scale factor.
type SetDisplayScalePayload struct {
	Scale float64 `json:"scale"`
}

// ErrorPayload carries a human-readable message for upload and decode
// failures. Constraint handling never produces one.
type ErrorPayload struct {
	Message string `json:"message"`
}
