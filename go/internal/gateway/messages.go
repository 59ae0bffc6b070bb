package gateway

const (
	MessageTypeView     = "view"
	MessageTypeNavigate = "navigate"
)

// ServerMessage is everything the host sends down a screen socket.
type ServerMessage struct {
	Type     string `json:"type"`
	Screen   string `json:"screen,omitempty"`
	Location string `json:"location"`
	View     any    `json:"view,omitempty"`
}
