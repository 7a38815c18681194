package types

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Results []ResponseItem `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ResponseItem is one entry in a chat reply. The concrete shapes are
// TextMessage, RestartPrompt and ApartmentCard; the front-end picks the
// rendering by the fields present on the wire.
type ResponseItem interface {
	responseItem()
}

type TextMessage struct {
	Text string `json:"text"`
}

func (TextMessage) responseItem() {}

// RestartPrompt is a message with a "start new chat" action attached.
type RestartPrompt struct {
	Text   string `json:"text"`
	Button bool   `json:"button"`
}

func (RestartPrompt) responseItem() {}

func NewRestartPrompt(text string) RestartPrompt {
	return RestartPrompt{Text: text, Button: true}
}

// ApartmentCard carries a raw listing record rendered as a property card.
type ApartmentCard struct {
	Zone    string `json:"zone"`
	City    string `json:"city"`
	Address string `json:"address"`
	Price   *int   `json:"price,omitempty"`
	Floor   *int   `json:"floor,omitempty"`
	Rooms   *int   `json:"rooms,omitempty"`
	Size    *int   `json:"size,omitempty"`
}

func (ApartmentCard) responseItem() {}
