package bot

import (
	"fmt"
	"strings"

	"dira-chat-backend/internal/types"
)

// FlowState is the single state tag of a slot-filling session. Exactly one
// state is active at a time; the two chains (budget gathering and
// interest-in-listing) share the enumeration and only the router starts
// either one, always from StateIdle.
type FlowState int

const (
	StateIdle FlowState = iota
	StateAwaitingBudget
	StateAwaitingRooms
	StateAwaitingAptNumber
	StateAwaitingPhone
	StateAwaitingFirstName
	StateAwaitingLastName
	StateAwaitingFeedback
)

func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingBudget:
		return "awaiting_budget"
	case StateAwaitingRooms:
		return "awaiting_rooms"
	case StateAwaitingAptNumber:
		return "awaiting_apt_number"
	case StateAwaitingPhone:
		return "awaiting_phone"
	case StateAwaitingFirstName:
		return "awaiting_first_name"
	case StateAwaitingLastName:
		return "awaiting_last_name"
	case StateAwaitingFeedback:
		return "awaiting_feedback"
	}
	return "unknown"
}

// Session is one client's slot-filling record. Slot values are stored
// verbatim as typed by the user; nothing is validated.
type Session struct {
	State           FlowState
	Budget          string
	RoomsWanted     string
	ApartmentNumber string
	Phone           string
	FirstName       string
	LastName        string
	// SearchShown marks that the last idle-state reply listed apartments,
	// so a bare yes/no answer is feedback rather than noise.
	SearchShown bool
}

// advance consumes one message while a flow is active and returns the reply
// plus the successor session. The message becomes the current slot's value
// as-is. Reaching the end of a chain resets the session to a cleared idle
// state.
func advance(s Session, msg string) ([]types.ResponseItem, Session) {
	switch s.State {
	case StateAwaitingBudget:
		s.Budget = msg
		s.State = StateAwaitingRooms
		return []types.ResponseItem{types.TextMessage{Text: msgAskRooms}}, s
	case StateAwaitingRooms:
		s.RoomsWanted = msg
		summary := fmt.Sprintf(msgBudgetSummaryFmt, s.Budget, s.RoomsWanted)
		return []types.ResponseItem{types.TextMessage{Text: summary}}, Session{}
	case StateAwaitingAptNumber:
		s.ApartmentNumber = msg
		s.State = StateAwaitingPhone
		return []types.ResponseItem{types.TextMessage{Text: msgAskPhone}}, s
	case StateAwaitingPhone:
		s.Phone = msg
		s.State = StateAwaitingFirstName
		return []types.ResponseItem{types.TextMessage{Text: msgAskFirstName}}, s
	case StateAwaitingFirstName:
		s.FirstName = msg
		s.State = StateAwaitingLastName
		return []types.ResponseItem{types.TextMessage{Text: msgAskLastName}}, s
	case StateAwaitingLastName:
		s.LastName = msg
		s.State = StateAwaitingFeedback
		conf := fmt.Sprintf(msgLeadConfirmedFmt, s.FirstName, s.LastName, s.ApartmentNumber, s.Phone)
		return []types.ResponseItem{
			types.TextMessage{Text: conf},
			types.TextMessage{Text: msgAskFeedback},
		}, s
	case StateAwaitingFeedback:
		// The answer is inspected but never stored; either way the session
		// is fully cleared.
		if strings.TrimSpace(msg) == tokenYes {
			return []types.ResponseItem{
				types.TextMessage{Text: msgFeedbackThanks},
				types.NewRestartPrompt(msgRestart),
			}, Session{}
		}
		return []types.ResponseItem{
			types.TextMessage{Text: msgFeedbackSorry},
			types.NewRestartPrompt(msgRestart),
		}, Session{}
	}
	return nil, s
}
