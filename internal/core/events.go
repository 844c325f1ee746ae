package core

import "fmt"

// Wire event tags. The names follow the original client protocol, so the
// inbound and outbound sets are not symmetric.
const (
	EventFindPartner  = "connectToRandomUser"
	EventNext         = "next"
	EventChatMessage  = "messageFromUser"
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventICECandidate = "ice_candidate"
	EventStreamReady  = "localStreamSet"

	EventMatchFound       = "matchFound"
	EventInitiator        = "youAreInitiator"
	EventNotEnoughUsers   = "notEnoughUsers"
	EventUserDisconnected = "userDisconnected"
	EventError            = "error"
)

// Envelope is the minimal shape every inbound frame must carry. The rest
// of the payload is decoded per tag at the adapter boundary.
type Envelope struct {
	Type string `json:"type"`
}

// Notice carries a human-readable server message (matchFound,
// notEnoughUsers, userDisconnected, error).
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// InitiatorNotice tells a freshly matched client whether it opens the call.
type InitiatorNotice struct {
	Type      string `json:"type"`
	Initiator bool   `json:"initiator"`
}

// ChatMessage is the chat payload, relayed verbatim between the two
// members of a session.
type ChatMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Client-visible message strings. Kept word for word from the original
// service so existing clients keep working.
const (
	MsgMatched     = "You are matched with another user"
	MsgPartnerGone = "Other user has disconnected"
	MsgMatchFailed = "An error occurred while matching. Please try again."
)

// MsgOnline reports the current queue size to a client that could not be
// paired yet.
func MsgOnline(n int) string {
	return fmt.Sprintf("Only %d users online", n)
}
