package signal

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/osokin/roulette/internal/core"
	"github.com/osokin/roulette/internal/domain"
)

// Shape checks in this file are advisory: the relay is a best-effort
// pass-through, so a frame that fails them is logged and forwarded
// untouched anyway.

func (ctl *Controller) handleChat(id domain.ClientID, data []byte) {
	var p core.ChatMessage
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("client", string(id)).Msg("malformed chat payload")
	}
	ctl.Orch.Relay(id, data)
}

// Offer and answer frames carry {type, sdp} and unmarshal directly into a
// pion SessionDescription; the event tag doubles as the SDP type.
func (ctl *Controller) handleOffer(id domain.ClientID, data []byte) {
	var sd webrtc.SessionDescription
	if err := json.Unmarshal(data, &sd); err != nil || sd.Type != webrtc.SDPTypeOffer || sd.SDP == "" {
		log.Warn().Err(err).Str("module", "signal").Str("client", string(id)).Msg("suspect offer payload")
	}
	ctl.Orch.Relay(id, data)
}

func (ctl *Controller) handleAnswer(id domain.ClientID, data []byte) {
	var sd webrtc.SessionDescription
	if err := json.Unmarshal(data, &sd); err != nil || sd.Type != webrtc.SDPTypeAnswer || sd.SDP == "" {
		log.Warn().Err(err).Str("module", "signal").Str("client", string(id)).Msg("suspect answer payload")
	}
	ctl.Orch.Relay(id, data)
}

func (ctl *Controller) handleCandidate(id domain.ClientID, data []byte) {
	var ci webrtc.ICECandidateInit
	if err := json.Unmarshal(data, &ci); err != nil || ci.Candidate == "" {
		log.Warn().Err(err).Str("module", "signal").Str("client", string(id)).Msg("suspect ice candidate payload")
	}
	ctl.Orch.Relay(id, data)
}
