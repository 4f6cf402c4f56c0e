package state

import "github.com/lalith-99/teamchat/internal/models"

// PresenceVerb is the kind of an inbound presence event.
type PresenceVerb string

const (
	PresenceJoin     PresenceVerb = "join"
	PresenceLeave    PresenceVerb = "leave"
	PresenceTimeout  PresenceVerb = "timeout"
	PresenceInterval PresenceVerb = "interval"
)

type HereNowRetrieved struct {
	presenceAction
	// Presence per conversation channel; each snapshot replaces the
	// channel's previous one wholesale.
	Presence map[string]models.PresenceSnapshot
}

type HereNowFailed struct {
	presenceAction
	Channels []string
	Err      error
}

type PresenceEventReceived struct {
	presenceAction
	ConversationID string
	Verb           PresenceVerb
	UserID         string
	Occupancy      int
	// OccupantIDs is set on interval events and replaces the occupant set.
	OccupantIDs []string
}

// ChannelPresence is one conversation's live occupancy.
type ChannelPresence struct {
	Occupants map[string]struct{}
	Occupancy int
}

func (p ChannelPresence) clone() ChannelPresence {
	next := ChannelPresence{
		Occupants: make(map[string]struct{}, len(p.Occupants)),
		Occupancy: p.Occupancy,
	}
	for id := range p.Occupants {
		next.Occupants[id] = struct{}{}
	}
	return next
}

func occupantsFrom(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// PresenceState maps conversation id to its occupancy snapshot.
type PresenceState struct {
	ByConversationID map[string]ChannelPresence
}

func newPresenceState() PresenceState {
	return PresenceState{ByConversationID: make(map[string]ChannelPresence)}
}

func (s PresenceState) clone() PresenceState {
	next := PresenceState{ByConversationID: make(map[string]ChannelPresence, len(s.ByConversationID))}
	for id, p := range s.ByConversationID {
		next.ByConversationID[id] = p.clone()
	}
	return next
}

func reducePresence(action PresenceAction, s *PresenceState) {
	switch a := action.(type) {
	case HereNowRetrieved:
		for conversationID, snap := range a.Presence {
			s.ByConversationID[conversationID] = ChannelPresence{
				Occupants: occupantsFrom(snap.OccupantIDs),
				Occupancy: snap.Occupancy,
			}
		}
	case PresenceEventReceived:
		p, ok := s.ByConversationID[a.ConversationID]
		if !ok {
			p = ChannelPresence{Occupants: make(map[string]struct{})}
		}
		switch a.Verb {
		case PresenceJoin:
			p.Occupants[a.UserID] = struct{}{}
		case PresenceLeave, PresenceTimeout:
			delete(p.Occupants, a.UserID)
		case PresenceInterval:
			p.Occupants = occupantsFrom(a.OccupantIDs)
		}
		if a.Occupancy >= 0 {
			p.Occupancy = a.Occupancy
		} else {
			p.Occupancy = len(p.Occupants)
		}
		s.ByConversationID[a.ConversationID] = p
	default:
	}
}
