package state

import "github.com/lalith-99/teamchat/internal/models"

type MessageReceived struct {
	messageAction
	Message models.Message
}

type MessageHistoryRetrieved struct {
	messageAction
	// Messages per conversation channel, as returned by the service.
	Messages map[string][]models.Message
}

type SendMessageFailed struct {
	messageAction
	ConversationID string
	Err            error
}

type HistoryFetchFailed struct {
	messageAction
	Channels []string
	Err      error
}

// MessageLog is one conversation's messages in arrival order. Appends
// de-duplicate by timetoken: inserting a timetoken already present is a
// no-op.
type MessageLog struct {
	entries []models.Message
	seen    map[models.Timetoken]struct{}
}

func newMessageLog() *MessageLog {
	return &MessageLog{seen: make(map[models.Timetoken]struct{})}
}

func (l *MessageLog) append(m models.Message) {
	if _, dup := l.seen[m.Timetoken]; dup {
		return
	}
	l.seen[m.Timetoken] = struct{}{}
	l.entries = append(l.entries, m)
}

// Messages returns a copy of the log in arrival order. Callers sort by
// timetoken when display order matters.
func (l *MessageLog) Messages() []models.Message {
	return append([]models.Message(nil), l.entries...)
}

// Len is the number of distinct messages in the log.
func (l *MessageLog) Len() int {
	return len(l.entries)
}

func (l *MessageLog) clone() *MessageLog {
	next := &MessageLog{
		entries: append([]models.Message(nil), l.entries...),
		seen:    make(map[models.Timetoken]struct{}, len(l.seen)),
	}
	for tt := range l.seen {
		next.seen[tt] = struct{}{}
	}
	return next
}

// MessageState maps conversation id to its message log.
type MessageState struct {
	ByConversationID map[string]*MessageLog
}

func newMessageState() MessageState {
	return MessageState{ByConversationID: make(map[string]*MessageLog)}
}

func (s MessageState) clone() MessageState {
	next := MessageState{ByConversationID: make(map[string]*MessageLog, len(s.ByConversationID))}
	for id, log := range s.ByConversationID {
		next.ByConversationID[id] = log.clone()
	}
	return next
}

func (s MessageState) log(conversationID string) *MessageLog {
	l := s.ByConversationID[conversationID]
	if l == nil {
		l = newMessageLog()
		s.ByConversationID[conversationID] = l
	}
	return l
}

func reduceMessages(action MessageAction, s *MessageState) {
	switch a := action.(type) {
	case MessageReceived:
		s.log(a.Message.ConversationID).append(a.Message)
	case MessageHistoryRetrieved:
		for conversationID, msgs := range a.Messages {
			l := s.log(conversationID)
			for _, m := range msgs {
				l.append(m)
			}
		}
	default:
		// Send failures are surfaced to callers via the command's
		// completion; the log keeps only delivered messages.
	}
}
