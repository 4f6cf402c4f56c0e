package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// ContentKind tags the closed set of message content variants.
type ContentKind string

const (
	ContentText    ContentKind = "text"
	ContentEmoji   ContentKind = "emoji"
	ContentUnknown ContentKind = "unknown"
)

// MessageContent is a closed variant: plain text, emoji-only text, or an
// unrecognized payload retained verbatim for forward compatibility.
type MessageContent struct {
	kind ContentKind
	text string
	raw  json.RawMessage
}

// TextContent builds content from composed text, re-tagging as emoji when
// the string consists solely of emoji grapheme clusters.
func TextContent(s string) MessageContent {
	if ContainsOnlyEmoji(s) {
		return MessageContent{kind: ContentEmoji, text: s}
	}
	return MessageContent{kind: ContentText, text: s}
}

// EmojiContent builds emoji content unconditionally.
func EmojiContent(s string) MessageContent {
	return MessageContent{kind: ContentEmoji, text: s}
}

// UnknownContent wraps a payload whose type was not recognized. The raw
// bytes are the entire wire payload, kept for round-trip re-encoding.
func UnknownContent(raw json.RawMessage) MessageContent {
	return MessageContent{kind: ContentUnknown, raw: append(json.RawMessage(nil), raw...)}
}

func (c MessageContent) Kind() ContentKind { return c.kind }

// Text returns the textual body for text and emoji content. Unknown content
// has no textual body.
func (c MessageContent) Text() string { return c.text }

// Raw returns the verbatim wire payload for unknown content, nil otherwise.
func (c MessageContent) Raw() json.RawMessage { return c.raw }

func (c MessageContent) String() string {
	if c.kind == ContentUnknown {
		return string(c.raw)
	}
	return c.text
}

// MessagePayload is the one concrete wire format in scope:
//
//	{ "senderId": "user_...", "type": "text", "text": "Hello!" }
//
// Decoding re-tags all-emoji text as emoji content; any unrecognized type is
// preserved opaquely. Unknown content is receive-only: marshaling emits the
// retained wire bytes unchanged, and the send path never constructs it.
type MessagePayload struct {
	SenderID string
	Content  MessageContent
}

type wirePayload struct {
	SenderID string          `json:"senderId"`
	Type     ContentKind     `json:"type"`
	Text     json.RawMessage `json:"text"`
}

var errNoSender = errors.New("message payload missing senderId")

func (p *MessagePayload) UnmarshalJSON(data []byte) error {
	var wire wirePayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode message payload: %w", err)
	}
	if wire.SenderID == "" {
		return errNoSender
	}
	p.SenderID = wire.SenderID

	switch wire.Type {
	case ContentText:
		var text string
		if err := json.Unmarshal(wire.Text, &text); err != nil {
			return fmt.Errorf("decode text body: %w", err)
		}
		p.Content = TextContent(text)
	case ContentEmoji:
		var text string
		if err := json.Unmarshal(wire.Text, &text); err != nil {
			return fmt.Errorf("decode emoji body: %w", err)
		}
		p.Content = EmojiContent(text)
	default:
		p.Content = UnknownContent(data)
	}
	return nil
}

func (p MessagePayload) MarshalJSON() ([]byte, error) {
	if p.Content.kind == ContentUnknown {
		return append([]byte(nil), p.Content.raw...), nil
	}
	text, err := json.Marshal(p.Content.text)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wirePayload{
		SenderID: p.SenderID,
		Type:     p.Content.kind,
		Text:     text,
	})
}

// Message is a single chat message within a conversation. The timetoken is
// unique within the conversation and orders messages ascending.
type Message struct {
	ConversationID string         `json:"conversationId"`
	Timetoken      Timetoken      `json:"timetoken"`
	Payload        MessagePayload `json:"message"`
}

func (m Message) SenderID() string {
	return m.Payload.SenderID
}

// SortMessages orders messages ascending by timetoken.
func SortMessages(msgs []Message) {
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].Timetoken < msgs[j].Timetoken
	})
}
