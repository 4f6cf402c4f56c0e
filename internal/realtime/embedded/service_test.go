package embedded

import (
	"testing"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/observ"
	"github.com/lalith-99/teamchat/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return New(Options{Logger: observ.Nop()})
}

func TestHandleMessageDecodesEnvelope(t *testing.T) {
	s := newTestService()

	var got []realtime.MessageEvent
	remove := s.AddListener(realtime.Listener{
		OnMessage: func(ev realtime.MessageEvent) { got = append(got, ev) },
	})
	defer remove()

	s.handleMessage("c1", []byte(`{"timetoken":100,"message":{"senderId":"u1","type":"text","text":"hi"}}`))

	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ConversationID)
	assert.Equal(t, models.Timetoken(100), got[0].Timetoken)
	assert.Equal(t, "u1", got[0].Payload.SenderID)
	assert.Equal(t, models.ContentText, got[0].Payload.Content.Kind())
}

func TestHandleMessagePreservesUnknownPayload(t *testing.T) {
	s := newTestService()

	var got []realtime.MessageEvent
	remove := s.AddListener(realtime.Listener{
		OnMessage: func(ev realtime.MessageEvent) { got = append(got, ev) },
	})
	defer remove()

	s.handleMessage("c1", []byte(`{"timetoken":100,"message":{"senderId":"u1","type":"poll","question":"?"}}`))

	require.Len(t, got, 1)
	assert.Equal(t, models.ContentUnknown, got[0].Payload.Content.Kind())
}

func TestHandleMessageDropsMalformedEvents(t *testing.T) {
	s := newTestService()

	var got []realtime.MessageEvent
	remove := s.AddListener(realtime.Listener{
		OnMessage: func(ev realtime.MessageEvent) { got = append(got, ev) },
	})
	defer remove()

	s.handleMessage("c1", []byte(`not json`))
	s.handleMessage("c1", []byte(`{"timetoken":100,"message":{"type":"text","text":"no sender"}}`))

	assert.Empty(t, got)
}

func TestHandlePresenceDecodesEnvelope(t *testing.T) {
	s := newTestService()

	var got []realtime.PresenceEvent
	remove := s.AddListener(realtime.Listener{
		OnPresence: func(ev realtime.PresenceEvent) { got = append(got, ev) },
	})
	defer remove()

	s.handlePresence("c1", []byte(`{"action":"join","uuid":"u1","occupancy":3}`))

	require.Len(t, got, 1)
	assert.Equal(t, realtime.PresenceJoin, got[0].Action)
	assert.Equal(t, "u1", got[0].UserID)
	assert.Equal(t, 3, got[0].Occupancy)
}

func TestRemovedListenerStopsReceiving(t *testing.T) {
	s := newTestService()

	count := 0
	remove := s.AddListener(realtime.Listener{
		OnMessage: func(realtime.MessageEvent) { count++ },
	})

	payload := []byte(`{"timetoken":1,"message":{"senderId":"u1","type":"text","text":"x"}}`)
	s.handleMessage("c1", payload)
	remove()
	s.handleMessage("c1", payload)

	assert.Equal(t, 1, count)
}
