package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagePayloadDecodeText(t *testing.T) {
	data := []byte(`{"senderId":"user_1","type":"text","text":"Hello!"}`)

	var p MessagePayload
	require.NoError(t, json.Unmarshal(data, &p))

	assert.Equal(t, "user_1", p.SenderID)
	assert.Equal(t, ContentText, p.Content.Kind())
	assert.Equal(t, "Hello!", p.Content.Text())
}

func TestMessagePayloadDecodeRetagsAllEmojiText(t *testing.T) {
	data := []byte(`{"senderId":"user_1","type":"text","text":"🤯"}`)

	var p MessagePayload
	require.NoError(t, json.Unmarshal(data, &p))

	assert.Equal(t, ContentEmoji, p.Content.Kind())
	assert.Equal(t, "🤯", p.Content.Text())
}

func TestMessagePayloadDecodeEmojiType(t *testing.T) {
	data := []byte(`{"senderId":"user_1","type":"emoji","text":"👍👍"}`)

	var p MessagePayload
	require.NoError(t, json.Unmarshal(data, &p))

	assert.Equal(t, ContentEmoji, p.Content.Kind())
}

func TestMessagePayloadUnknownTypeRoundTrips(t *testing.T) {
	data := []byte(`{"senderId":"user_1","type":"poll","question":"lunch?","options":["a","b"]}`)

	var p MessagePayload
	require.NoError(t, json.Unmarshal(data, &p))

	assert.Equal(t, ContentUnknown, p.Content.Kind())
	assert.Equal(t, "user_1", p.SenderID)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(out))
}

func TestMessagePayloadMissingSenderFails(t *testing.T) {
	var p MessagePayload
	err := json.Unmarshal([]byte(`{"type":"text","text":"hi"}`), &p)
	require.Error(t, err)
}

func TestMessagePayloadEncodeText(t *testing.T) {
	p := MessagePayload{SenderID: "user_1", Content: TextContent("Hello!")}

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"senderId":"user_1","type":"text","text":"Hello!"}`, string(out))
}

func TestTextContentRetagsEmoji(t *testing.T) {
	assert.Equal(t, ContentEmoji, TextContent("🎉🎉").Kind())
	assert.Equal(t, ContentText, TextContent("party 🎉").Kind())
	assert.Equal(t, ContentText, TextContent("").Kind())
}

func TestSortMessages(t *testing.T) {
	msgs := []Message{
		{Timetoken: 300},
		{Timetoken: 100},
		{Timetoken: 200},
	}
	SortMessages(msgs)

	assert.Equal(t, Timetoken(100), msgs[0].Timetoken)
	assert.Equal(t, Timetoken(200), msgs[1].Timetoken)
	assert.Equal(t, Timetoken(300), msgs[2].Timetoken)
}
