package models

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// ContainsOnlyEmoji reports whether s is non-empty and every grapheme
// cluster renders as an emoji. A cluster counts as emoji when it is a
// single pictographic scalar, or a multi-scalar sequence held together by
// join controls or variation selectors (ZWJ families, keycaps, flags).
func ContainsOnlyEmoji(s string) bool {
	if s == "" {
		return false
	}
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if !isEmojiCluster(cluster) {
			return false
		}
	}
	return true
}

func isEmojiCluster(cluster string) bool {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return false
	}
	if len(runes) == 1 {
		return isEmojiScalar(runes[0])
	}
	all := true
	for _, r := range runes {
		if isJoinControl(r) || isVariationSelector(r) || r == combiningKeycap {
			return true
		}
		if !isEmojiScalar(r) {
			all = false
		}
	}
	return all
}

const combiningKeycap = 0x20E3

func isJoinControl(r rune) bool {
	return r == 0x200D || r == 0x200C
}

func isVariationSelector(r rune) bool {
	return r >= 0xFE00 && r <= 0xFE0F
}

// emojiPresentation covers the scalar blocks that default to emoji
// presentation and are not classified as Symbol/Other by the unicode tables.
var emojiPresentation = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1}, // regional indicators
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // misc symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport and map
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1}, // symbols extended-A
	},
}

func isEmojiScalar(r rune) bool {
	return unicode.Is(unicode.So, r) || unicode.Is(emojiPresentation, r)
}
