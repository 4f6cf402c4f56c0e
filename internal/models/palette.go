package models

// AvatarColor is one entry of the fixed avatar palette.
type AvatarColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// DefaultAvatarColors is the fixed 25-color avatar palette. Order matters:
// the palette index derived from an id must stay stable across releases.
var DefaultAvatarColors = []AvatarColor{
	{Name: "RoseBud", Hex: "#FFAB91"},
	{Name: "SkyBlue", Hex: "#80DEEA"},
	{Name: "SweetPink", Hex: "#EF9A9A"},
	{Name: "Wisteria", Hex: "#CE93D8"},
	{Name: "Feijoa", Hex: "#AED581"},
	{Name: "EchoBlue", Hex: "#9FA7DF"},
	{Name: "Martini", Hex: "#BCAAA4"},
	{Name: "GoldenGlow", Hex: "#FFE082"},
	{Name: "Illusion", Hex: "#F48FB1"},
	{Name: "Grandis", Hex: "#FCCC75"},
	{Name: "MarigoldYellow", Hex: "#FDED72"},
	{Name: "IceCold", Hex: "#A9EFF2"},
	{Name: "Mischka", Hex: "#D1D5DB"},
	{Name: "Goldenrod", Hex: "#FCCC75"},
	{Name: "Ghost", Hex: "#C7C9D9"},
	{Name: "TurquoiseBlue", Hex: "#73DFE7"},
	{Name: "FrenchLilac", Hex: "#DDA5E9"},
	{Name: "Malibu", Hex: "#9DBFF9"},
	{Name: "Aluminium", Hex: "#ADB3BC"},
	{Name: "VividTangerine", Hex: "#FF8080"},
	{Name: "Shamrock", Hex: "#39D98A"},
	{Name: "DustyGray", Hex: "#949494"},
	{Name: "RedOrange", Hex: "#FF3B30"},
	{Name: "GreenHaze", Hex: "#05A660"},
	{Name: "AzureRadiance", Hex: "#007AFF"},
}

// AvatarColorFor deterministically assigns a palette color to an id.
func AvatarColorFor(id string) AvatarColor {
	return DefaultAvatarColors[paletteIndex(id, len(DefaultAvatarColors))]
}

// paletteIndex hashes the last five scalars of the id (walked in reverse)
// with h = (h<<5) - h + scalar, wrapping at 32 bits, and normalizes the
// result to a non-negative index below n.
func paletteIndex(id string, n int) int {
	var h int32
	runes := []rune(id)
	for i := 0; i < 5 && i < len(runes); i++ {
		r := runes[len(runes)-1-i]
		h = (h << 5) - h + int32(r)
	}
	return ((int(h) % n) + n) % n
}
