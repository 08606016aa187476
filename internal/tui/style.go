package tui

// Style names an SGR on/off pair from the style table
type Style uint8

const (
	StyleNone Style = iota
	StyleBold
	StyleDim
	StyleHighlight
	StyleAccent
	StyleHeader
	StyleMatch
	StyleHint
	StyleSelected
	StyleDanger
	StyleCursor
	styleCount
)

type sgrPair struct {
	on  string
	off string
}

// styleTable maps each Style to its exact byte sequences
var styleTable = [styleCount]sgrPair{
	StyleNone:      {},
	StyleBold:      {Bold, ResetIntensity},
	StyleDim:       {"\x1b[38;5;245m", ResetFg},
	StyleHighlight: {"\x1b[1;33m", ResetFg + ResetIntensity},
	StyleAccent:    {"\x1b[1;38;5;214m", ResetFg + ResetIntensity},
	StyleHeader:    {"\x1b[1;38;5;114m", ResetFg + ResetIntensity},
	StyleMatch:     {"\x1b[1;38;5;226m", ResetFg + ResetIntensity},
	StyleHint:      {"\x1b[38;5;244m", ResetFg},
	StyleSelected:  {"\x1b[48;5;238m", ResetBg},
	StyleDanger:    {"\x1b[48;5;52m", ResetBg},
	StyleCursor:    {ReverseOn, ReverseOff},
}

// On returns the sequence that starts the style
func (s Style) On() string {
	if s >= styleCount {
		return ""
	}
	return styleTable[s].on
}

// Off returns the sequence that ends the style
func (s Style) Off() string {
	if s >= styleCount {
		return ""
	}
	return styleTable[s].off
}

// Wrap surrounds text with the style's sequences. Empty text stays empty and
// text is returned as-is when colors are disabled.
func (s Style) Wrap(text string, colors bool) string {
	if text == "" || !colors || s == StyleNone {
		return text
	}
	return s.On() + text + s.Off()
}
