package speech

import (
	"fmt"
	"strings"
)

// Style is an interpretation style for the narration.
type Style string

const (
	StyleSales         Style = "sales"
	StyleFriendly      Style = "friendly"
	StyleInstitutional Style = "institutional"
)

// Styles lists every style in display order.
func Styles() []Style {
	return []Style{StyleSales, StyleFriendly, StyleInstitutional}
}

// ParseStyle accepts a style name case-insensitively.
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	switch style {
	case StyleSales, StyleFriendly, StyleInstitutional:
		return style, nil
	}

	return "", fmt.Errorf("unknown style %q", s)
}

// Direction is the delivery instruction given to the speech model.
func (s Style) Direction() string {
	switch s {
	case StyleSales:
		return "Energetic, persuasive salesperson voice."
	case StyleFriendly:
		return "Warm, close and friendly voice."
	case StyleInstitutional:
		return "Sober, elegant institutional voice."
	default:
		return "Clear, natural radio announcer voice."
	}
}

func (s Style) String() string { return string(s) }
