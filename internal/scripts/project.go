package scripts

import (
	"errors"
	"fmt"
	"strings"
)

// Format is the kind of spot being written.
type Format string

const (
	FormatAd      Format = "ad"
	FormatRadioID Format = "radio_id"
	FormatPodcast Format = "podcast"
)

// Formats lists every format in display order.
func Formats() []Format {
	return []Format{FormatAd, FormatRadioID, FormatPodcast}
}

// ParseFormat accepts a format name; empty means FormatAd.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatAd, nil
	case FormatAd, FormatRadioID, FormatPodcast:
		return f, nil
	}

	return "", fmt.Errorf("unknown format %q", s)
}

// Describe returns the brief used in the prompt.
func (f Format) Describe() string {
	switch f {
	case FormatRadioID:
		return "a short radio station ID of 5-10 seconds"
	case FormatPodcast:
		return "a podcast intro of 15-20 seconds"
	default:
		return "a radio spot of 20-30 seconds"
	}
}

// ErrIncompleteProject is returned when a project lacks a category or briefing.
var ErrIncompleteProject = errors.New("project needs a category and a briefing")

// Project is the client brief scripts are written for.
type Project struct {
	Name     string
	Category string
	Location string
	Vibe     string
	Briefing string
	Format   Format
	Voice    string
}

// Validate checks the fields the prompt cannot do without.
func (p Project) Validate() error {
	if strings.TrimSpace(p.Category) == "" || strings.TrimSpace(p.Briefing) == "" {
		return ErrIncompleteProject
	}

	return nil
}

// DisplayName is the project name, or the category when unnamed.
func (p Project) DisplayName() string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}

	return strings.TrimSpace(p.Category)
}

// Script is one generated ad script.
type Script struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	SFX   string `json:"sfx"`
	Tone  string `json:"tone"`
}
