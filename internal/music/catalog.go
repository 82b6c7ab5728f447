package music

import (
	"errors"
	"fmt"
	"strings"
)

// Vibe is one mood of the fixed music library.
type Vibe struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MusicURL    string `yaml:"music_url"`
}

// DefaultVibes is the stock library used when the config names none.
func DefaultVibes() []Vibe {
	return []Vibe{
		{
			ID:          "litoral",
			Name:        "Coastal",
			Description: "Relaxed acoustic, sea breeze",
			MusicURL:    "https://assets.mixkit.co/music/preview/mixkit-sun-and-his-daughter-580.mp3",
		},
		{
			ID:          "retail",
			Name:        "Retail",
			Description: "Upbeat pop, store promos",
			MusicURL:    "https://assets.mixkit.co/music/preview/mixkit-happy-times-158.mp3",
		},
		{
			ID:          "epic",
			Name:        "Epic",
			Description: "Cinematic build, big announcements",
			MusicURL:    "https://assets.mixkit.co/music/preview/mixkit-epical-drums-01-676.mp3",
		},
		{
			ID:          "chill",
			Name:        "Chill",
			Description: "Lo-fi, soft background",
			MusicURL:    "https://assets.mixkit.co/music/preview/mixkit-dreaming-big-31.mp3",
		},
	}
}

// ErrUnknownVibe is returned for IDs outside the catalog.
var ErrUnknownVibe = errors.New("unknown vibe")

// Catalog looks vibes up by ID.
type Catalog struct {
	vibes []Vibe
	byID  map[string]Vibe
}

// NewCatalog indexes vibes. Duplicate IDs keep the first entry.
func NewCatalog(vibes []Vibe) *Catalog {
	if len(vibes) == 0 {
		vibes = DefaultVibes()
	}

	c := &Catalog{byID: make(map[string]Vibe, len(vibes))}
	for _, v := range vibes {
		id := strings.ToLower(strings.TrimSpace(v.ID))
		if id == "" {
			continue
		}
		if _, dup := c.byID[id]; dup {
			continue
		}
		v.ID = id
		c.byID[id] = v
		c.vibes = append(c.vibes, v)
	}

	return c
}

// Get returns the vibe with id.
func (c *Catalog) Get(id string) (Vibe, error) {
	v, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Vibe{}, fmt.Errorf("%w: %q", ErrUnknownVibe, id)
	}

	return v, nil
}

// Default returns the first configured vibe.
func (c *Catalog) Default() Vibe {
	if len(c.vibes) == 0 {
		return Vibe{}
	}

	return c.vibes[0]
}

// All returns the vibes in configuration order.
func (c *Catalog) All() []Vibe {
	out := make([]Vibe, len(c.vibes))
	copy(out, c.vibes)

	return out
}
