// Package campaign defines the campaign record a play session belongs to.
package campaign

import (
	"time"

	"github.com/louisbranch/soloquest/internal/platform/id"
	"github.com/louisbranch/soloquest/internal/systems"
)

// Campaign is the container for one solo adventure.
type Campaign struct {
	ID        string
	Name      string
	System    systems.ID
	Locale    string
	Recap     string   // rolling summary fed to the narrative generator
	Entities  []string // known people/places the generator should keep consistent
	Facts     []string // established facts the generator must not contradict
	CreatedAt time.Time
}

// New creates a campaign for the named system.
func New(name string, sys systems.ID, locale string) (Campaign, error) {
	campaignID, err := id.NewID()
	if err != nil {
		return Campaign{}, err
	}
	return Campaign{
		ID:        campaignID,
		Name:      name,
		System:    sys,
		Locale:    locale,
		CreatedAt: time.Now().UTC(),
	}, nil
}
