package api

import (
	"fmt"

	"github.com/elitestar/bookings-web/pkg"
)

var EventTypes = []string{
	"Birthday Shoutout",
	"Event Hosting",
	"Brand Endorsement",
	"Meet and Greet",
	"TV or Film Cameo",
	"Podcast Guest Spot",
	"Custom Video Message",
	"Virtual Meet & Greet",
	"Social Media Promotion",
	"Motivational Message",
}

var Professions = []string{
	"Actor/Actress",
	"Musician",
	"Athlete",
	"Influencer",
	"Comedian",
	"TV Host",
	"Reality Star",
	"Model",
	"YouTuber",
	"TikTok Creator",
	"Podcaster",
	"Esports Player",
	"Dancer",
	"Fashion Designer",
	"Fitness Coach",
	"Author",
}

// MaxBioImages caps the bio gallery of a celebrity.
const MaxBioImages = 5

// NewFormValidator returns a validator that knows the eventtype and
// profession tags used by NewCelebrity and BookingRequest.
func NewFormValidator() (*pkg.Validator, error) {
	v := pkg.NewValidator()
	if err := v.RegisterChoice("eventtype", EventTypes); err != nil {
		return nil, fmt.Errorf("register eventtype: %w", err)
	}
	if err := v.RegisterChoice("profession", Professions); err != nil {
		return nil, fmt.Errorf("register profession: %w", err)
	}
	return v, nil
}
