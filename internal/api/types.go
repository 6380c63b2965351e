package api

import (
	"encoding/json"
	"time"
)

type Celebrity struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Profession   string   `json:"profession"`
	Bio          string   `json:"bio"`
	ProfileImage string   `json:"profileImage"`
	BioImages    []string `json:"bioImages"`
	ProfileURL   string   `json:"profileUrl,omitempty"`
}

// CoverImage is the profile image, or the first bio image when there is none.
func (c Celebrity) CoverImage() string {
	if c.ProfileImage != "" {
		return c.ProfileImage
	}
	if len(c.BioImages) > 0 {
		return c.BioImages[0]
	}
	return ""
}

// NewCelebrity is the payload of POST /api/celebs.
type NewCelebrity struct {
	Name         string   `json:"name" validate:"required"`
	Profession   string   `json:"profession" validate:"required,profession"`
	Bio          string   `json:"bio" validate:"required"`
	ProfileImage string   `json:"profileImage" validate:"required,url"`
	BioImages    []string `json:"bioImages" validate:"max=5,dive,url"`
}

// BookingCeleb is the celebrity a booking refers to. The API returns either
// the bare id or the populated document.
type BookingCeleb struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

func (bc *BookingCeleb) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		bc.ID = id
		return nil
	}

	type plain BookingCeleb
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*bc = BookingCeleb(p)
	return nil
}

type Booking struct {
	ID        string       `json:"_id"`
	Celeb     BookingCeleb `json:"celebId"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Date      string       `json:"date"`
	Reason    string       `json:"reason"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"createdAt"`
}

// BookingRequest is the payload of POST /api/celebs/book.
type BookingRequest struct {
	CelebID string `json:"celebId" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason  string `json:"reason" validate:"required,eventtype"`
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	Token    string `json:"token,omitempty"`
}
