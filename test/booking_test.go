package test

import (
	"net/http"
	"net/url"
)

func (s *IntegrationTestSuite) TestBooking_SignedInUser() {
	b, err := newBrowser()
	s.Require().NoError(err)

	_, err = b.login(testUsername, testPassword)
	s.Require().NoError(err)

	bookingsBefore := len(s.remote.Bookings())
	requestedBefore := s.countActivity(testUsername, "booking_requested")

	resp, body, err := b.post("/celebrities/c2/book", url.Values{
		"name":    {"Alice Smith"},
		"email":   {"alice@example.com"},
		"date":    {"2026-12-24"},
		"reason":  {"Birthday Shoutout"},
		"message": {"Please wish my sister a happy birthday"},
	})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Booking successful!")

	booked := s.remote.Bookings()
	s.Require().Len(booked, bookingsBefore+1)
	s.Equal("c2", booked[len(booked)-1].Celeb.ID)
	s.Equal(requestedBefore+1, s.countActivity(testUsername, "booking_requested"))

	resp, body, err = b.get("/dashboard")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Requested booking")
	s.Contains(body, "Serena Williams")
}

func (s *IntegrationTestSuite) TestBooking_InvalidForm() {
	b, err := newBrowser()
	s.Require().NoError(err)

	bookingsBefore := len(s.remote.Bookings())

	resp, body, err := b.post("/celebrities/c1/book", url.Values{
		"name":  {"Bob"},
		"email": {"not-an-email"},
		"date":  {"2026-12-24"},
	})
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Please fix the form")
	s.Len(s.remote.Bookings(), bookingsBefore)
}

func (s *IntegrationTestSuite) TestAdmin_ManageCatalogAndBookings() {
	b, err := newBrowser()
	s.Require().NoError(err)

	_, err = b.login(testAdminUsername, testAdminPassword)
	s.Require().NoError(err)

	resp, _, err := b.post("/add-celeb", url.Values{
		"name":         {"Zendaya Coleman"},
		"profession":   {"Actor/Actress"},
		"bio":          {"Actress and singer."},
		"profileImage": {"https://img.example.com/z.jpg"},
		"bioImages":    {"https://img.example.com/z1.jpg", ""},
	})
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/accounts?added=1", resp.Header.Get("Location"))
	s.Equal(1, s.countActivity(testAdminUsername, "celebrity_added"))

	resp, body, err := b.get("/accounts?added=1")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Zendaya Coleman")

	celebID := s.remote.CelebrityID("Zendaya Coleman")
	s.Require().NotEmpty(celebID)

	// book the new celebrity, then clean up both the booking and the celebrity
	resp, _, err = b.post("/celebrities/"+celebID+"/book", url.Values{
		"name":    {"Admin"},
		"email":   {"admin@example.com"},
		"date":    {"2027-01-10"},
		"reason":  {"Birthday Shoutout"},
		"message": {"Hello from the admin"},
	})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, body, err = b.get("/messages")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Hello from the admin")

	booked := s.remote.Bookings()
	s.Require().NotEmpty(booked)
	last := booked[len(booked)-1]

	resp, _, err = b.post("/bookings/"+last.ID+"/delete", nil)
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/bookings?deleted=1", resp.Header.Get("Location"))
	s.Len(s.remote.Bookings(), len(booked)-1)
	s.Equal(1, s.countActivity(testAdminUsername, "booking_deleted"))

	resp, _, err = b.post("/accounts/"+celebID+"/delete", nil)
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/accounts?deleted=1", resp.Header.Get("Location"))
	s.Equal(1, s.countActivity(testAdminUsername, "celebrity_deleted"))

	resp, body, err = b.get("/celebrities")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotContains(body, "Zendaya Coleman")
}
