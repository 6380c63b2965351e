package test

import (
	"net/http"
)

var adminPaths = []string{"/accounts", "/add-celeb", "/bookings", "/messages"}

func (s *IntegrationTestSuite) TestGuard_Anonymous() {
	b, err := newBrowser()
	s.Require().NoError(err)

	for _, path := range append([]string{"/dashboard"}, adminPaths...) {
		resp, _, err := b.get(path)
		s.Require().NoError(err)
		s.Equal(http.StatusSeeOther, resp.StatusCode, path)
		s.Equal("/login", resp.Header.Get("Location"), path)
	}

	for _, path := range []string{"/", "/celebrities", "/celebrities/c1", "/about-us", "/how-it-works", "/blog", "/login"} {
		resp, body, err := b.get(path)
		s.Require().NoError(err)
		s.Equal(http.StatusOK, resp.StatusCode, path)
		s.Contains(body, `href="/login"`, path)
	}
}

func (s *IntegrationTestSuite) TestGuard_UserIsNotAdmin() {
	b, err := newBrowser()
	s.Require().NoError(err)

	_, err = b.login(testUsername, testPassword)
	s.Require().NoError(err)

	for _, path := range adminPaths {
		resp, _, err := b.get(path)
		s.Require().NoError(err)
		s.Equal(http.StatusSeeOther, resp.StatusCode, path)
		s.Equal("/", resp.Header.Get("Location"), path)
	}

	resp, body, err := b.get("/")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, `href="/dashboard"`)
	s.NotContains(body, `href="/accounts"`)
}

func (s *IntegrationTestSuite) TestGuard_Admin() {
	b, err := newBrowser()
	s.Require().NoError(err)

	_, err = b.login(testAdminUsername, testAdminPassword)
	s.Require().NoError(err)

	for _, path := range adminPaths {
		resp, _, err := b.get(path)
		s.Require().NoError(err)
		s.Equal(http.StatusOK, resp.StatusCode, path)
	}
}

func (s *IntegrationTestSuite) TestMisc_VersionAndHealth() {
	b, err := newBrowser()
	s.Require().NoError(err)

	resp, body, err := b.get("/version")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("test-version-info", body)

	resp, body, err = b.get("/healthz")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("I'm OK, thanks ;)", body)

	resp, body, err = b.get("/nope")
	s.Require().NoError(err)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(body, "Page not found.")
}
