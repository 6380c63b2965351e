package test

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/testinternals"
)

func (s *IntegrationTestSuite) sessionKeyExists(cookie *http.Cookie) bool {
	claims, err := auth.NewJWTCodec(testinternals.TestSessionSecret, time.Hour).Parse(cookie.Value)
	s.Require().NoError(err)

	n, err := s.redisClient.Exists(context.Background(), "elitestar-session||"+claims.ID).Result()
	s.Require().NoError(err)
	return n == 1
}

func (s *IntegrationTestSuite) countActivity(username, kind string) int {
	var count int
	err := s.DB.QueryRow(
		`SELECT COUNT(*) FROM activity_event WHERE username = $1 AND kind = $2;`,
		username, kind,
	).Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *IntegrationTestSuite) TestLogin_AdminLandsOnAccounts() {
	b, err := newBrowser()
	s.Require().NoError(err)

	loginsBefore := s.countActivity(testAdminUsername, "login")

	resp, err := b.login(testAdminUsername, testAdminPassword)
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/accounts", resp.Header.Get("Location"))

	cookie := b.sessionCookie()
	s.Require().NotNil(cookie)
	s.True(s.sessionKeyExists(cookie))
	s.Equal(loginsBefore+1, s.countActivity(testAdminUsername, "login"))

	resp, body, err := b.get("/accounts")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Taylor Swift")
	s.Contains(body, `href="/messages"`)

	// a signed in visitor asking for the login page goes straight on
	resp, _, err = b.get("/login")
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/accounts", resp.Header.Get("Location"))
}

func (s *IntegrationTestSuite) TestLogin_UserLandsOnDashboard() {
	b, err := newBrowser()
	s.Require().NoError(err)

	resp, err := b.login(testUsername, testPassword)
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/dashboard", resp.Header.Get("Location"))

	resp, body, err := b.get("/dashboard")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Welcome back, alice")
	s.Contains(body, "celebrities are ready to be booked.")
	s.Contains(body, "Logged in")
}

func (s *IntegrationTestSuite) TestLogin_WrongPassword() {
	b, err := newBrowser()
	s.Require().NoError(err)

	resp, body, err := b.post("/login", url.Values{
		"username": {testUsername},
		"password": {"nope"},
	})
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Contains(body, "Invalid username or password.")
	s.Contains(body, `value="alice"`)
	s.Nil(b.sessionCookie())

	resp, body, err = b.post("/login", url.Values{"username": {testUsername}})
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Please enter your username and password.")
}

func (s *IntegrationTestSuite) TestLogout_RevokesSession() {
	b, err := newBrowser()
	s.Require().NoError(err)

	_, err = b.login(testUsername, testPassword)
	s.Require().NoError(err)
	cookie := b.sessionCookie()
	s.Require().NotNil(cookie)
	s.True(s.sessionKeyExists(cookie))

	logoutsBefore := s.countActivity(testUsername, "logout")

	resp, _, err := b.post("/logout", nil)
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))
	s.Nil(b.sessionCookie())
	s.False(s.sessionKeyExists(cookie))
	s.Equal(logoutsBefore+1, s.countActivity(testUsername, "logout"))

	// the old token is worthless even if somebody kept it
	replay, err := newBrowser()
	s.Require().NoError(err)
	u, _ := url.Parse(serverEndpoint)
	replay.client.Jar.SetCookies(u, []*http.Cookie{{Name: cookie.Name, Value: cookie.Value, Path: "/"}})

	resp, _, err = replay.get("/dashboard")
	s.Require().NoError(err)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))
}

func (s *IntegrationTestSuite) TestLogin_RateLimited() {
	b, err := newBrowser()
	s.Require().NoError(err)
	// a dedicated client address keeps the other tests out of this bucket
	b.realIP = "203.0.113.7"

	for i := 0; i < loginsPerMin; i++ {
		resp, _, err := b.post("/login", url.Values{
			"username": {testUsername},
			"password": {"wrong"},
		})
		s.Require().NoError(err)
		s.Equal(http.StatusUnauthorized, resp.StatusCode, "attempt %d", i+1)
	}

	resp, body, err := b.post("/login", url.Values{
		"username": {testUsername},
		"password": {testPassword},
	})
	s.Require().NoError(err)
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	s.Contains(body, "too many attempts")
	s.Nil(b.sessionCookie())

	keys, err := s.redisClient.Keys(context.Background(), "rate:login||203.0.113.7").Result()
	s.Require().NoError(err)
	s.Len(keys, 1)
}
