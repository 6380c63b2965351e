package test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/elitestar/bookings-web/internal/auth"
)

var browserCount atomic.Int32

// browser is a cookie keeping http client that does not follow redirects,
// so the tests can assert where the guard sends them.
type browser struct {
	client *http.Client
	realIP string
}

func newBrowser() (*browser, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("new cookie jar: %w", err)
	}
	// every browser gets its own client address, and so its own login rate limit bucket
	n := browserCount.Add(1)
	return &browser{
		realIP: fmt.Sprintf("198.51.100.%d", n%250+1),
		client: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

func (b *browser) do(method, path string, form url.Values) (*http.Response, string, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, serverEndpoint+path, body)
	if err != nil {
		return nil, "", err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.realIP != "" {
		req.Header.Set("X-Real-Ip", b.realIP)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return resp, string(respBytes), nil
}

func (b *browser) get(path string) (*http.Response, string, error) {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string, error) {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

func (b *browser) login(username, password string) (*http.Response, error) {
	resp, _, err := b.post("/login", url.Values{
		"username": {username},
		"password": {password},
	})
	return resp, err
}

// sessionCookie returns the session cookie the jar holds for the server, if any.
func (b *browser) sessionCookie() *http.Cookie {
	u, _ := url.Parse(serverEndpoint)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == auth.DefaultCookieName {
			return c
		}
	}
	return nil
}
