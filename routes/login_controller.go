package routes

import (
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/deadbrock/avalia-o/app"
	"github.com/deadbrock/avalia-o/httpx"
	"github.com/deadbrock/avalia-o/log"
)

// Login exchanges HTTP basic credentials for a bearer token pair by
// rewriting the request into the form grant the bearer server expects.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.Fail(w, r, http.StatusUnauthorized, "login.basic_auth", "missing credentials")
			return
		}

		body := url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		}
		r.Body = io.NopCloser(strings.NewReader(body.Encode()))
		r.Header.Set("content-type", "application/x-www-form-urlencoded")
		r.Header.Set("content-length", strconv.Itoa(len(body.Encode())))
		app.UserCredentials(w, r)
	}
}

var reRefreshAuth = regexp.MustCompile(`(?i)^refresh\s+(.*)`)

// Refresh trades a refresh token for a new token pair.
func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("authorization")
		match := reRefreshAuth.FindStringSubmatch(auth)
		if len(match) == 0 {
			httpx.Fail(w, r, http.StatusUnauthorized, "refresh.token", "missing refresh token")
			return
		}
		token := match[1]

		body := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {token},
		}

		req, err := http.NewRequest("POST", "/", strings.NewReader(body.Encode()))
		if err != nil {
			httpx.LogInternalError(w, r, "refresh.new_request", err)
			return
		}
		req.Header.Set("content-type", "application/x-www-form-urlencoded")
		req.Header.Set("content-length", strconv.Itoa(len(body.Encode())))

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		if err := resp.Flush(w); err != nil {
			log.Errorf("refresh.flush: %s", err)
		}
	}
}
