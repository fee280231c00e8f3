package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
	"golang.org/x/oauth2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type tokenServer struct {
	*httptest.Server
	scope      string
	refreshErr bool
	grants     []string
}

func newTokenServer(t *testing.T) *tokenServer {
	ts := &tokenServer{scope: ScopeYoutubeReadonly + " " + ScopeYoutube}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		grant := r.PostForm.Get("grant_type")
		ts.grants = append(ts.grants, grant)

		w.Header().Set("Content-Type", "application/json")
		switch grant {
		case "authorization_code":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
				"token_type":    "Bearer",
				"expires_in":    3600,
				"scope":         ts.scope,
			})
		case "refresh_token":
			if ts.refreshErr {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "access-2",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(ts *tokenServer) *oauth2.Config {
	conf := NewConfig("client-id", "client-secret", "http://localhost:5000/oauth/callback")
	conf.Endpoint = oauth2.Endpoint{
		AuthURL:   ts.URL + "/auth",
		TokenURL:  ts.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	return conf
}

func newFlow(t *testing.T, ts *tokenServer) (*Flow, *Store, string) {
	dir := t.TempDir()
	conf := testConfig(ts)
	store := NewStore(filepath.Join(dir, "oauth_token.json"), conf, discardLogger())
	statePath := filepath.Join(dir, "temp_flow_data.json")
	return NewFlow(conf, statePath, store, discardLogger()), store, statePath
}

func stateFrom(t *testing.T, authURL string) string {
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	return u.Query().Get("state")
}

func TestAuthorizationURL(t *testing.T) {
	flow, _, statePath := newFlow(t, newTokenServer(t))

	authURL, err := flow.BuildAuthorizationURL()
	require.NoError(t, err)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Contains(t, q.Get("scope"), ScopeYoutubeReadonly)
	assert.NotEmpty(t, q.Get("state"))
	assert.FileExists(t, statePath)
}

func TestCompleteAuthorization(t *testing.T) {
	ts := newTokenServer(t)
	flow, store, statePath := newFlow(t, ts)
	ctx := context.Background()

	authURL, err := flow.BuildAuthorizationURL()
	require.NoError(t, err)

	creds, err := flow.CompleteAuthorization(ctx, stateFrom(t, authURL), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "access-1", creds.Token)
	assert.Equal(t, "refresh-1", creds.RefreshToken)
	assert.Equal(t, ts.URL+"/token", creds.TokenURI)
	assert.Equal(t, []string{ScopeYoutubeReadonly, ScopeYoutube}, creds.Scopes)
	require.NotNil(t, creds.Expiry)
	assert.NoFileExists(t, statePath)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, creds.Token, stored.Token)
	assert.True(t, store.IsAuthenticated(ctx))
}

func TestCompleteAuthorizationRejectsWrongState(t *testing.T) {
	ts := newTokenServer(t)
	flow, store, statePath := newFlow(t, ts)

	_, err := flow.BuildAuthorizationURL()
	require.NoError(t, err)

	_, err = flow.CompleteAuthorization(context.Background(), "forged", "code-1")
	assert.True(t, errors.Is(err, ErrAuth))
	assert.NoFileExists(t, statePath)
	assert.Empty(t, ts.grants)
	assert.False(t, store.IsAuthenticated(context.Background()))
}

func TestCompleteAuthorizationRequiresYoutubeScope(t *testing.T) {
	ts := newTokenServer(t)
	ts.scope = "https://www.googleapis.com/auth/drive"
	flow, store, _ := newFlow(t, ts)

	authURL, err := flow.BuildAuthorizationURL()
	require.NoError(t, err)

	_, err = flow.CompleteAuthorization(context.Background(), stateFrom(t, authURL), "code-1")
	assert.True(t, errors.Is(err, ErrAuth))
	_, err = store.Load()
	assert.True(t, errors.Is(err, ErrAuth))
}

func TestCompleteWithoutPendingFlow(t *testing.T) {
	flow, _, _ := newFlow(t, newTokenServer(t))

	_, err := flow.CompleteAuthorization(context.Background(), "state", "code")
	assert.ErrorContains(t, err, "no pending authorization")
}

func TestExpiredTokenIsRefreshedAndPersisted(t *testing.T) {
	ts := newTokenServer(t)
	_, store, _ := newFlow(t, ts)

	expired := time.Now().Add(-time.Hour).UTC()
	require.NoError(t, store.Save(Credentials{
		Token:        "access-1",
		RefreshToken: "refresh-1",
		TokenURI:     ts.URL + "/token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       []string{ScopeYoutubeReadonly},
		Expiry:       &expired,
	}))

	assert.True(t, store.IsAuthenticated(context.Background()))
	assert.Equal(t, []string{"refresh_token"}, ts.grants)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-2", stored.Token)
	assert.Equal(t, "refresh-1", stored.RefreshToken)
	assert.True(t, stored.Expiry.After(time.Now()))
}

func TestFailedRefreshIsNotAuthenticated(t *testing.T) {
	ts := newTokenServer(t)
	ts.refreshErr = true
	_, store, _ := newFlow(t, ts)

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, store.Save(Credentials{
		Token:        "access-1",
		RefreshToken: "refresh-1",
		TokenURI:     ts.URL + "/token",
		Expiry:       &expired,
	}))

	assert.False(t, store.IsAuthenticated(context.Background()))

	src, err := store.TokenSource(context.Background())
	require.NoError(t, err)
	_, err = src.Token()
	assert.True(t, errors.Is(err, ErrAuth))
}
