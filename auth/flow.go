package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ismaeljda/big-brain/storage"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
	"golang.org/x/oauth2"
)

type flowState struct {
	State       string    `json:"state"`
	RedirectURI string    `json:"redirect_uri"`
	Scopes      []string  `json:"scopes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Flow runs the authorization-code exchange. The pending state lives in a
// transient file so the callback can be checked against it.
type Flow struct {
	oauth  *oauth2.Config
	state  storage.JSONFile
	store  *Store
	logger *slog.Logger
}

func NewFlow(conf *oauth2.Config, statePath string, store *Store, logger *slog.Logger) *Flow {
	return &Flow{
		oauth:  conf,
		state:  storage.NewJSONFile(statePath),
		store:  store,
		logger: logger.With(slog.String("component", "oauth")),
	}
}

func (f *Flow) BuildAuthorizationURL() (string, error) {
	fs := flowState{
		State:       uuid.NewString(),
		RedirectURI: f.oauth.RedirectURL,
		Scopes:      f.oauth.Scopes,
		CreatedAt:   time.Now(),
	}
	if err := f.state.Write(fs); err != nil {
		return "", fmt.Errorf("save flow state: %w", err)
	}

	return f.oauth.AuthCodeURL(fs.State,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	), nil
}

// CompleteAuthorization exchanges code for a token, checks that read access to YouTube was
// granted and stores the credentials. The pending state is always discarded.
func (f *Flow) CompleteAuthorization(ctx context.Context, state, code string) (Credentials, error) {
	defer func() {
		if err := f.state.Remove(); err != nil {
			f.logger.Warn("failed to remove flow state", slog.String("error", err.Error()))
		}
	}()

	var fs flowState
	found, err := f.state.Read(&fs)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", ErrAuth, err)
	}
	if !found {
		return Credentials{}, fmt.Errorf("%w: no pending authorization", ErrAuth)
	}
	if state != fs.State {
		return Credentials{}, fmt.Errorf("%w: state mismatch", ErrAuth)
	}

	tok, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: exchange code: %v", ErrAuth, err)
	}

	scopes := grantedScopes(tok, fs.Scopes)
	if !slices.Contains(scopes, ScopeYoutubeReadonly) {
		return Credentials{}, fmt.Errorf("%w: youtube scope missing from %v", ErrAuth, scopes)
	}

	creds := Credentials{
		TokenURI:     f.oauth.Endpoint.TokenURL,
		ClientID:     f.oauth.ClientID,
		ClientSecret: f.oauth.ClientSecret,
		Scopes:       scopes,
	}.withToken(tok)
	if err := f.store.Save(creds); err != nil {
		return Credentials{}, err
	}
	f.logger.Info("authorization completed", slog.Int("scopes", len(scopes)))

	return creds, nil
}

// grantedScopes reads the scope list from the token response, falling back to
// the requested scopes when the server did not echo them.
func grantedScopes(tok *oauth2.Token, requested []string) []string {
	if raw, ok := tok.Extra("scope").(string); ok && strings.TrimSpace(raw) != "" {
		return strings.Fields(raw)
	}
	return requested
}
