package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ismaeljda/big-brain/storage"
	"golang.org/x/exp/slog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var ErrAuth = errors.New("youtube authentication failed")

const (
	ScopeYoutubeReadonly = "https://www.googleapis.com/auth/youtube.readonly"
	// ScopeYoutube is needed to clear ratings.
	ScopeYoutube = "https://www.googleapis.com/auth/youtube"
)

func NewConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{ScopeYoutubeReadonly, ScopeYoutube},
		Endpoint:     google.Endpoint,
	}
}

// Credentials is the on-disk form of an OAuth2 token.
type Credentials struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refresh_token"`
	TokenURI     string     `json:"token_uri"`
	ClientID     string     `json:"client_id"`
	ClientSecret string     `json:"client_secret"`
	Scopes       []string   `json:"scopes"`
	Expiry       *time.Time `json:"expiry"`
}

func (c Credentials) token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  c.Token,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
	}
	if c.Expiry != nil {
		tok.Expiry = *c.Expiry
	}
	return tok
}

func (c Credentials) withToken(tok *oauth2.Token) Credentials {
	c.Token = tok.AccessToken
	if tok.RefreshToken != "" {
		c.RefreshToken = tok.RefreshToken
	}
	c.Expiry = nil
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry.UTC()
		c.Expiry = &expiry
	}
	return c
}

// Store persists credentials in a JSON file and hands out token sources that
// write refreshed tokens back to it.
type Store struct {
	file   storage.JSONFile
	oauth  *oauth2.Config
	logger *slog.Logger
}

func NewStore(path string, conf *oauth2.Config, logger *slog.Logger) *Store {
	return &Store{
		file:   storage.NewJSONFile(path),
		oauth:  conf,
		logger: logger.With(slog.String("component", "credentials")),
	}
}

func (s *Store) Load() (Credentials, error) {
	var creds Credentials
	found, err := s.file.Read(&creds)
	switch {
	case err != nil:
		return Credentials{}, fmt.Errorf("%w: %w", ErrAuth, err)
	case !found:
		return Credentials{}, fmt.Errorf("%w: no stored credentials", ErrAuth)
	case creds.Token == "" && creds.RefreshToken == "":
		return Credentials{}, fmt.Errorf("%w: stored credentials hold no token", ErrAuth)
	}

	return creds, nil
}

func (s *Store) Save(creds Credentials) error {
	if err := s.file.Write(creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// TokenSource returns a source that refreshes the stored token when it
// expires and persists the refreshed token.
func (s *Store) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	creds, err := s.Load()
	if err != nil {
		return nil, err
	}

	conf := *s.oauth
	if creds.TokenURI != "" {
		conf.Endpoint.TokenURL = creds.TokenURI
	}

	return &persistingTokenSource{
		base:   conf.TokenSource(ctx, creds.token()),
		store:  s,
		creds:  creds,
		logger: s.logger,
	}, nil
}

// IsAuthenticated reports whether a valid access token can be obtained,
// refreshing it if needed.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	ts, err := s.TokenSource(ctx)
	if err != nil {
		return false
	}
	tok, err := ts.Token()
	if err != nil {
		s.logger.Warn("stored credentials unusable", slog.String("error", err.Error()))
		return false
	}

	return tok.Valid()
}

type persistingTokenSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	store  *Store
	creds  Credentials
	logger *slog.Logger
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tok, err := p.base.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token: %v", ErrAuth, err)
	}

	if tok.AccessToken != p.creds.Token {
		p.creds = p.creds.withToken(tok)
		if err := p.store.Save(p.creds); err != nil {
			p.logger.Error("failed to persist refreshed token", slog.String("error", err.Error()))
		} else {
			p.logger.Info("access token refreshed")
		}
	}

	return tok, nil
}
