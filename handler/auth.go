package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ismaeljda/big-brain/auth"
	"golang.org/x/exp/slog"
)

func (s *Server) Authorize(w http.ResponseWriter, r *http.Request) {
	url, err := s.flow.BuildAuthorizationURL()
	if err != nil {
		s.returnErr(w, http.StatusInternalServerError, "could not start authorization", err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (s *Server) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if denied := q.Get("error"); denied != "" {
		Error(w, http.StatusBadRequest, "authorization denied", fmt.Errorf("%s", denied))
		return
	}
	code := q.Get("code")
	if code == "" {
		Error(w, http.StatusBadRequest, "missing authorization code", nil)
		return
	}

	creds, err := s.flow.CompleteAuthorization(r.Context(), q.Get("state"), code)
	switch {
	case errors.Is(err, auth.ErrAuth):
		s.returnErr(w, http.StatusUnauthorized, "authentication failed", err)
		return
	case err != nil:
		s.returnErr(w, http.StatusInternalServerError, "authentication failed", err)
		return
	}
	s.logger.Info("youtube account connected", slog.Int("scopes", len(creds.Scopes)))

	s.message(w, http.StatusOK, "✅ Authentification réussie !", "Vous pouvez maintenant utiliser le système.")
}
