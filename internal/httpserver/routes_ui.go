// internal/httpserver/routes_ui.go
//
// Server-rendered UI:
//   - GET  /       → current game (a Normal game is started on first visit)
//   - POST /new    → form field "difficulty"; replaces the whole game, then redirects to /
//   - POST /guess  → form field "guess"; renders the feedback
//
// A guess committed with Enter in the text input and one sent by clicking the
// button arrive as the same form post; the button's "submit" field is ignored.

package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/game"
)

// pageView feeds index.tmpl.
type pageView struct {
	Difficulties []game.Difficulty
	Difficulty   game.Difficulty
	HasGame      bool
	Range        game.Range
	Status       game.Status
	Attempts     int
	History      []int
	Secret       int // rendered only once the game is won
	Last         *game.Result
	Error        string
	Debug        *game.State
}

func (s *Server) page(st game.State, ok bool) pageView {
	v := pageView{Difficulties: game.Difficulties(), Difficulty: game.Normal}
	if !ok {
		return v
	}
	v.HasGame = true
	v.Difficulty = st.Difficulty
	v.Range, _ = st.Range()
	v.Status = st.Status
	v.Attempts = st.Attempts
	v.History = st.History
	if st.Status == game.StatusWon {
		v.Secret = st.Secret
	}
	if s.cfg.Debug {
		dbg := st
		v.Debug = &dbg
	}
	return v
}

func (s *Server) render(w http.ResponseWriter, status int, v pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.tmpl", v); err != nil {
		log.Error().Err(err).Msg("render index")
	}
}

// ensureSession returns the request's session ID or answers 500.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid, err := s.sessions.Ensure(w, r)
	if err != nil {
		log.Error().Err(err).Msg("issue session")
		http.Error(w, "session error", http.StatusInternalServerError)
		return "", false
	}
	return sid, true
}

// handleIndex renders the current game.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sid, ok := s.ensureSession(w, r)
	if !ok {
		return
	}
	st, err := s.currentOrNew(r.Context(), sid)
	if err != nil {
		log.Error().Err(err).Msg("load game")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	s.render(w, http.StatusOK, s.page(st, true))
}

// handleNewForm replaces the session's game with a fresh one.
func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sid, ok := s.ensureSession(w, r)
	if !ok {
		return
	}
	if _, err := s.startGame(r.Context(), sid, r.PostFormValue("difficulty")); err != nil {
		status, _ := statusFor(err)
		cur, gerr := s.store.Get(r.Context(), sid)
		v := s.page(cur, gerr == nil)
		v.Error = userMessage(err)
		s.render(w, status, v)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGuessForm evaluates one guess and renders the result.
func (s *Server) handleGuessForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sid, ok := s.ensureSession(w, r)
	if !ok {
		return
	}
	cur, err := s.currentOrNew(r.Context(), sid)
	if err != nil {
		log.Error().Err(err).Msg("load game")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	next, res, err := s.submitGuess(r.Context(), sid, r.PostFormValue("guess"))
	if err != nil {
		status, _ := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("submit guess")
			http.Error(w, "server error", status)
			return
		}
		// the stored game is unchanged on failure
		v := s.page(cur, true)
		v.Error = userMessage(err)
		s.render(w, status, v)
		return
	}
	v := s.page(next, true)
	v.Last = &res
	s.render(w, http.StatusOK, v)
}

// outcomeClass maps an outcome to a CSS class ("Too High" → "too-high").
func outcomeClass(o game.Outcome) string {
	switch o {
	case game.OutcomeWin:
		return "win"
	case game.OutcomeTooHigh:
		return "too-high"
	case game.OutcomeTooLow:
		return "too-low"
	default:
		return ""
	}
}
