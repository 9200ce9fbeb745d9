// internal/httpserver/routes_api.go
//
// JSON twin of the UI, mounted under /api:
//   - GET  /api/game        → current game (404 if none)
//   - POST /api/game/new    → {difficulty} starts a fresh game
//   - POST /api/game/guess  → {guess} submits one guess
//
// The secret is never included in these responses.

package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/game"
	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/store"
)

// gameView is the public shape of a game.State.
type gameView struct {
	Difficulty game.Difficulty `json:"difficulty"`
	Range      game.Range      `json:"range"`
	Status     game.Status     `json:"status"`
	Attempts   int             `json:"attempts"`
	History    []int           `json:"history"`
}

func viewOf(st game.State) gameView {
	r, _ := st.Range()
	h := st.History
	if h == nil {
		h = []int{}
	}
	return gameView{
		Difficulty: st.Difficulty,
		Range:      r,
		Status:     st.Status,
		Attempts:   st.Attempts,
		History:    h,
	}
}

// -----------------------------------------------------------------------------
// GET /api/game

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sid, err := s.sessions.Resolve(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game", "start a new game first")
		return
	}
	st, err := s.store.Get(r.Context(), sid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(st))
}

// -----------------------------------------------------------------------------
// POST /api/game/new

type newGameReq struct {
	Difficulty string `json:"difficulty"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	sid, err := s.sessions.Ensure(w, r)
	if err != nil {
		log.Error().Err(err).Msg("issue session")
		writeError(w, http.StatusInternalServerError, "session_failed", "")
		return
	}
	st, err := s.startGame(r.Context(), sid, req.Difficulty)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(st))
}

// -----------------------------------------------------------------------------
// POST /api/game/guess

// guessReq accepts the guess as a JSON number or a string of user input.
type guessReq struct {
	Guess json.RawMessage `json:"guess"`
}

type guessRes struct {
	Outcome game.Outcome `json:"outcome"`
	Hint    string       `json:"hint"`
	Game    gameView     `json:"game"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	raw, err := rawGuess(req.Guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	sid, err := s.sessions.Resolve(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game", "start a new game first")
		return
	}
	st, res, err := s.submitGuess(r.Context(), sid, raw)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(guessRes{Outcome: res.Outcome, Hint: res.Hint, Game: viewOf(st)})
}

// rawGuess turns the "guess" field into text for game.ParseGuess.
func rawGuess(m json.RawMessage) (string, error) {
	m = bytes.TrimSpace(m)
	if len(m) == 0 || bytes.Equal(m, []byte("null")) {
		return "", nil
	}
	if m[0] == '"' {
		var s string
		if err := json.Unmarshal(m, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(m), nil
}

// -----------------------------------------------------------------------------
// GET /debug/state

type debugRes struct {
	gameView
	Secret int `json:"secret"`
}

func (s *Server) handleDebugState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	sid, err := s.sessions.Resolve(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game", "")
		return
	}
	st, err := s.store.Get(r.Context(), sid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(debugRes{gameView: viewOf(st), Secret: st.Secret})
}

// ------------------------------ errors --------------------------------------

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorRes{Error: code, Message: msg})
}

// statusFor maps domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrUnknownDifficulty):
		return http.StatusBadRequest, "unknown_difficulty"
	case errors.Is(err, game.ErrEmptyGuess), errors.Is(err, game.ErrNotANumber):
		return http.StatusBadRequest, "invalid_guess"
	case errors.Is(err, game.ErrGameFinished):
		return http.StatusConflict, "game_finished"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "no_game"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		writeError(w, status, code, "")
		return
	}
	writeError(w, status, code, userMessage(err))
}

// userMessage is the text shown to a player for a domain error.
func userMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrGameFinished):
		return "You already won. Start a new game to play again."
	case errors.Is(err, game.ErrEmptyGuess):
		return game.ErrEmptyGuess.Error()
	case errors.Is(err, game.ErrNotANumber):
		return game.ErrNotANumber.Error()
	case errors.Is(err, store.ErrNotFound):
		return "Start a new game first."
	default:
		return err.Error()
	}
}
