// internal/httpserver/server.go
//
// HTTP server wiring for the number-guessing game.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, request logging).
//   - HTML UI: "/", POST /new, POST /guess, /static/*.
//   - JSON API under /api (CORS + JSON content type).
//   - Diagnostics: /health, and /debug/state when DEBUG is on.
//
// Notes:
//   - Every request runs inside a session; the session cookie is issued lazily.
//   - New games are built in full before being swapped into the store, so a
//     stale "won" status can never survive a restart of play.

package httpserver

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/assets"
	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/config"
	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/game"
	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/session"
	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/store"
)

// Server bundles router, session store, and session manager.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	store    store.Store
	sessions *session.Manager
	tmpl     *template.Template
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, sm *session.Manager) (*Server, error) {
	tmpl, err := assets.Templates(template.FuncMap{"outcomeClass": outcomeClass})
	if err != nil {
		return nil, err
	}
	static, err := assets.Static()
	if err != nil {
		return nil, err
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, sessions: sm, tmpl: tmpl}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	if cfg.Debug {
		s.r.Get("/debug/state", s.handleDebugState)
	}

	// --- UI ---
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	s.r.Get("/", s.handleIndex)
	s.r.Post("/new", s.handleNewForm)
	s.r.Post("/guess", s.handleGuessForm)

	// --- JSON API ---
	s.r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Use(corsFor(cfg.ClientOrigin))
		r.Get("/game", s.handleGetGame)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	return s, nil
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ game flow ----------------------------------

// startGame builds a complete new snapshot for label and swaps it in wholesale.
func (s *Server) startGame(ctx context.Context, sid, label string) (game.State, error) {
	st, err := game.NewGame(label)
	if err != nil {
		return game.State{}, err
	}
	if err := s.store.Replace(ctx, sid, st); err != nil {
		return game.State{}, err
	}
	log.Debug().Str("session", sid).Str("difficulty", string(st.Difficulty)).Msg("new game")
	return st, nil
}

// submitGuess parses raw, evaluates it against the session's game, and stores
// the resulting snapshot. Parse errors never touch the stored state.
func (s *Server) submitGuess(ctx context.Context, sid, raw string) (game.State, game.Result, error) {
	guess, err := game.ParseGuess(raw)
	if err != nil {
		return game.State{}, game.Result{}, err
	}
	var res game.Result
	next, err := s.store.Update(ctx, sid, func(cur game.State) (game.State, error) {
		n, r, err := cur.Apply(guess)
		res = r
		return n, err
	})
	if err != nil {
		return next, game.Result{}, err
	}
	log.Debug().Str("session", sid).Int("guess", guess).Str("outcome", string(res.Outcome)).Msg("guess")
	return next, res, nil
}

// currentOrNew returns the session's game, starting a Normal game when there is none.
func (s *Server) currentOrNew(ctx context.Context, sid string) (game.State, error) {
	st, err := s.store.Get(ctx, sid)
	if errors.Is(err, store.ErrNotFound) {
		return s.startGame(ctx, sid, string(game.Normal))
	}
	return st, err
}

// ----------------------------- middleware ----------------------------------

// requestLogger writes one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("dur", time.Since(start)).
			Msg("http")
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
