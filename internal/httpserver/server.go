// internal/httpserver/server.go
//
// HTTP host for the hangman helper. This is the caller of the game engine:
// for every request it loads the session's save, applies one engine
// operation, stores the result, and returns the derived views.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/alphabet".
//   - Game endpoints under /game, scoped to the caller's session.
//   - Degraded status mode when the storage probe fails at start-up.
//
// Notes:
//   - Every mutation is persisted immediately; there is no unsaved state.
//   - Requests from one session are serialised so a load→mutate→store cycle
//     never interleaves with another from the same browser.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
)

// Status lines reported by /health and by game routes in degraded mode.
const (
	StatusReady       = "System check complete"
	StatusUnavailable = "No storage -- cannot use this"
)

// Options configures a Server.
type Options struct {
	ClientOrigin  string // CORS origin allowed to send credentials
	SessionSecret string // secret the session signing key is derived from
	SecureCookies bool   // mark cookies Secure (and SameSite=None)
}

// Server bundles router, saves, and session handling.
type Server struct {
	r        *chi.Mux
	saves    *store.Saves
	sessions *sessions
	locks    keyedMutex
	ready    bool
}

// New probes blob, constructs a Server, installs middleware, and registers routes.
// A failed probe is not an error: the server comes up in degraded mode.
func New(ctx context.Context, blob store.Blob, opts Options) (*Server, error) {
	sess, err := newSessions(opts.SessionSecret, opts.SecureCookies)
	if err != nil {
		return nil, err
	}
	s := &Server{r: chi.NewRouter(), saves: store.NewSaves(blob), sessions: sess, ready: true}
	if err := store.Probe(ctx, blob); err != nil {
		log.Error().Err(err).Msg("storage probe failed, serving status only")
		s.ready = false
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"hangman","endpoints":["/health","/alphabet","/game","POST /game/new","PUT /game/phrase","PUT /game/clues","POST /game/toggle/{glyph}","/game/export"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.statusCode(), healthRes{OK: s.ready, Status: s.status()})
	})
	s.r.Get("/alphabet", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, alphabetRes{Glyphs: game.Glyphs()})
	})

	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.requireStorage)
		r.Use(s.sessions.middleware)
		r.Get("/", s.handleGame)
		r.Post("/new", s.handleNewGame)
		r.Put("/phrase", s.handleSetPhrase)
		r.Put("/clues", s.handleSetClues)
		r.Post("/toggle/{glyph}", s.handleToggle)
		r.Get("/export", s.handleExport)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Handler exposes the router (useful for tests and custom listeners).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) status() string {
	if s.ready {
		return StatusReady
	}
	return StatusUnavailable
}

func (s *Server) statusCode() int {
	if s.ready {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("took", d).
		Msg("request")
})

// requireStorage short-circuits game routes while storage is unavailable.
func (s *Server) requireStorage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.ready {
			writeJSON(w, http.StatusServiceUnavailable, healthRes{OK: false, Status: StatusUnavailable})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

type healthRes struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

type alphabetRes struct {
	Glyphs []string `json:"glyphs"`
}

// textReq is the payload for PUT /game/phrase and PUT /game/clues.
type textReq struct {
	Text *string `json:"text"`
}

// viewRes is the state plus every derived view. Fresh tells the client a
// new game was just started, so it can clear any pressed-button styling.
type viewRes struct {
	Phrase   string        `json:"phrase"`
	Clues    string        `json:"clues"`
	Alphabet []game.Symbol `json:"alphabet"`
	Masked   string        `json:"masked"`
	NotFound []string      `json:"notFound"`
	Export   string        `json:"export"`
	Fresh    bool          `json:"fresh"`
}

func newView(st game.State, fresh bool) viewRes {
	return viewRes{
		Phrase:   st.Phrase,
		Clues:    st.Clues,
		Alphabet: st.Alphabet,
		Masked:   game.MaskedPhrase(st),
		NotFound: game.NotFound(st),
		Export:   game.Export(st),
		Fresh:    fresh,
	}
}

// mutate runs one load→apply→store cycle for the caller's session.
// A missing or corrupt save starts from a new game.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, apply func(game.State) game.State) {
	sid := sessionID(r)
	unlock := s.locks.lock(sid)
	defer unlock()

	st, fresh, err := s.saves.LoadOrNew(r.Context(), sid)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", sid).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	next := apply(st)
	if err := s.saves.Store(r.Context(), sid, next); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", sid).Msg("store game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, newView(next, fresh))
}

// handleGame returns the current game, starting (and saving) one if none exists.
func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(st game.State) game.State { return st })
}

// handleNewGame replaces the session's game wholesale.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	unlock := s.locks.lock(sid)
	defer unlock()

	st := game.New()
	if err := s.saves.Store(r.Context(), sid, st); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", sid).Msg("store new game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	hlog.FromRequest(r).Info().Str("session", sid).Msg("new game")
	writeJSON(w, http.StatusOK, newView(st, true))
}

func (s *Server) handleSetPhrase(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, func(st game.State) game.State { return game.SetPhrase(st, text) })
}

func (s *Server) handleSetClues(w http.ResponseWriter, r *http.Request) {
	text, ok := readText(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, func(st game.State) game.State { return game.SetClues(st, text) })
}

// handleToggle flips one symbol. Unknown glyphs are accepted and change nothing.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	glyph := chi.URLParam(r, "glyph")
	// chi matches against RawPath when the client escaped more than needed;
	// only then is the param still escaped. An undecodable glyph stays as is
	// and toggles nothing.
	if r.URL.RawPath != "" {
		if g, err := url.PathUnescape(glyph); err == nil {
			glyph = g
		}
	}
	s.mutate(w, r, func(st game.State) game.State { return game.ToggleSymbol(st, glyph) })
}

// handleExport returns the export document as markup, ready to copy.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	st, _, err := s.saves.LoadOrNew(r.Context(), sid)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", sid).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(game.Export(st)))
}

// readText decodes a textReq; it writes a 400 and returns ok=false on failure.
func readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req textReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return "", false
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, "missing_text")
		return "", false
	}
	return *req.Text, true
}

// writeError sends {"error":code} as JSON.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
