package hxtree

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pthm/hxtree/lib/session"
)

// DefaultCookieName is the cookie holding the signed session id.
const DefaultCookieName = "hxtree_session"

const maxFormMemory = 32 << 20

// BuildFunc builds a fresh tree for the initial page load. The root should
// use RootID as its id.
type BuildFunc func(ctx context.Context) (*Node, error)

// App serves a component tree over HTTP.
//
// A GET builds a fresh tree, renders it into the layout and stores it in the
// session. A POST loads the session's tree, runs one Reconcile cycle and
// answers with the JSON Response. The whole tree is saved back after every
// successful cycle.
//
//	kinds := hxtree.NewKinds()
//	components.Register(kinds)
//	app := hxtree.NewApp(buildPage, hxtree.WithKinds(kinds), hxtree.WithStore(store))
//	http.Handle("/", app.Handler())
type App struct {
	build      BuildFunc
	kinds      *Kinds
	store      session.Store
	encoder    *Encoder
	logger     *slog.Logger
	layout     LayoutFunc
	metrics    *metrics
	cookieName string
	cookiePath string
	secure     bool

	// OnError is called when a cycle or page load fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// AppOption configures an App.
type AppOption func(*App)

// WithKinds sets the widget kinds used to decode session trees.
func WithKinds(k *Kinds) AppOption {
	return func(a *App) {
		a.kinds = k
	}
}

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(s session.Store) AppOption {
	return func(a *App) {
		a.store = s
	}
}

// WithKey sets the key used to sign session cookies.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) AppOption {
	return func(a *App) {
		enc, err := NewEncoder(key)
		if err != nil {
			panic(fmt.Sprintf("hxtree: failed to create encoder: %v", err))
		}
		a.encoder = enc
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// WithLayout sets the page layout used on initial loads.
func WithLayout(l LayoutFunc) AppOption {
	return func(a *App) {
		a.layout = l
	}
}

// WithMetrics registers cycle metrics with reg.
func WithMetrics(reg prometheus.Registerer) AppOption {
	return func(a *App) {
		a.metrics = newMetrics(reg)
	}
}

// WithCookie sets the session cookie name and path.
func WithCookie(name, path string, secure bool) AppOption {
	return func(a *App) {
		a.cookieName = name
		a.cookiePath = path
		a.secure = secure
	}
}

// NewApp creates an app that builds fresh trees with build.
func NewApp(build BuildFunc, opts ...AppOption) *App {
	a := &App{
		build:      build,
		kinds:      NewKinds(),
		store:      session.NewMemory(session.DefaultSize, session.DefaultTTL),
		logger:     slog.Default(),
		layout:     DefaultLayout,
		cookieName: DefaultCookieName,
		cookiePath: "/",
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.encoder == nil {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxtree: failed to generate random key: %v", err))
		}
		WithKey(key)(a)
	}

	// Default error handler
	a.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case IsSessionNotFound(err):
			_ = WriteJSON(w, http.StatusConflict, errorBody{Error: "session expired", Reload: true})
		case IsBadRequest(err), IsDecryptionError(err), errors.Is(err, ErrInvalidFormat):
			_ = WriteJSON(w, http.StatusBadRequest, errorBody{Error: "bad request"})
		default:
			_ = WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		}
	}

	return a
}

type errorBody struct {
	Error  string `json:"error"`
	Reload bool   `json:"reload,omitempty"`
}

// Handler returns the app together with the client script route.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(ClientScriptPath, ClientScript())
	mux.Handle("/", a)
	return mux
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		a.servePage(w, r)
	case http.MethodPost:
		// CSRF protection: events must come from the client script
		if !IsAjax(r) {
			http.Error(w, "Forbidden: AJAX request required", http.StatusForbidden)
			return
		}
		a.serveEvent(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *App) servePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	root, err := a.build(ctx)
	if err != nil {
		a.fail(w, r, fmt.Errorf("hxtree: build tree: %w", err))
		return
	}

	content, err := InitialRender(ctx, root)
	if err != nil {
		a.fail(w, r, fmt.Errorf("hxtree: render tree: %w", err))
		return
	}
	msgs := collect(root).Messages
	root.reset()

	sid, err := a.sessionID(r)
	if err != nil {
		sid = uuid.NewString()
	}
	if err := a.save(ctx, sid, root); err != nil {
		a.fail(w, r, err)
		return
	}
	a.setCookie(w, sid)
	a.metrics.observePage()

	a.logger.DebugContext(ctx, "hxtree page", "session", sid, "root", root.String())
	if err := Render(w, r, a.layout(templ.Raw(content), msgs)); err != nil {
		a.logger.ErrorContext(ctx, "hxtree page write failed", "error", err)
	}
}

func (a *App) serveEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp, err := a.cycle(r)
	a.metrics.observeCycle(start, err, resp)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.logger.DebugContext(r.Context(), "hxtree cycle",
		"handler", r.PostForm.Get(FieldHandler),
		"patches", len(resp.HTML),
		"messages", len(resp.Messages),
		"took", time.Since(start))
	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		a.logger.ErrorContext(r.Context(), "hxtree response write failed", "error", err)
	}
}

// cycle loads the session tree, reconciles it with the posted form and
// saves it back. Nothing is saved when the cycle fails.
func (a *App) cycle(r *http.Request) (*Response, error) {
	ctx := r.Context()

	sid, err := a.sessionID(r)
	if err != nil {
		return nil, err
	}
	data, err := a.store.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	root, err := a.kinds.DecodeTree(data)
	if err != nil {
		return nil, err
	}

	if err := parseForm(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	resp, err := Reconcile(ctx, root, Form(r.PostForm))
	if err != nil {
		return nil, err
	}
	if err := a.save(ctx, sid, root); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *App) save(ctx context.Context, sid string, root *Node) error {
	data, err := EncodeTree(root)
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, sid, data); err != nil {
		return fmt.Errorf("hxtree: save session: %w", err)
	}
	return nil
}

func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.ErrorContext(r.Context(), "hxtree request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
	a.OnError(w, r, err)
}

// sessionID returns the verified session id from the request cookie.
func (a *App) sessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(a.cookieName)
	if err != nil {
		return "", ErrSessionNotFound
	}
	sid, err := a.encoder.Verify(c.Value)
	if err != nil {
		return "", wrapEncodingError(err)
	}
	return string(sid), nil
}

func (a *App) setCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    a.encoder.Sign([]byte(sid)),
		Path:     a.cookiePath,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}
