package hxtreeecho

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxtree"
	"github.com/pthm/hxtree/components"
)

func newApp() *hxtree.App {
	kinds := hxtree.NewKinds()
	components.Register(kinds)

	build := func(ctx context.Context) (*hxtree.Node, error) {
		return hxtree.New(hxtree.RootID, &components.Group{}, hxtree.WithChildren(
			hxtree.MustNew("title", &components.HTML{Tag: "h1", Text: "Hello"}),
		))
	}
	return hxtree.NewApp(build,
		hxtree.WithKinds(kinds),
		hxtree.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestMount(t *testing.T) {
	e := echo.New()
	Mount(e, newApp())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `<h1 id="title">Hello</h1>`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("no session cookie set")
	}
}

func TestMountServesClientScript(t *testing.T) {
	e := echo.New()
	Mount(e, newApp())

	req := httptest.NewRequest(http.MethodGet, hxtree.ClientScriptPath, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestMountWithPath(t *testing.T) {
	e := echo.New()
	Mount(e, newApp(), WithPath("/page"))

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /page status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET / status = %d, want 404", rec.Code)
	}
}

func TestMountGroup(t *testing.T) {
	e := echo.New()
	var seen bool
	g := e.Group("/app", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			seen = true
			return next(c)
		}
	})
	MountGroup(g, newApp())

	req := httptest.NewRequest(http.MethodGet, "/app/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !seen {
		t.Error("group middleware did not run")
	}
}

func TestCSRFProtection(t *testing.T) {
	e := echo.New()
	Mount(e, newApp())

	// POST without X-Requested-With header should be forbidden
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("handler=x&component_id=title"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for POST without X-Requested-With, got %d", rec.Code)
	}
}

func TestEventWithoutSession(t *testing.T) {
	e := echo.New()
	Mount(e, newApp())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("handler=x&component_id=title"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestRender(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hi</p>")
		return err
	})
	if err := Render(c, comp); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rec.Body.String() != "<p>hi</p>" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}
