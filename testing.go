package hxtree

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult holds the result of rendering or reconciling a tree in tests.
//
// Provides convenience methods for asserting on HTML content, patches,
// messages, headers and status codes.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
	Response   *Response
	Messages   []Message
}

// TestRender renders a node and returns testable output.
//
// Use this for unit tests of widget markup when you build the node directly
// and don't need a cycle or HTTP mechanics.
//
//	result, err := hxtree.TestRender(node)
//	if !result.HTMLContains("expected text") {
//	    t.Fatal("missing expected content")
//	}
func TestRender(n *Node) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), n)
}

// TestRenderWithContext renders a node with a custom context.
func TestRenderWithContext(ctx context.Context, n *Node) (*TestResult, error) {
	html, err := n.Render(ctx)
	if err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       html,
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestReconcile runs one cycle against root in memory, without sessions or
// HTTP. formData holds the posted fields, including handler and
// component_id:
//
//	result, err := hxtree.TestReconcile(root, map[string]string{
//	    "handler":      "increment",
//	    "component_id": "counter-btn",
//	})
//	html, ok := result.PatchFor("#counter-group")
func TestReconcile(root *Node, formData map[string]string) (*TestResult, error) {
	form := Form{}
	for k, v := range formData {
		form[k] = []string{v}
	}
	return TestReconcileForm(context.Background(), root, form)
}

// TestReconcileForm is like TestReconcile but takes a full Form, for list
// values such as "<id>[]".
func TestReconcileForm(ctx context.Context, root *Node, form Form) (*TestResult, error) {
	resp, err := Reconcile(ctx, root, form)
	if err != nil {
		return nil, err
	}
	return &TestResult{
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
		Response:   resp,
		Messages:   resp.Messages,
	}, nil
}

// TestSession drives an http.Handler serving an App like a browser tab:
// cookies set by responses are sent with later requests.
//
//	s := hxtree.NewTestSession(app)
//	page, _ := s.Get()
//	result, _ := s.Post(map[string]string{"handler": "increment", "component_id": "counter-btn"})
type TestSession struct {
	handler http.Handler
	path    string
	cookies map[string]*http.Cookie
	headers map[string]string
}

// NewTestSession creates a session against h at path "/".
func NewTestSession(h http.Handler) *TestSession {
	return &TestSession{
		handler: h,
		path:    "/",
		cookies: make(map[string]*http.Cookie),
		headers: map[string]string{"X-Requested-With": "XMLHttpRequest"},
	}
}

// WithHeader sets a header sent with every POST. An empty value removes it.
func (s *TestSession) WithHeader(key, value string) *TestSession {
	if value == "" {
		delete(s.headers, key)
	} else {
		s.headers[key] = value
	}
	return s
}

// Get loads the page, building a fresh tree.
func (s *TestSession) Get() (*TestResult, error) {
	req := httptest.NewRequest(http.MethodGet, s.path, nil)
	return s.do(req)
}

// Post sends an event with the given form fields.
func (s *TestSession) Post(formData map[string]string) (*TestResult, error) {
	form := url.Values{}
	for k, v := range formData {
		form.Set(k, v)
	}
	return s.PostForm(form)
}

// PostForm sends an event with a full form, for list values.
func (s *TestSession) PostForm(form url.Values) (*TestResult, error) {
	req := httptest.NewRequest(http.MethodPost, s.path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	return s.do(req)
}

func (s *TestSession) do(req *http.Request) (*TestResult, error) {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		s.cookies[c.Name] = c
	}

	result := &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}

	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") && rec.Code == http.StatusOK {
		var resp Response
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			return nil, err
		}
		result.Response = &resp
		result.Messages = resp.Messages
	} else {
		result.Messages = parseMessagesFromHTML(result.HTML)
	}

	return result, nil
}

// ClearCookies forgets the session cookie, as if the browser dropped it.
func (s *TestSession) ClearCookies() {
	s.cookies = make(map[string]*http.Cookie)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// PatchFor returns the HTML patched into selector.
func (r *TestResult) PatchFor(selector string) (string, bool) {
	if r.Response == nil {
		return "", false
	}
	return r.Response.Patch(selector)
}

// PatchCount returns the number of patches in the response.
func (r *TestResult) PatchCount() int {
	if r.Response == nil {
		return 0
	}
	return len(r.Response.HTML)
}

// HasMessage checks if a message with the given type and text was queued.
func (r *TestResult) HasMessage(kind, text string) bool {
	for _, m := range r.Messages {
		if m.Type == kind && m.Text == text {
			return true
		}
	}
	return false
}

// HasMessageType checks if any message of the given type was queued.
func (r *TestResult) HasMessageType(kind string) bool {
	for _, m := range r.Messages {
		if m.Type == kind {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// GetHeader returns the value of a header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// parseMessagesFromHTML extracts messages rendered by RenderMessages.
// Looks for patterns like: <div class="toast toast-success" ...>text</div>
func parseMessagesFromHTML(html string) []Message {
	var msgs []Message

	const prefix = `<div class="toast toast-`
	idx := 0
	for {
		start := strings.Index(html[idx:], prefix)
		if start == -1 {
			break
		}
		start += idx + len(prefix)

		// Extract type (until the next quote)
		kindEnd := strings.Index(html[start:], `"`)
		if kindEnd == -1 {
			break
		}
		kind := html[start : start+kindEnd]

		// Find the closing > of the opening tag
		tagEnd := strings.Index(html[start:], ">")
		if tagEnd == -1 {
			break
		}
		contentStart := start + tagEnd + 1

		contentEnd := strings.Index(html[contentStart:], "</div>")
		if contentEnd == -1 {
			break
		}

		msgs = append(msgs, Message{
			Type: kind,
			Text: html[contentStart : contentStart+contentEnd],
		})

		idx = contentStart + contentEnd
	}

	return msgs
}
