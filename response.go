package hxtree

import (
	"encoding/json"
	"errors"
)

// Patch is a rendered fragment that replaces the element matched by
// Selector in the browser DOM.
//
// On the wire a patch is a two-element array: ["#id", "<html>"].
type Patch struct {
	Selector string
	HTML     string
}

// MarshalJSON encodes the patch as [selector, html].
func (p Patch) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Selector, p.HTML})
}

// UnmarshalJSON decodes a [selector, html] pair.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return errors.New("hxtree: patch must be a [selector, html] pair")
	}
	p.Selector, p.HTML = pair[0], pair[1]
	return nil
}

// Response is the JSON payload of a state-changing request.
//
//	{"html": [["#counter", "<div id=\"counter\">2</div>"]], "messages": [{"text": "Saved", "type": "success"}]}
type Response struct {
	HTML     []Patch   `json:"html"`
	Messages []Message `json:"messages"`
}

// Patch returns the HTML patched into selector, if any.
func (r *Response) Patch(selector string) (string, bool) {
	for _, p := range r.HTML {
		if p.Selector == selector {
			return p.HTML, true
		}
	}
	return "", false
}

// collect walks the tree in pre-order gathering pending patches and
// messages. The root's own entries come first.
func collect(root *Node) *Response {
	resp := &Response{
		HTML:     []Patch{},
		Messages: []Message{},
	}
	root.Walk(func(n *Node) bool {
		if n.patch != nil {
			resp.HTML = append(resp.HTML, *n.patch)
		}
		resp.Messages = append(resp.Messages, n.messages...)
		return true
	})
	return resp
}
