package richtext

import (
	"encoding/json"
	"strings"
)

// Node is one node of the structured document tree stored in a page's content
// field (the editor interchange format). Branch nodes carry Content; text
// leaves carry Text and optional Marks. Attrs are kept as-is so unknown
// attributes survive a parse/serialize round trip.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Text    string         `json:"text,omitempty"`
}

type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Known node types. Renderers treat unrecognized types as transparent
// containers rather than failing.
const (
	TypeDoc            = "doc"
	TypeHeading        = "heading"
	TypeParagraph      = "paragraph"
	TypeText           = "text"
	TypeBulletList     = "bulletList"
	TypeOrderedList    = "orderedList"
	TypeListItem       = "listItem"
	TypeTaskList       = "taskList"
	TypeTaskItem       = "taskItem"
	TypeBlockquote     = "blockquote"
	TypeCodeBlock      = "codeBlock"
	TypeHorizontalRule = "horizontalRule"
	TypeHardBreak      = "hardBreak"
)

// EmptyDocJSON is the canonical empty document: what a fresh page holds, and
// what corrupt content degrades to on read.
const EmptyDocJSON = `{"type":"doc","content":[{"type":"paragraph"}]}`

// EmptyDocument returns a fresh canonical empty document.
func EmptyDocument() Node {
	return Node{Type: TypeDoc, Content: []Node{{Type: TypeParagraph}}}
}

// Parse converts stored page content into a document tree. Malformed, empty,
// or non-document input yields the canonical empty document; corrupt content
// must never surface as a failure to the editing surface.
func Parse(content string) Node {
	n, ok := parseStrict(content)
	if !ok {
		return EmptyDocument()
	}
	return n
}

func parseStrict(content string) (Node, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Node{}, false
	}
	var n Node
	if err := json.Unmarshal([]byte(content), &n); err != nil {
		return Node{}, false
	}
	if n.Type != TypeDoc {
		return Node{}, false
	}
	return n, true
}

// JSON serializes a document tree back to the stored string form. Round trip
// with Parse is content-preserving for any document the editor can produce.
func (n Node) JSON() string {
	b, err := json.Marshal(n)
	if err != nil {
		return EmptyDocJSON
	}
	return string(b)
}

// SearchableText flattens all text leaves to one lowercase string for
// substring search. Unparsable content returns "" and so contributes no match.
func SearchableText(content string) string {
	n, ok := parseStrict(content)
	if !ok {
		return ""
	}
	var parts []string
	collectText(n, &parts)
	return strings.ToLower(strings.Join(parts, " "))
}

func collectText(n Node, out *[]string) {
	if t := strings.TrimSpace(n.Text); t != "" {
		*out = append(*out, t)
	}
	for _, c := range n.Content {
		collectText(c, out)
	}
}

// intAttr reads a numeric attribute. JSON numbers decode as float64.
func intAttr(attrs map[string]any, key string, def int) int {
	v, ok := attrs[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case float64:
		return int(x)
	case int:
		return x
	default:
		return def
	}
}

func boolAttr(attrs map[string]any, key string) bool {
	v, ok := attrs[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func stringAttr(attrs map[string]any, key string) string {
	v, ok := attrs[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
