package richtext

import (
	"reflect"
	"testing"
)

func TestParse_CorruptContentRecovers(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"not json",
		`{"broken":`,
		`5`,
		`"just a string"`,
		`{"type":"paragraph"}`, // valid JSON, not a document
	}
	want := EmptyDocument()
	for _, c := range cases {
		got := Parse(c)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Parse(%q) = %+v, want canonical empty document", c, got)
		}
	}
}

func TestParse_RoundTripPreservesContent(t *testing.T) {
	src := `{"type":"doc","content":[` +
		`{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Title"}]},` +
		`{"type":"paragraph","content":[{"type":"text","marks":[{"type":"bold"}],"text":"hi"}]},` +
		`{"type":"taskList","content":[{"type":"taskItem","attrs":{"checked":true},"content":[{"type":"paragraph","content":[{"type":"text","text":"done"}]}]}]}` +
		`]}`

	doc := Parse(src)
	again := Parse(doc.JSON())
	if !reflect.DeepEqual(doc, again) {
		t.Fatalf("round trip changed document:\nfirst:  %+v\nsecond: %+v", doc, again)
	}
	if doc.Content[0].Type != TypeHeading {
		t.Fatalf("expected heading, got %q", doc.Content[0].Type)
	}
	if lvl := intAttr(doc.Content[0].Attrs, "level", 0); lvl != 2 {
		t.Fatalf("expected level 2, got %d", lvl)
	}
}

func TestSearchableText(t *testing.T) {
	src := `{"type":"doc","content":[` +
		`{"type":"heading","attrs":{"level":1},"content":[{"type":"text","text":"Hello"}]},` +
		`{"type":"paragraph","content":[{"type":"text","text":"World ABC"}]}` +
		`]}`

	got := SearchableText(src)
	if got != "hello world abc" {
		t.Fatalf("SearchableText = %q", got)
	}

	if got := SearchableText("not json"); got != "" {
		t.Fatalf("expected empty text for corrupt content, got %q", got)
	}
	if got := SearchableText(""); got != "" {
		t.Fatalf("expected empty text for blank content, got %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	src := `{"type":"doc","content":[` +
		`{"type":"heading","attrs":{"level":1},"content":[{"type":"text","text":"Hello!"}]},` +
		`{"type":"paragraph","content":[{"type":"text","text":"plain "},{"type":"text","marks":[{"type":"bold"}],"text":"bold"}]},` +
		`{"type":"bulletList","content":[` +
		`{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"one"}]}]},` +
		`{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"two"}]}]}` +
		`]},` +
		`{"type":"taskList","content":[` +
		`{"type":"taskItem","attrs":{"checked":false},"content":[{"type":"paragraph","content":[{"type":"text","text":"todo"}]}]},` +
		`{"type":"taskItem","attrs":{"checked":true},"content":[{"type":"paragraph","content":[{"type":"text","text":"did"}]}]}` +
		`]}` +
		`]}`

	want := "# Hello!\n\n" +
		"plain **bold**\n\n" +
		"- one\n- two\n\n" +
		"- [ ] todo\n- [x] did"

	if got := Markdown(Parse(src)); got != want {
		t.Fatalf("Markdown mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestMarkdown_EmptyDocument(t *testing.T) {
	if got := Markdown(EmptyDocument()); got != "" {
		t.Fatalf("empty document should render empty markdown, got %q", got)
	}
}

func TestMarkdown_CodeBlockAndQuote(t *testing.T) {
	src := `{"type":"doc","content":[` +
		`{"type":"blockquote","content":[{"type":"paragraph","content":[{"type":"text","text":"quoted"}]}]},` +
		`{"type":"codeBlock","attrs":{"language":"go"},"content":[{"type":"text","text":"x := 1"}]},` +
		`{"type":"horizontalRule"}` +
		`]}`

	want := "> quoted\n\n```go\nx := 1\n```\n\n---"
	if got := Markdown(Parse(src)); got != want {
		t.Fatalf("Markdown mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}
