package richtext

import (
	"fmt"
	"strings"
)

// Markdown renders a document tree to GitHub-style markdown. The result feeds
// goldmark (web) and glamour (TUI), so it only needs to cover the node types
// the editor emits; unknown branch nodes render their children in place.
func Markdown(n Node) string {
	if n.Type != TypeDoc {
		return ""
	}
	blocks := renderBlocks(n.Content)
	return strings.Join(blocks, "\n\n")
}

func renderBlocks(nodes []Node) []string {
	var out []string
	for _, c := range nodes {
		if b := renderBlock(c); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func renderBlock(n Node) string {
	switch n.Type {
	case TypeHeading:
		level := intAttr(n.Attrs, "level", 1)
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + renderInline(n.Content)

	case TypeParagraph:
		return renderInline(n.Content)

	case TypeBulletList:
		var lines []string
		for _, item := range n.Content {
			lines = append(lines, renderListItem(item, "- "))
		}
		return strings.Join(lines, "\n")

	case TypeOrderedList:
		start := intAttr(n.Attrs, "start", 1)
		var lines []string
		for i, item := range n.Content {
			lines = append(lines, renderListItem(item, fmt.Sprintf("%d. ", start+i)))
		}
		return strings.Join(lines, "\n")

	case TypeTaskList:
		var lines []string
		for _, item := range n.Content {
			box := "- [ ] "
			if boolAttr(item.Attrs, "checked") {
				box = "- [x] "
			}
			lines = append(lines, renderListItem(item, box))
		}
		return strings.Join(lines, "\n")

	case TypeBlockquote:
		inner := strings.Join(renderBlocks(n.Content), "\n\n")
		var quoted []string
		for _, line := range strings.Split(inner, "\n") {
			quoted = append(quoted, strings.TrimRight("> "+line, " "))
		}
		return strings.Join(quoted, "\n")

	case TypeCodeBlock:
		lang := stringAttr(n.Attrs, "language")
		return "```" + lang + "\n" + inlineText(n.Content) + "\n```"

	case TypeHorizontalRule:
		return "---"

	default:
		// Transparent container: render children as sibling blocks.
		return strings.Join(renderBlocks(n.Content), "\n\n")
	}
}

// renderListItem renders an item's blocks under a bullet prefix; continuation
// lines are indented to keep nested content attached to the item.
func renderListItem(item Node, prefix string) string {
	inner := strings.Join(renderBlocks(item.Content), "\n")
	lines := strings.Split(inner, "\n")
	indent := strings.Repeat(" ", len(prefix))
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
			continue
		}
		if strings.TrimSpace(lines[i]) != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func renderInline(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case TypeText:
			b.WriteString(applyMarks(n.Text, n.Marks))
		case TypeHardBreak:
			b.WriteString("\n")
		default:
			b.WriteString(renderInline(n.Content))
		}
	}
	return b.String()
}

func inlineText(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		if n.Type == TypeText {
			b.WriteString(n.Text)
			continue
		}
		b.WriteString(inlineText(n.Content))
	}
	return b.String()
}

func applyMarks(text string, marks []Mark) string {
	for _, m := range marks {
		switch m.Type {
		case "bold", "strong":
			text = "**" + text + "**"
		case "italic", "em":
			text = "*" + text + "*"
		case "code":
			text = "`" + text + "`"
		case "strike":
			text = "~~" + text + "~~"
		case "link":
			href := stringAttr(m.Attrs, "href")
			if href != "" {
				text = "[" + text + "](" + href + ")"
			}
		}
	}
	return text
}
