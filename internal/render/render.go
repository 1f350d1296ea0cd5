// Package render turns a form tree into terminal output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/formtree/internal/models"
)

// Format selects an output representation
type Format string

const (
	FormatOutline Format = "outline"
	FormatJSON    Format = "json"
	FormatTOON    Format = "toon"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatOutline, FormatJSON, FormatTOON:
		return f, nil
	case "":
		return FormatOutline, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be: outline, json, toon)", s)
	}
}

// Options tune outline output
type Options struct {
	// MaxDepth collapses containers deeper than this; zero shows everything
	MaxDepth int
}

// Write renders tree to w in format
func Write(w io.Writer, tree models.Node, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return JSON(w, tree)
	case FormatTOON:
		return TOON(w, tree)
	default:
		return Outline(w, tree, opts)
	}
}

// Outline writes an indented, human-readable view of the tree
func Outline(w io.Writer, tree models.Node, opts Options) error {
	var b strings.Builder

	models.Walk(tree, func(n models.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)

		switch v := n.(type) {
		case *models.Page, *models.Section:
			marker := "#"
			if _, ok := v.(*models.Section); ok {
				marker = "##"
			}
			title := models.DisplayTitle(n)
			if title == "" {
				title = "(untitled " + models.TypeTag(n) + ")"
			}
			fmt.Fprintf(&b, "%s%s %s\n", indent, marker, title)

			if opts.MaxDepth > 0 && depth >= opts.MaxDepth && len(n.NodeChildren()) > 0 {
				fmt.Fprintf(&b, "%s  ... %d more\n", indent, len(n.NodeChildren()))
				return false
			}

		case *models.Question:
			writeQuestion(&b, indent, v)
		}
		return true
	})

	_, err := io.WriteString(w, b.String())
	return err
}

func writeQuestion(b *strings.Builder, indent string, q *models.Question) {
	switch q.Kind() {
	case models.KindImage:
		title := models.DisplayTitle(q)
		if title == "" {
			title = "(image)"
		}
		fmt.Fprintf(b, "%s- [image] %s\n", indent, title)
		if u := q.ImageURL(); u != nil {
			fmt.Fprintf(b, "%s  %s\n", indent, u.String())
		}
	default:
		if !models.HasVisibleTitle(q) {
			fmt.Fprintf(b, "%s- (empty question)\n", indent)
			return
		}
		fmt.Fprintf(b, "%s- %s\n", indent, models.DisplayTitle(q))
		// Content is already shown as the title when there is no title
		if q.Title != nil {
			if c := q.TextContent(); c != nil && *c != "" {
				fmt.Fprintf(b, "%s  %s\n", indent, *c)
			}
		}
	}
}

// JSON writes the tree in its wire format
func JSON(w io.Writer, tree models.Node) error {
	data, err := models.EncodeIndent(tree)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// TOON writes the tree as Token-Oriented Object Notation, a compact form for
// feeding the questionnaire to language-model tooling
func TOON(w io.Writer, tree models.Node) error {
	data, err := models.Encode(tree)
	if err != nil {
		return err
	}

	return TOONFromJSON(w, data)
}

// TOONFromJSON re-encodes a JSON document as TOON. gotoon works on plain maps
// and slices, so structs and trees go through their JSON form first.
func TOONFromJSON(w io.Writer, data []byte) error {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to prepare toon input: %w", err)
	}

	out, err := gotoon.Encode(generic)
	if err != nil {
		return fmt.Errorf("failed to encode toon: %w", err)
	}

	_, err = fmt.Fprintln(w, out)
	return err
}
