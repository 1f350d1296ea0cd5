package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Wire discriminators. Questions use their QuestionKind as tag.
const (
	tagPage    = "page"
	tagSection = "section"
)

var (
	// ErrMissingType is returned when a node has no "type" field
	ErrMissingType = errors.New("missing type")
	// ErrUnknownType is returned for a "type" outside page|section|text|image
	ErrUnknownType = errors.New("unknown type")
	// ErrInvalidURI is returned when "src" is not a well-formed URI
	ErrInvalidURI = errors.New("invalid uri")
	// ErrNilNode is returned when encoding a nil node or a question without a body
	ErrNilNode = errors.New("nil node")
)

var validate = validator.New()

// DecodeError reports a payload that does not describe a valid tree
type DecodeError struct {
	Path string // location of the offending node, e.g. $.items[2]
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// wireNode is the JSON shape shared by the network payload, the bundled form
// and the cache file. Items is a pointer so that an absent list and an empty
// list survive a round trip.
type wireNode struct {
	Type  string      `json:"type"`
	Title *string     `json:"title,omitempty"`
	Items *[]wireNode `json:"items,omitempty"`
	Src   *string     `json:"src,omitempty"`
	Text  *string     `json:"text,omitempty"`
}

// Decode parses a JSON payload into a tree
func Decode(payload []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, &DecodeError{Path: "$", Err: err}
	}
	return fromWire(&w, "$")
}

func fromWire(w *wireNode, path string) (Node, error) {
	switch w.Type {
	case "":
		return nil, &DecodeError{Path: path, Err: ErrMissingType}
	case tagPage, tagSection:
		children, err := childrenFromWire(w.Items, path)
		if err != nil {
			return nil, err
		}
		if w.Type == tagPage {
			return &Page{Title: w.Title, Children: children}, nil
		}
		return &Section{Title: w.Title, Children: children}, nil
	case string(KindText):
		return &Question{Title: w.Title, Body: TextBody{Content: w.Text}}, nil
	case string(KindImage):
		body := ImageBody{}
		if w.Src != nil {
			u, err := parseURI(*w.Src)
			if err != nil {
				return nil, &DecodeError{Path: path + ".src", Err: err}
			}
			body.URL = u
		}
		return &Question{Title: w.Title, Body: body}, nil
	default:
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w %q", ErrUnknownType, w.Type)}
	}
}

func childrenFromWire(items *[]wireNode, path string) ([]Node, error) {
	if items == nil {
		return nil, nil
	}
	children := make([]Node, 0, len(*items))
	for i := range *items {
		child, err := fromWire(&(*items)[i], path+".items["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func parseURI(s string) (*url.URL, error) {
	if err := validate.Var(s, "required,uri"); err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidURI, s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidURI, s, err)
	}
	return u, nil
}

// Encode serializes a tree to its JSON wire form
func Encode(n Node) ([]byte, error) {
	w, err := toWire(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// EncodeIndent is Encode with indentation, for human-facing output
func EncodeIndent(n Node) ([]byte, error) {
	w, err := toWire(n)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(w, "", "  ")
}

func toWire(n Node) (*wireNode, error) {
	switch v := n.(type) {
	case *Page:
		if v == nil {
			return nil, fmt.Errorf("cannot encode page: %w", ErrNilNode)
		}
		items, err := childrenToWire(v.Children)
		if err != nil {
			return nil, err
		}
		return &wireNode{Type: tagPage, Title: v.Title, Items: items}, nil
	case *Section:
		if v == nil {
			return nil, fmt.Errorf("cannot encode section: %w", ErrNilNode)
		}
		items, err := childrenToWire(v.Children)
		if err != nil {
			return nil, err
		}
		return &wireNode{Type: tagSection, Title: v.Title, Items: items}, nil
	case *Question:
		if v == nil {
			return nil, fmt.Errorf("cannot encode question: %w", ErrNilNode)
		}
		if v.Body == nil {
			return nil, fmt.Errorf("cannot encode question without a body: %w", ErrNilNode)
		}
		w := &wireNode{Type: string(v.Kind()), Title: v.Title}
		switch b := v.Body.(type) {
		case TextBody:
			w.Text = b.Content
		case ImageBody:
			if b.URL != nil {
				s := b.URL.String()
				w.Src = &s
			}
		}
		return w, nil
	default:
		return nil, fmt.Errorf("cannot encode node of type %T", n)
	}
}

func childrenToWire(children []Node) (*[]wireNode, error) {
	if children == nil {
		return nil, nil
	}
	items := make([]wireNode, 0, len(children))
	for _, c := range children {
		w, err := toWire(c)
		if err != nil {
			return nil, err
		}
		items = append(items, *w)
	}
	return &items, nil
}
