package models

import "net/url"

// Node is one element of a form tree: a *Page, *Section or *Question.
type Node interface {
	// NodeTitle returns the optional title of the node
	NodeTitle() *string
	// NodeChildren returns the child nodes (always nil for questions)
	NodeChildren() []Node

	node()
}

// Page is a top-level container node
type Page struct {
	Title    *string
	Children []Node
}

// Section is a container node nested inside a page
type Section struct {
	Title    *string
	Children []Node
}

// QuestionKind identifies what a question carries
type QuestionKind string

const (
	KindText  QuestionKind = "text"
	KindImage QuestionKind = "image"
)

// QuestionBody is the kind-specific payload of a question: TextBody or ImageBody.
type QuestionBody interface {
	Kind() QuestionKind
	questionBody()
}

// TextBody holds the text content of a text question
type TextBody struct {
	Content *string
}

// ImageBody holds the image location of an image question
type ImageBody struct {
	URL *url.URL
}

// Question is a leaf node. Body must be set; Encode rejects a question without one.
type Question struct {
	Title *string
	Body  QuestionBody
}

func (p *Page) NodeTitle() *string { return p.Title }
func (p *Page) NodeChildren() []Node { return p.Children }
func (*Page) node() {}
func (s *Section) NodeTitle() *string { return s.Title }
func (s *Section) NodeChildren() []Node { return s.Children }
func (*Section) node() {}
func (q *Question) NodeTitle() *string { return q.Title }
func (*Question) NodeChildren() []Node { return nil }
func (*Question) node() {}

func (TextBody) Kind() QuestionKind { return KindText }
func (TextBody) questionBody() {}
func (ImageBody) Kind() QuestionKind { return KindImage }
func (ImageBody) questionBody() {}

// Kind returns the question kind, defaulting to text when no body is set
func (q *Question) Kind() QuestionKind {
	if q.Body == nil {
		return KindText
	}
	return q.Body.Kind()
}

// TextContent returns the content of a text question, or nil
func (q *Question) TextContent() *string {
	if b, ok := q.Body.(TextBody); ok {
		return b.Content
	}
	return nil
}

// ImageURL returns the image location of an image question, or nil
func (q *Question) ImageURL() *url.URL {
	if b, ok := q.Body.(ImageBody); ok {
		return b.URL
	}
	return nil
}

// DisplayTitle returns the title if present, else the text content of a text
// question, else the empty string.
func DisplayTitle(n Node) string {
	if t := n.NodeTitle(); t != nil {
		return *t
	}
	if q, ok := n.(*Question); ok {
		if c := q.TextContent(); c != nil {
			return *c
		}
	}
	return ""
}

// HasVisibleTitle reports whether DisplayTitle is non-empty
func HasVisibleTitle(n Node) bool {
	return DisplayTitle(n) != ""
}

// TypeTag returns the wire discriminator for a node
func TypeTag(n Node) string {
	switch v := n.(type) {
	case *Page:
		return tagPage
	case *Section:
		return tagSection
	case *Question:
		return string(v.Kind())
	default:
		return ""
	}
}

// Walk visits n and its descendants depth-first, pre-order. Returning false
// from fn skips the children of the visited node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.NodeChildren() {
		walk(c, depth+1, fn)
	}
}

// Stats summarizes the shape of a tree
type Stats struct {
	Pages          int `json:"pages"`
	Sections       int `json:"sections"`
	TextQuestions  int `json:"text_questions"`
	ImageQuestions int `json:"image_questions"`
	MaxDepth       int `json:"max_depth"`
	Untitled       int `json:"untitled"`
}

// Total returns the number of nodes counted
func (s Stats) Total() int {
	return s.Pages + s.Sections + s.TextQuestions + s.ImageQuestions
}

// CollectStats walks the tree rooted at n
func CollectStats(n Node) Stats {
	var s Stats
	Walk(n, func(n Node, depth int) bool {
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if !HasVisibleTitle(n) {
			s.Untitled++
		}
		switch v := n.(type) {
		case *Page:
			s.Pages++
		case *Section:
			s.Sections++
		case *Question:
			if v.Kind() == KindImage {
				s.ImageQuestions++
			} else {
				s.TextQuestions++
			}
		}
		return true
	})
	return s
}

// String returns a pointer to s, for building optional fields
func String(s string) *string {
	return &s
}
