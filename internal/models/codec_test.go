package models

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("failed to parse url %q: %v", s, err)
	}
	return u
}

func TestDecodeImageQuestion(t *testing.T) {
	n, err := Decode([]byte(`{"type":"image","title":"X","src":"https://e/i.jpg"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, ok := n.(*Question)
	if !ok {
		t.Fatalf("expected *Question, got %T", n)
	}
	if q.Kind() != KindImage {
		t.Errorf("expected kind image, got %s", q.Kind())
	}
	if q.Title == nil || *q.Title != "X" {
		t.Errorf("expected title 'X', got %v", q.Title)
	}
	if q.ImageURL() == nil || q.ImageURL().String() != "https://e/i.jpg" {
		t.Errorf("expected image url 'https://e/i.jpg', got %v", q.ImageURL())
	}
	if q.TextContent() != nil {
		t.Error("image question should not carry text content")
	}
}

func TestDecodeNestedTree(t *testing.T) {
	payload := `{
		"type": "page",
		"title": "Intake",
		"items": [
			{
				"type": "section",
				"title": "About you",
				"items": [
					{"type": "text", "title": "Name", "text": "Your full name"},
					{"type": "text", "text": "Untitled prompt"},
					{"type": "image", "title": "Photo", "src": "https://example.com/p.png"}
				]
			},
			{"type": "section", "title": "Empty"}
		]
	}`

	got, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Page{
		Title: String("Intake"),
		Children: []Node{
			&Section{
				Title: String("About you"),
				Children: []Node{
					&Question{Title: String("Name"), Body: TextBody{Content: String("Your full name")}},
					&Question{Body: TextBody{Content: String("Untitled prompt")}},
					&Question{Title: String("Photo"), Body: ImageBody{URL: mustURL(t, "https://example.com/p.png")}},
				},
			},
			&Section{Title: String("Empty")},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded tree mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantErr  error
		wantPath string
	}{
		{
			name:     "bogus type",
			payload:  `{"type":"bogus"}`,
			wantErr:  ErrUnknownType,
			wantPath: "$",
		},
		{
			name:     "missing type",
			payload:  `{"title":"no tag"}`,
			wantErr:  ErrMissingType,
			wantPath: "$",
		},
		{
			name:     "capitalized legacy tag",
			payload:  `{"type":"Page"}`,
			wantErr:  ErrUnknownType,
			wantPath: "$",
		},
		{
			name:     "bad nested type",
			payload:  `{"type":"page","items":[{"type":"section"},{"type":"question"}]}`,
			wantErr:  ErrUnknownType,
			wantPath: "$.items[1]",
		},
		{
			name:     "malformed uri",
			payload:  `{"type":"image","src":"not a uri"}`,
			wantErr:  ErrInvalidURI,
			wantPath: "$.src",
		},
		{
			name:     "empty uri",
			payload:  `{"type":"image","src":""}`,
			wantErr:  ErrInvalidURI,
			wantPath: "$.src",
		},
		{
			name:     "not json",
			payload:  `<html>maintenance</html>`,
			wantPath: "$",
		},
		{
			name:     "list instead of root",
			payload:  `[{"type":"page"}]`,
			wantPath: "$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			if err == nil {
				t.Fatal("expected error but got none")
			}

			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("expected *DecodeError, got %T: %v", err, err)
			}
			if decErr.Path != tt.wantPath {
				t.Errorf("expected path %s, got %s", tt.wantPath, decErr.Path)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecodeIgnoresFieldsOutsideVariant(t *testing.T) {
	got, err := Decode([]byte(`{"type":"text","title":"Q","items":[{"type":"page"}],"src":"https://e/x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Question{Title: String("Q"), Body: TextBody{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tree Node
	}{
		{
			name: "page with empty children",
			tree: &Page{Title: String("A"), Children: []Node{}},
		},
		{
			name: "page with absent children",
			tree: &Page{Title: String("A")},
		},
		{
			name: "untitled section",
			tree: &Section{Children: []Node{&Question{Body: TextBody{}}}},
		},
		{
			name: "image without src",
			tree: &Question{Title: String("pic"), Body: ImageBody{}},
		},
		{
			name: "deep tree",
			tree: &Page{
				Title: String("root"),
				Children: []Node{
					&Section{
						Title: String("s1"),
						Children: []Node{
							&Section{
								Title: String("s1.1"),
								Children: []Node{
									&Question{Title: String("q"), Body: TextBody{Content: String("body")}},
									&Question{Body: ImageBody{URL: mustURL(t, "https://cdn.example.com/a/b.jpg?w=120#top")}},
								},
							},
						},
					},
					&Page{Title: String("")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.tree)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}

			got, err := Decode(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}

			if diff := cmp.Diff(tt.tree, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeEmptyChildrenAsList(t *testing.T) {
	data, err := Encode(&Page{Title: String("A"), Children: []Node{}})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.Contains(string(data), `"items":[]`) {
		t.Errorf("expected empty items list in %s", data)
	}

	data, err = Encode(&Page{Title: String("A")})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if strings.Contains(string(data), `"items"`) {
		t.Errorf("expected no items field in %s", data)
	}
}

func TestEncodeRejectsUnrepresentableNodes(t *testing.T) {
	tests := []struct {
		name string
		tree Node
	}{
		{name: "nil node", tree: nil},
		{name: "nil page", tree: (*Page)(nil)},
		{name: "nil section child", tree: &Page{Children: []Node{(*Section)(nil)}}},
		{name: "nil question child", tree: &Page{Children: []Node{(*Question)(nil)}}},
		{name: "question without body", tree: &Question{Title: String("q")}},
		{
			name: "nested question without body",
			tree: &Page{Title: String("A"), Children: []Node{&Section{Children: []Node{&Question{Title: String("q")}}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.tree)
			if err == nil {
				t.Fatalf("expected error, got %s", data)
			}
			if tt.tree != nil && !errors.Is(err, ErrNilNode) {
				t.Errorf("expected ErrNilNode, got %v", err)
			}
		})
	}
}
