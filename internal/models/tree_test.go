package models

import "testing"

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name        string
		node        Node
		wantTitle   string
		wantVisible bool
	}{
		{
			name:        "page with title",
			node:        &Page{Title: String("Test Title")},
			wantTitle:   "Test Title",
			wantVisible: true,
		},
		{
			name:        "text question falls back to content",
			node:        &Question{Body: TextBody{Content: String("Test Content")}},
			wantTitle:   "Test Content",
			wantVisible: true,
		},
		{
			name:        "title wins over content",
			node:        &Question{Title: String("T"), Body: TextBody{Content: String("C")}},
			wantTitle:   "T",
			wantVisible: true,
		},
		{
			name:        "image question without title",
			node:        &Question{Body: ImageBody{}},
			wantTitle:   "",
			wantVisible: false,
		},
		{
			name:        "page without title",
			node:        &Page{},
			wantTitle:   "",
			wantVisible: false,
		},
		{
			name:        "empty title is not visible",
			node:        &Section{Title: String("")},
			wantTitle:   "",
			wantVisible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayTitle(tt.node); got != tt.wantTitle {
				t.Errorf("expected display title %q, got %q", tt.wantTitle, got)
			}
			if got := HasVisibleTitle(tt.node); got != tt.wantVisible {
				t.Errorf("expected visible %v, got %v", tt.wantVisible, got)
			}
		})
	}
}

func TestTypeTag(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Page{}, "page"},
		{&Section{}, "section"},
		{&Question{Body: TextBody{}}, "text"},
		{&Question{Body: ImageBody{}}, "image"},
	}

	for _, tt := range tests {
		if got := TypeTag(tt.node); got != tt.want {
			t.Errorf("expected tag %s, got %s", tt.want, got)
		}
	}
}

func TestWalkOrderAndDepth(t *testing.T) {
	tree := &Page{
		Title: String("p"),
		Children: []Node{
			&Section{
				Title:    String("s"),
				Children: []Node{&Question{Title: String("q1"), Body: TextBody{}}},
			},
			&Question{Title: String("q2"), Body: TextBody{}},
		},
	}

	var visited []string
	var depths []int
	Walk(tree, func(n Node, depth int) bool {
		visited = append(visited, DisplayTitle(n))
		depths = append(depths, depth)
		return true
	})

	wantVisited := []string{"p", "s", "q1", "q2"}
	wantDepths := []int{0, 1, 2, 1}
	for i := range wantVisited {
		if i >= len(visited) || visited[i] != wantVisited[i] || depths[i] != wantDepths[i] {
			t.Fatalf("expected %v at %v, got %v at %v", wantVisited, wantDepths, visited, depths)
		}
	}

	// Skipping children of the section
	count := 0
	Walk(tree, func(n Node, depth int) bool {
		count++
		_, isSection := n.(*Section)
		return !isSection
	})
	if count != 3 {
		t.Errorf("expected 3 visits when skipping section children, got %d", count)
	}
}

func TestCollectStats(t *testing.T) {
	tree := &Page{
		Title: String("root"),
		Children: []Node{
			&Section{
				Children: []Node{
					&Question{Title: String("a"), Body: TextBody{}},
					&Question{Body: ImageBody{}},
				},
			},
			&Section{Title: String("b"), Children: []Node{}},
		},
	}

	s := CollectStats(tree)
	want := Stats{Pages: 1, Sections: 2, TextQuestions: 1, ImageQuestions: 1, MaxDepth: 2, Untitled: 2}
	if s != want {
		t.Errorf("expected %+v, got %+v", want, s)
	}
	if s.Total() != 5 {
		t.Errorf("expected total 5, got %d", s.Total())
	}
}
