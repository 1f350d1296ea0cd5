package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pders01/formtree/internal/models"
)

// SampleJSON is a small form covering every node type
const SampleJSON = `{
  "type": "page",
  "title": "Onboarding",
  "items": [
    {
      "type": "section",
      "title": "Profile",
      "items": [
        {"type": "text", "title": "Name", "text": "What should we call you?"},
        {"type": "text", "text": "Where are you based?"},
        {"type": "image", "title": "Avatar", "src": "https://example.com/avatar.png"}
      ]
    },
    {"type": "section", "title": "Preferences", "items": []}
  ]
}`

// SampleTree returns the tree described by SampleJSON
func SampleTree() models.Node {
	avatar, _ := url.Parse("https://example.com/avatar.png")
	return &models.Page{
		Title: models.String("Onboarding"),
		Children: []models.Node{
			&models.Section{
				Title: models.String("Profile"),
				Children: []models.Node{
					&models.Question{Title: models.String("Name"), Body: models.TextBody{Content: models.String("What should we call you?")}},
					&models.Question{Body: models.TextBody{Content: models.String("Where are you based?")}},
					&models.Question{Title: models.String("Avatar"), Body: models.ImageBody{URL: avatar}},
				},
			},
			&models.Section{Title: models.String("Preferences"), Children: []models.Node{}},
		},
	}
}

// TreeWithTitle returns a single page, handy for telling tiers apart
func TreeWithTitle(title string) models.Node {
	return &models.Page{Title: models.String(title)}
}

// MustEncode encodes tree or fails the test
func MustEncode(t *testing.T, tree models.Node) []byte {
	t.Helper()
	data, err := models.Encode(tree)
	if err != nil {
		t.Fatalf("failed to encode tree: %v", err)
	}
	return data
}

// FormServer is a fake form endpoint
type FormServer struct {
	*httptest.Server

	mu     sync.Mutex
	body   []byte
	status int
	hits   atomic.Int64
}

// NewFormServer starts a server answering every GET with body and 200
func NewFormServer(t *testing.T, body []byte) *FormServer {
	t.Helper()

	fs := &FormServer{body: body, status: http.StatusOK}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		fs.mu.Lock()
		status, body := fs.status, fs.body
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(fs.Close)

	return fs
}

// Respond changes what the server returns from now on
func (s *FormServer) Respond(status int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// Hits returns the number of requests served
func (s *FormServer) Hits() int {
	return int(s.hits.Load())
}

// UnreachableURL returns the address of a server that has already shut down
func UnreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

// Workspace is a throwaway set of directories standing in for the user's
// cache and config locations
type Workspace struct {
	Root         string
	CacheDir     string
	ConfigDir    string
	SettingsPath string
	T            *testing.T
}

// NewWorkspace creates a workspace under a temp directory
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	root, err := os.MkdirTemp("", "formtree-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	ws := &Workspace{
		Root:         root,
		CacheDir:     filepath.Join(root, "cache"),
		ConfigDir:    filepath.Join(root, "config"),
		SettingsPath: filepath.Join(root, "config", "settings.toml"),
		T:            t,
	}

	if err := os.MkdirAll(ws.ConfigDir, 0755); err != nil {
		os.RemoveAll(root)
		t.Fatalf("failed to create config dir: %v", err)
	}

	return ws
}

// Cleanup removes the workspace
func (w *Workspace) Cleanup() {
	w.T.Helper()
	if err := os.RemoveAll(w.Root); err != nil {
		w.T.Errorf("failed to cleanup workspace: %v", err)
	}
}

// CreateFile writes a file relative to the workspace root
func (w *Workspace) CreateFile(name, content string) string {
	w.T.Helper()
	path := filepath.Join(w.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		w.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		w.T.Fatalf("failed to create file: %v", err)
	}
	return path
}

// FileExists checks if a file exists relative to the workspace root
func (w *Workspace) FileExists(name string) bool {
	w.T.Helper()
	_, err := os.Stat(filepath.Join(w.Root, name))
	return err == nil
}
