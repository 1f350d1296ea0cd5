package simulation

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "loadCached", want: LoadCached},
		{input: "loadNormal", want: LoadNormal},
		{input: "loadWithError", want: LoadWithError},
		{input: " loadCached\n", want: LoadCached},
		{input: "LoadCached", wantErr: true},
		{input: "", wantErr: true},
		{input: "offline", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDescriptions(t *testing.T) {
	want := map[Mode]string{
		LoadCached:    "Load Cached Data",
		LoadNormal:    "Load Normal Data",
		LoadWithError: "Simulate Error",
	}

	for _, m := range All() {
		if m.Description() != want[m] {
			t.Errorf("expected %q for %s, got %q", want[m], m, m.Description())
		}
	}

	if Mode("nope").Description() != "Unknown" {
		t.Error("expected unknown description for invalid mode")
	}
}

func TestDefaultIsNormal(t *testing.T) {
	if Default != LoadNormal {
		t.Errorf("expected default loadNormal, got %s", Default)
	}
}
