package theme

import "testing"

func TestCatppuccinMochaPalette(t *testing.T) {
	t.Parallel()

	th := NewCatppuccinMocha()
	if th.Name != "catppuccin-mocha" {
		t.Fatalf("expected catppuccin-mocha theme, got %s", th.Name)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Primary (Mauve)", th.Primary, "#cba6f7"},
		{"Secondary (Blue)", th.Secondary, "#89b4fa"},
		{"Tertiary (Lavender)", th.Tertiary, "#b4befe"},
		{"BgCrust", th.BgCrust, "#11111b"},
		{"BgBase", th.BgBase, "#1e1e2e"},
		{"FgBase (Text)", th.FgBase, "#cdd6f4"},
		{"Success (Green)", th.Success, "#a6e3a1"},
		{"Warning (Yellow)", th.Warning, "#f9e2af"},
		{"Error (Red)", th.Error, "#f38ba8"},
		{"Info (Sky)", th.Info, "#89dceb"},
		{"BorderFocused (Mauve)", th.BorderFocused, "#cba6f7"},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.expected)
		}
	}
}

func TestStylesInitialized(t *testing.T) {
	t.Parallel()

	s := NewCatppuccinMocha().S()

	tests := []struct {
		name   string
		render func() string
	}{
		{"Base", func() string { return s.Base.Render("test") }},
		{"Highlight", func() string { return s.Highlight.Render("test") }},
		{"StatusBar", func() string { return s.StatusBar.Render("test") }},
		{"ModalContainer", func() string { return s.ModalContainer.Render("test") }},
		{"Success", func() string { return s.Success.Render("test") }},
		{"Error", func() string { return s.Error.Render("test") }},
		{"ButtonNormal", func() string { return s.ButtonNormal.Render("test") }},
		{"ButtonFocused", func() string { return s.ButtonFocused.Render("test") }},
	}

	for _, tt := range tests {
		if tt.render() == "" {
			t.Errorf("%s: rendered empty string", tt.name)
		}
	}
}

func TestCurrentDefaultsToMocha(t *testing.T) {
	th := Current()
	if th == nil {
		t.Fatal("Current returned nil")
	}
	if th.Name != "catppuccin-mocha" {
		t.Errorf("expected default theme catppuccin-mocha, got %s", th.Name)
	}
}

func TestInterpolateColor(t *testing.T) {
	t.Parallel()

	if got := InterpolateColor("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("pos 0: got %s", got)
	}
	if got := InterpolateColor("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("pos 1: got %s", got)
	}
	if got := InterpolateColor("#000000", "#fefefe", 0.5); got != "#7f7f7f" {
		t.Errorf("pos 0.5: got %s", got)
	}
}
