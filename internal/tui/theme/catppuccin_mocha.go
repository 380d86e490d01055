package theme

// NewCatppuccinMocha creates the default Catppuccin Mocha theme.
// Reference: https://github.com/catppuccin/catppuccin
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name:   "catppuccin-mocha",
		IsDark: true,

		// Semantic colors
		Primary:   "#cba6f7", // Mauve
		Secondary: "#89b4fa", // Blue
		Tertiary:  "#b4befe", // Lavender

		// Background hierarchy
		BgCrust:    "#11111b", // Outermost background
		BgBase:     "#1e1e2e", // Base background
		BgMantle:   "#181825", // Header/footer background
		BgGutter:   "#282839", // Line numbers
		BgSurface0: "#313244", // Panel overlays
		BgSurface1: "#45475a", // Raised panels
		BgSurface2: "#585b70", // Highest surface
		BgOverlay:  "#6c7086", // Subtle overlays

		// Foreground hierarchy
		FgMuted:  "#a6adc8", // Subtext0
		FgSubtle: "#bac2de", // Subtext1
		FgBase:   "#cdd6f4", // Main text color
		FgBright: "#f5e0dc", // Rosewater

		// Status colors
		Success: "#a6e3a1", // Green
		Warning: "#f9e2af", // Yellow
		Error:   "#f38ba8", // Red
		Info:    "#89dceb", // Sky

		// Border colors
		BorderMuted:   "#313244", // Surface0
		BorderDefault: "#585b70", // Surface2
		BorderFocused: "#cba6f7", // Mauve
	}
}
