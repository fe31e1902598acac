package models

// Palette is the fixed colour set for one theme.
type Palette struct {
	Background string `json:"background"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Card       string `json:"card"`
	Shadow     string `json:"shadow"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Border     string `json:"border"`
	Success    string `json:"success"`
	Error      string `json:"error"`
	Warning    string `json:"warning"`
	Info       string `json:"info"`
}

var (
	LightPalette = Palette{
		Background: "#FFFFFF",
		Accent:     "#FFF9C4",
		Text:       "#111111",
		Card:       "#FFFDE7",
		Shadow:     "rgba(0,0,0,0.10)",
		Primary:    "#111111",
		Secondary:  "#444444",
		Border:     "#e0e0e0",
		Success:    "#4caf50",
		Error:      "#f44336",
		Warning:    "#ff9800",
		Info:       "#2196f3",
	}
	DarkPalette = Palette{
		Background: "#121212",
		Accent:     "#F57F17",
		Text:       "#FFFFFF",
		Card:       "#1E1E1E",
		Shadow:     "rgba(0,0,0,0.30)",
		Primary:    "#FFFFFF",
		Secondary:  "#BBBBBB",
		Border:     "#444444",
		Success:    "#66bb6a",
		Error:      "#ef5350",
		Warning:    "#ffa726",
		Info:       "#42a5f5",
	}
)

// PaletteFor picks the palette for the given mode.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}

// ThemeView is the resolved theme for a client.
type ThemeView struct {
	Dark    bool    `json:"dark"`
	Mode    string  `json:"mode"`
	Palette Palette `json:"palette"`
}
