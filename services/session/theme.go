package session

import (
	"context"

	"mightymoves/models"
)

const (
	themeDark  = "dark"
	themeLight = "light"
)

// ThemeService persists each client's light/dark choice.
type ThemeService struct {
	Store Store
}

func NewThemeService(store Store) *ThemeService {
	return &ThemeService{Store: store}
}

// Init resolves the theme on first load: a saved choice wins over the OS preference.
// The resolved mode is written back.
func (s *ThemeService) Init(ctx context.Context, clientID string, prefersDark bool) (models.ThemeView, error) {
	saved, err := s.Store.Preference(ctx, clientID, PreferenceTheme)
	if err != nil {
		return models.ThemeView{}, err
	}
	dark := prefersDark
	switch saved {
	case themeDark:
		dark = true
	case themeLight:
		dark = false
	}
	return s.save(ctx, clientID, dark)
}

// Current returns the saved theme, light when nothing was saved.
func (s *ThemeService) Current(ctx context.Context, clientID string) (models.ThemeView, error) {
	saved, err := s.Store.Preference(ctx, clientID, PreferenceTheme)
	if err != nil {
		return models.ThemeView{}, err
	}
	return view(saved == themeDark), nil
}

// Toggle flips and persists the theme.
func (s *ThemeService) Toggle(ctx context.Context, clientID string) (models.ThemeView, error) {
	current, err := s.Current(ctx, clientID)
	if err != nil {
		return models.ThemeView{}, err
	}
	return s.save(ctx, clientID, !current.Dark)
}

func (s *ThemeService) save(ctx context.Context, clientID string, dark bool) (models.ThemeView, error) {
	v := view(dark)
	if err := s.Store.SetPreference(ctx, clientID, PreferenceTheme, v.Mode); err != nil {
		return models.ThemeView{}, err
	}
	return v, nil
}

func view(dark bool) models.ThemeView {
	mode := themeLight
	if dark {
		mode = themeDark
	}
	return models.ThemeView{Dark: dark, Mode: mode, Palette: models.PaletteFor(dark)}
}
