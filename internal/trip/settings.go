package trip

import (
	"ai-trip-planner/internal/store"
)

// Settings holds the two globals that live outside the trip sync cycle: the
// display language and the user's flag/avatar choice.
type Settings struct {
	Language string // "EN" | "TC"
	Flag     string // emoji or image data URI
}

// LoadSettings reads the settings keys, defaulting language to EN.
func LoadSettings(s *store.Store) (Settings, error) {
	settings := Settings{Language: "EN"}

	if lang, ok, err := s.Get(store.KeyLanguage); err != nil {
		return settings, err
	} else if ok && lang != "" {
		settings.Language = lang
	}

	if flag, ok, err := s.Get(store.KeyFlag); err != nil {
		return settings, err
	} else if ok {
		settings.Flag = flag
	}

	return settings, nil
}

// SaveSettings writes both settings keys.
func SaveSettings(s *store.Store, settings Settings) error {
	if err := s.Put(store.KeyLanguage, settings.Language); err != nil {
		return err
	}
	return s.Put(store.KeyFlag, settings.Flag)
}
