package domain

import "strings"

// Language is one of the three languages the assistant speaks.
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
	LanguageSoussou Language = "sus"
)

func (l Language) String() string { return string(l) }

// Label returns the human-facing name used by the chat front end.
func (l Language) Label() string {
	switch l {
	case LanguageFrench:
		return "Français"
	case LanguageEnglish:
		return "English"
	case LanguageSoussou:
		return "Soussou"
	}
	return string(l)
}

// ParseLanguage accepts ISO-like codes as well as the front end labels
// ("Français", "English", "Soussou"), case-insensitively.
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fr", "fra", "french", "français", "francais":
		return LanguageFrench, true
	case "en", "eng", "english", "anglais":
		return LanguageEnglish, true
	case "sus", "soussou", "susu", "sosso", "sosoxui":
		return LanguageSoussou, true
	}
	return "", false
}

// Direction selects which dictionary mapping a translation reads from.
type Direction string

const (
	DirectionSoussouToFrench Direction = "sus-fr"
	DirectionFrenchToSoussou Direction = "fr-sus"
)

func (d Direction) String() string { return string(d) }

func (d Direction) IsValid() bool {
	return d == DirectionSoussouToFrench || d == DirectionFrenchToSoussou
}

// DirectionBetween maps a (source, target) language pair to a dictionary
// direction. Only Soussou<->French pairs have one.
func DirectionBetween(source, target Language) (Direction, bool) {
	switch {
	case source == LanguageSoussou && target == LanguageFrench:
		return DirectionSoussouToFrench, true
	case source == LanguageFrench && target == LanguageSoussou:
		return DirectionFrenchToSoussou, true
	}
	return "", false
}
