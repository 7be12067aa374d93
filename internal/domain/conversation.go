package domain

// PendingAnswer is the placeholder answer shown while a turn is processed.
const PendingAnswer = "⏳ Traitement en cours..."

// Turn is one question/answer exchange of a conversation.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// IsPending reports whether the turn still carries the placeholder answer.
func (t Turn) IsPending() bool { return t.Answer == PendingAnswer }

// History is an ordered, append-only sequence of turns. Only the answer of
// the last turn is ever rewritten.
type History []Turn

// Clone returns an independent copy, never nil.
func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Answer is a curated reply available in every output language.
type Answer struct {
	French  string `yaml:"french"  json:"french"`
	English string `yaml:"english" json:"english"`
	Soussou string `yaml:"soussou" json:"soussou"`
}

// In returns the field matching lang.
func (a Answer) In(lang Language) string {
	switch lang {
	case LanguageEnglish:
		return a.English
	case LanguageSoussou:
		return a.Soussou
	default:
		return a.French
	}
}
