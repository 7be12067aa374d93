package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/nene-backend/internal/content"
	"github.com/heartmarshall/nene-backend/internal/domain"
)

// DefaultGatewayTimeout bounds a single model call when none is configured.
const DefaultGatewayTimeout = 60 * time.Second

type dictionary interface {
	Lookup(text string, dir domain.Direction) (string, bool)
}

type lexiconWriter interface {
	Contribute(ctx context.Context, soussou, french string) error
}

type translator interface {
	Translate(text string, dir domain.Direction) string
}

type knowledgeTable interface {
	Answer(question string, lang domain.Language) (string, bool)
	Has(question string) bool
}

type gateway interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// Deps groups the collaborators of the Service.
type Deps struct {
	Dictionary dictionary
	Lexicon    lexiconWriter
	Translator translator
	Knowledge  knowledgeTable
	Gateway    gateway
}

// Texts are the instructions and fixed messages the assistant uses.
type Texts struct {
	Instructions content.Localized
	Messages     content.Messages
}

// Service routes questions to the curated table or the language model and
// renders answers in the requested language.
type Service struct {
	dict      dictionary
	lexicon   lexiconWriter
	tr        translator
	knowledge knowledgeTable
	gateway   gateway
	texts     Texts
	timeout   time.Duration
	log       *slog.Logger
}

// NewService creates the assistant. A non-positive timeout selects
// DefaultGatewayTimeout.
func NewService(log *slog.Logger, deps Deps, texts Texts, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &Service{
		dict:      deps.Dictionary,
		lexicon:   deps.Lexicon,
		tr:        deps.Translator,
		knowledge: deps.Knowledge,
		gateway:   deps.Gateway,
		texts:     texts,
		timeout:   timeout,
		log:       log.With("service", "assistant"),
	}
}

// localize picks the French or English text. Soussou is the French text
// translated word by word.
func (s *Service) localize(l content.Localized, lang domain.Language) string {
	switch lang {
	case domain.LanguageEnglish:
		return l.English
	case domain.LanguageSoussou:
		return s.tr.Translate(l.French, domain.DirectionFrenchToSoussou)
	default:
		return l.French
	}
}
