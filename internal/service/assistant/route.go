package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/nene-backend/internal/content"
	"github.com/heartmarshall/nene-backend/internal/domain"
	"github.com/heartmarshall/nene-backend/pkg/ctxutil"
)

// Route is the answer source chosen for a question.
type Route string

const (
	RouteEmpty          Route = "empty"
	RouteTable          Route = "table"
	RouteDirect         Route = "direct"
	RouteViaTranslation Route = "via_translation"
)

// Classify decides how question will be answered. A question is Soussou
// when it is a curated key or when any of its whitespace tokens is a
// Soussou dictionary key.
func (s *Service) Classify(question string) Route {
	if domain.IsBlank(question) {
		return RouteEmpty
	}
	if s.knowledge.Has(question) {
		return RouteTable
	}
	for _, tok := range strings.Fields(question) {
		if _, ok := s.dict.Lookup(tok, domain.DirectionSoussouToFrench); ok {
			return RouteViaTranslation
		}
	}
	return RouteDirect
}

// Answer produces the final answer text for question in lang. Failures are
// rendered as localized messages and never returned.
func (s *Service) Answer(ctx context.Context, question string, lang domain.Language) string {
	route := s.Classify(question)

	s.log.DebugContext(ctx, "question classified",
		slog.String("route", string(route)),
		slog.String("language", lang.String()),
	)

	switch route {
	case RouteEmpty:
		return s.localize(s.texts.Messages.NeedMoreInfo, lang)
	case RouteTable:
		answer, _ := s.knowledge.Answer(question, lang)
		return answer
	case RouteViaTranslation:
		question = s.tr.Translate(question, domain.DirectionSoussouToFrench)
	}

	// French is the pivot: a Soussou answer is the French answer translated.
	switch lang {
	case domain.LanguageEnglish:
		return s.delegate(ctx, question, domain.LanguageEnglish)
	case domain.LanguageSoussou:
		french := s.delegate(ctx, question, domain.LanguageFrench)
		return s.tr.Translate(french, domain.DirectionFrenchToSoussou)
	default:
		return s.delegate(ctx, question, domain.LanguageFrench)
	}
}

// delegate asks the model for an answer in lang, French or English.
func (s *Service) delegate(ctx context.Context, text string, lang domain.Language) string {
	if domain.IsBlank(text) {
		return s.pick(s.texts.Messages.NeedMoreInfo, lang)
	}

	req := domain.CompletionRequest{
		Text:              text,
		SystemInstruction: s.pick(s.texts.Instructions, lang),
	}
	if lang == domain.LanguageEnglish {
		req.Directive = domain.DirectiveEnglish
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.gateway.Complete(ctx, req)
	if err != nil {
		attrs := append(ctxutil.LogAttrs(ctx),
			slog.String("language", lang.String()),
			slog.String("error", err.Error()),
		)
		s.log.ErrorContext(ctx, "gateway call failed", attrs...)
		return strings.Replace(s.pick(s.texts.Messages.GatewayError, lang), content.DetailPlaceholder, err.Error(), 1)
	}
	return answer
}

func (s *Service) pick(l content.Localized, lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return l.English
	}
	return l.French
}
