package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

const (
	msgEmptyTranslation  = "Veuillez entrer un texte à traduire"
	msgFieldsRequired    = "Les deux champs doivent être remplis"
	msgContributionSaved = "Traduction ajoutée avec succès !"
	msgContributionError = "Erreur lors de l'enregistrement : %s"
)

// TranslateStandalone translates text between Soussou and French with the
// dictionary only. Blank text yields a prompt message. Any other pair,
// English included, returns text unchanged.
func (s *Service) TranslateStandalone(text string, source, target domain.Language) string {
	if domain.IsBlank(text) {
		return msgEmptyTranslation
	}
	dir, ok := domain.DirectionBetween(source, target)
	if !ok {
		return text
	}
	return s.tr.Translate(text, dir)
}

// Contribute adds a translation pair and reports the outcome as a message.
// The returned error, when set, classifies the failure; the message is
// always meant for the user.
func (s *Service) Contribute(ctx context.Context, soussou, french string) (string, error) {
	err := s.lexicon.Contribute(ctx, soussou, french)
	switch {
	case err == nil:
		return msgContributionSaved, nil
	case errors.Is(err, domain.ErrValidation):
		return msgFieldsRequired, err
	default:
		s.log.ErrorContext(ctx, "contribution not persisted", slog.String("error", err.Error()))
		return fmt.Sprintf(msgContributionError, err.Error()), err
	}
}
