// Package content loads the data the assistant ships with: curated answers,
// domain instructions, user-facing messages and the supplementary word list.
// Built-in copies are embedded; each can be replaced by a file on disk.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

var (
	//go:embed data/knowledge.yaml
	defaultKnowledge []byte

	//go:embed data/supplement.yaml
	defaultSupplement []byte

	//go:embed data/fallback.json
	fallbackRecords []byte
)

// DetailPlaceholder marks where a failure description goes in a message.
const DetailPlaceholder = "{detail}"

// Localized is a text available in French and English. The Soussou variant,
// when needed, is produced by translating the French text.
type Localized struct {
	French  string `yaml:"french"`
	English string `yaml:"english"`
}

// Messages are the fixed strings the assistant answers with.
type Messages struct {
	NeedMoreInfo Localized `yaml:"need_more_info"`
	// GatewayError holds DetailPlaceholder exactly once; the failure
	// description replaces it verbatim.
	GatewayError Localized `yaml:"gateway_error"`
}

// CuratedAnswer is one entry of the curated knowledge table.
type CuratedAnswer struct {
	Question      string `yaml:"question"`
	domain.Answer `yaml:",inline"`
}

// Knowledge is the decoded knowledge file.
type Knowledge struct {
	Instructions Localized       `yaml:"instructions"`
	Messages     Messages        `yaml:"messages"`
	Answers      []CuratedAnswer `yaml:"answers"`
}

// Supplement is the decoded supplementary word list.
type Supplement struct {
	Words []domain.LexicalRecord `yaml:"words"`
}

// LoadKnowledge decodes the knowledge file at path, or the built-in copy when
// path is empty.
func LoadKnowledge(path string) (*Knowledge, error) {
	raw, err := readOrDefault(path, defaultKnowledge)
	if err != nil {
		return nil, fmt.Errorf("content: knowledge: %w", err)
	}

	var k Knowledge
	if err := decodeStrict(raw, &k); err != nil {
		return nil, fmt.Errorf("content: knowledge: %w", err)
	}
	if err := k.validate(); err != nil {
		return nil, fmt.Errorf("content: knowledge: %w", err)
	}
	return &k, nil
}

// LoadSupplement decodes the supplementary word list at path, or the
// built-in copy when path is empty.
func LoadSupplement(path string) (*Supplement, error) {
	raw, err := readOrDefault(path, defaultSupplement)
	if err != nil {
		return nil, fmt.Errorf("content: supplement: %w", err)
	}

	var s Supplement
	if err := decodeStrict(raw, &s); err != nil {
		return nil, fmt.Errorf("content: supplement: %w", err)
	}
	for i, w := range s.Words {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("content: supplement: word %d: %w", i, err)
		}
	}
	return &s, nil
}

// FallbackRecords returns the minimal dataset used when the persisted
// dictionary cannot be read.
func FallbackRecords() []domain.LexicalRecord {
	var records []domain.LexicalRecord
	// The embedded file is covered by tests; a decode failure is a build defect.
	if err := json.Unmarshal(fallbackRecords, &records); err != nil {
		panic(fmt.Sprintf("content: fallback dataset: %v", err))
	}
	return records
}

func (k *Knowledge) validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(k.Instructions.French) == "" || strings.TrimSpace(k.Instructions.English) == "" {
		errs = append(errs, domain.FieldError{Field: "instructions", Message: "french and english are required"})
	}
	if k.Messages.NeedMoreInfo.French == "" || k.Messages.NeedMoreInfo.English == "" {
		errs = append(errs, domain.FieldError{Field: "messages.need_more_info", Message: "french and english are required"})
	}
	if strings.Count(k.Messages.GatewayError.French, DetailPlaceholder) != 1 ||
		strings.Count(k.Messages.GatewayError.English, DetailPlaceholder) != 1 {
		errs = append(errs, domain.FieldError{Field: "messages.gateway_error", Message: "must contain " + DetailPlaceholder + " exactly once"})
	}

	seen := make(map[string]struct{}, len(k.Answers))
	for i, a := range k.Answers {
		field := fmt.Sprintf("answers[%d]", i)
		if a.Question == "" {
			errs = append(errs, domain.FieldError{Field: field, Message: "question is required"})
			continue
		}
		if _, dup := seen[a.Question]; dup {
			errs = append(errs, domain.FieldError{Field: field, Message: "duplicate question " + a.Question})
		}
		seen[a.Question] = struct{}{}
		if a.French == "" || a.English == "" || a.Soussou == "" {
			errs = append(errs, domain.FieldError{Field: field, Message: "all three answers are required"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func decodeStrict(raw []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
