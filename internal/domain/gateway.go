package domain

// Directive asks the model for a specific answer language.
type Directive int

const (
	DirectiveNone Directive = iota
	DirectiveEnglish
)

const englishDirective = "Please respond in English."

// CompletionRequest is a single call to the external language model.
type CompletionRequest struct {
	Text              string
	Directive         Directive
	SystemInstruction string
}

// Instruction returns the system instruction with the directive applied.
// An empty result means the request carries no system instruction.
func (r CompletionRequest) Instruction() string {
	if r.Directive != DirectiveEnglish {
		return r.SystemInstruction
	}
	if r.SystemInstruction == "" {
		return englishDirective
	}
	return r.SystemInstruction + " " + englishDirective
}
