package domain

// LexicalRecord is one persisted dictionary row. The JSON field names match
// the historical dataset file (clean_big_data_soussou_francais.json).
type LexicalRecord struct {
	Soussou  string `json:"soussou"  yaml:"soussou"`
	Francais string `json:"francais" yaml:"francais"`
}

// Validate reports blank fields as a ValidationError.
func (r LexicalRecord) Validate() error {
	var errs []FieldError
	if IsBlank(r.Soussou) {
		errs = append(errs, FieldError{Field: "soussou", Message: "required"})
	}
	if IsBlank(r.Francais) {
		errs = append(errs, FieldError{Field: "francais", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// MergeRecord updates the first record with the same Soussou text in place,
// or appends rec when there is none. The returned slice may share storage
// with records.
func MergeRecord(records []LexicalRecord, rec LexicalRecord) ([]LexicalRecord, bool) {
	for i := range records {
		if records[i].Soussou == rec.Soussou {
			records[i].Francais = rec.Francais
			return records, true
		}
	}
	return append(records, rec), false
}
