package parser

// Field is a single extracted value paired with the confidence of the
// extraction that produced it. Value is string for most fields and float64
// for monetary amounts; keeping it loose lets stored extractions round-trip
// through JSON without per-field types.
type Field struct {
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
}

// StructuredAddress is the component breakdown of an address field.
type StructuredAddress struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// AddressField is an address extraction carrying both the raw match and its
// structured components.
type AddressField struct {
	Value      string            `json:"value"`
	Confidence float64           `json:"confidence"`
	Structured StructuredAddress `json:"structured"`
}

// AmountField is a monetary extraction. Formatted preserves the original
// dollar notation for display.
type AmountField struct {
	Value      float64 `json:"value"`
	Formatted  string  `json:"formatted"`
	Confidence float64 `json:"confidence"`
}

// StringValue returns the field's value as a string, or "" when the field is
// nil or holds a non-string.
func (f *Field) StringValue() string {
	if f == nil {
		return ""
	}
	s, _ := f.Value.(string)
	return s
}
