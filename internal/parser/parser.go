// Package parser turns raw document text into a classified, typed
// extraction. All extraction is deterministic pattern matching; the same
// text always produces the same result.
package parser

// Result is the full output of a parse pass over extracted text.
type Result struct {
	Text           string         `json:"text"`
	DocType        DocumentType   `json:"doc_type"`
	Classification Classification `json:"classification"`
	Extracted      any            `json:"extracted"`
}

// Parse classifies the text and runs the matching typed extractor. Unknown
// documents get the generic extraction so reviewers still see what patterns
// the document contains.
func Parse(text string) Result {
	classification := ClassifyDocument(text)

	result := Result{
		Text:           text,
		DocType:        classification.Type,
		Classification: classification,
	}

	switch classification.Type {
	case DocTypeDriversLicense:
		result.Extracted = ExtractDriversLicense(text)
	case DocTypeScholarshipLetter:
		result.Extracted = ExtractScholarshipLetter(text)
	default:
		result.Extracted = ExtractGeneric(text)
	}

	return result
}
