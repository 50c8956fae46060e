package parser

import (
	"fmt"
	"strings"
)

// GenericData is the catch-all extraction applied to documents the
// classifier could not type. It surfaces every common pattern found plus a
// short preview so a reviewer can decide what the document is.
type GenericData struct {
	Summary     *Field         `json:"summary"`
	Dates       []DateMatch    `json:"dates"`
	Emails      []EmailMatch   `json:"emails"`
	Phones      []PhoneMatch   `json:"phones"`
	Addresses   []AddressMatch `json:"addresses"`
	Names       []NameMatch    `json:"names"`
	TextPreview *Field         `json:"text_preview"`
}

// ExtractGeneric runs every pattern extractor over the text and summarizes
// what was found.
func ExtractGeneric(text string) GenericData {
	normalized := NormalizeText(text)

	info := GenericData{
		Dates:     ExtractDates(text),
		Emails:    ExtractEmails(text),
		Phones:    ExtractPhones(text),
		Addresses: ExtractAddresses(text),
		Names:     ExtractNamePatterns(text),
	}

	preview := normalized
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	info.TextPreview = &Field{Value: preview, Confidence: 1.0}

	var found []string
	if n := len(info.Dates); n > 0 {
		found = append(found, fmt.Sprintf("%d date(s)", n))
	}
	if n := len(info.Emails); n > 0 {
		found = append(found, fmt.Sprintf("%d email(s)", n))
	}
	if n := len(info.Phones); n > 0 {
		found = append(found, fmt.Sprintf("%d phone(s)", n))
	}
	if n := len(info.Addresses); n > 0 {
		found = append(found, fmt.Sprintf("%d address(es)", n))
	}
	if n := len(info.Names); n > 0 {
		found = append(found, fmt.Sprintf("%d name(s)", n))
	}

	summary := "Document parsed successfully"
	if len(found) > 0 {
		summary = "Document contains: " + strings.Join(found, ", ")
	}
	info.Summary = &Field{Value: summary, Confidence: 1.0}

	return info
}
