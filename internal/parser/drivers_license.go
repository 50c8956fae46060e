package parser

import "strings"

// DriversLicenseData is the typed extraction for a driver's license. The
// license number itself is intentionally never captured or stored.
type DriversLicenseData struct {
	FullName       *Field `json:"full_name"`
	DOB            *Field `json:"dob"`
	AddressLine1   *Field `json:"address_line1"`
	City           *Field `json:"city"`
	State          *Field `json:"state"`
	Zip            *Field `json:"zip"`
	ExpirationDate *Field `json:"expiration_date"`
}

// contextWindow returns the lowercased 50 characters of text on either side
// of the match at the given offset.
func contextWindow(text string, offset, matchLen int) string {
	start := offset - 50
	if start < 0 {
		start = 0
	}
	end := offset + matchLen + 50
	if end > len(text) {
		end = len(text)
	}
	return strings.ToLower(text[start:end])
}

// ExtractDriversLicense pulls identity fields out of driver's license text.
// DOB and expiration are resolved by looking for their labels near each date
// match; when no labeled DOB is found the first date is assumed to be it, at
// reduced confidence.
func ExtractDriversLicense(text string) DriversLicenseData {
	normalized := NormalizeText(text)
	lines := NonEmptyLines(normalized)

	var extracted DriversLicenseData

	dates := ExtractDates(text)
	for _, date := range dates {
		ctx := contextWindow(text, date.Offset, len(date.Raw))
		if strings.Contains(ctx, "dob") || strings.Contains(ctx, "birth") {
			extracted.DOB = &Field{Value: date.ISO, Confidence: 0.9}
			break
		}
	}
	for _, date := range dates {
		ctx := contextWindow(text, date.Offset, len(date.Raw))
		if strings.Contains(ctx, "exp") || strings.Contains(ctx, "expires") {
			extracted.ExpirationDate = &Field{Value: date.ISO, Confidence: 0.85}
			break
		}
	}
	if extracted.DOB == nil && len(dates) > 0 {
		extracted.DOB = &Field{Value: dates[0].ISO, Confidence: 0.7}
	}

	// Name is usually on one of the first lines; a top-of-document match is
	// trusted more than one found anywhere in the text.
	if names := ExtractNamePatterns(text); len(names) > 0 {
		top := lines
		if len(top) > 10 {
			top = top[:10]
		}
		if topNames := ExtractNamePatterns(strings.Join(top, " ")); len(topNames) > 0 {
			extracted.FullName = &Field{Value: topNames[0].Raw, Confidence: 0.85}
		} else {
			extracted.FullName = &Field{Value: names[0].Raw, Confidence: 0.7}
		}
	}

	if addresses := ExtractAddresses(text); len(addresses) > 0 {
		addr := addresses[0]
		extracted.AddressLine1 = &Field{Value: addr.Number + " " + addr.Street, Confidence: addr.Confidence}
		if addr.City != "" {
			extracted.City = &Field{Value: addr.City, Confidence: addr.Confidence}
		}
		extracted.State = &Field{Value: addr.State, Confidence: addr.Confidence}
		extracted.Zip = &Field{Value: addr.Zip, Confidence: addr.Confidence}
	} else {
		if states := ExtractStates(text); len(states) > 0 {
			extracted.State = &Field{Value: states[0].Raw, Confidence: states[0].Confidence}
		}
		if zips := ExtractZipCodes(text); len(zips) > 0 {
			extracted.Zip = &Field{Value: zips[0].Raw, Confidence: zips[0].Confidence}
		}
	}

	return extracted
}
