package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// ScholarshipLetterData is the typed extraction for a scholarship or grant
// award letter. Fields describe the funding organization, not the recipient.
type ScholarshipLetterData struct {
	FundingSourceName *Field        `json:"funding_source_name"`
	ContactEmail      *Field        `json:"contact_email"`
	ContactPhone      *Field        `json:"contact_phone"`
	Address           *AddressField `json:"address"`
	AwardAmount       *AmountField  `json:"award_amount"`
}

var (
	reOrgKeyword  = regexp.MustCompile(`(?i)foundation|scholarship|fund|trust|society|association|university|college`)
	rePureNumber  = regexp.MustCompile(`^\d+$`)
	reStateAbbrev = regexp.MustCompile(`^[A-Z]{2}$`)
	reDollarAmt   = regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)
)

// ExtractScholarshipLetter pulls funding-source fields out of award letter
// text. The organization name is taken from the letterhead when a line there
// carries an organizational keyword, otherwise the first substantial line is
// used at reduced confidence. The award amount is the largest dollar figure
// in the letter.
func ExtractScholarshipLetter(text string) ScholarshipLetterData {
	normalized := NormalizeText(text)
	lines := NonEmptyLines(normalized)

	var extracted ScholarshipLetterData

	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if len(line) > 10 &&
			!strings.HasPrefix(strings.ToLower(line), "dear") &&
			!rePureNumber.MatchString(line) &&
			!reStateAbbrev.MatchString(line) &&
			reOrgKeyword.MatchString(line) {
			extracted.FundingSourceName = &Field{Value: line, Confidence: 0.85}
			break
		}
	}
	if extracted.FundingSourceName == nil {
		limit = len(lines)
		if limit > 3 {
			limit = 3
		}
		for i := 0; i < limit; i++ {
			line := lines[i]
			if len(line) > 15 && len(line) < 100 {
				extracted.FundingSourceName = &Field{Value: line, Confidence: 0.6}
				break
			}
		}
	}

	if emails := ExtractEmails(text); len(emails) > 0 {
		extracted.ContactEmail = &Field{Value: emails[0].Normalized, Confidence: emails[0].Confidence}
	}
	if phones := ExtractPhones(text); len(phones) > 0 {
		extracted.ContactPhone = &Field{Value: phones[0].Formatted, Confidence: phones[0].Confidence}
	}
	if addresses := ExtractAddresses(text); len(addresses) > 0 {
		addr := addresses[0]
		extracted.Address = &AddressField{
			Value:      addr.Raw,
			Confidence: addr.Confidence,
			Structured: StructuredAddress{
				Line1: addr.Number + " " + addr.Street,
				City:  addr.City,
				State: addr.State,
				Zip:   addr.Zip,
			},
		}
	}

	var maxAmount float64
	var maxRaw string
	for _, m := range reDollarAmt.FindAllStringSubmatch(text, -1) {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if amount > maxAmount {
			maxAmount = amount
			maxRaw = m[0]
		}
	}
	if maxAmount > 0 {
		extracted.AwardAmount = &AmountField{Value: maxAmount, Formatted: maxRaw, Confidence: 0.75}
	}

	return extracted
}
