package parser

import (
	"regexp"
	"strings"
	"time"
)

// Fixed confidence constants per pattern family. These are hand-tuned trust
// levels for each pattern's precision, not learned probabilities; keeping
// them constant keeps the pipeline deterministic and auditable.
const (
	confidenceDate    = 0.85
	confidencePhone   = 0.9
	confidenceEmail   = 0.95
	confidenceZip     = 0.85
	confidenceState   = 0.8
	confidenceAddress = 0.75
	confidenceName    = 0.6
)

// USStates lists the 50 two-letter USPS state codes.
var USStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var (
	reDateSlashOrDash = regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})\b`)
	reDateISO         = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reDateMonthName   = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),?\s+(\d{4})\b`)
	reDateMonthAbbrev = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`)

	rePhoneStandard   = regexp.MustCompile(`\b(\d{3})[-.\s]?(\d{3})[-.\s]?(\d{4})\b`)
	rePhoneWithParens = regexp.MustCompile(`\((\d{3})\)\s*(\d{3})[-.\s]?(\d{4})\b`)

	reEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	reZip   = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	reState = regexp.MustCompile(`\b(` + strings.Join(USStates, "|") + `)\b`)

	// House number + street-with-suffix + optional city + state + zip.
	// The street-suffix vocabulary is US-only; profiles in this system
	// carry US addresses.
	reAddress = regexp.MustCompile(`(?i)\b(\d+)\s+([A-Za-z0-9\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Court|Ct|Boulevard|Blvd|Way|Place|Pl)\.?)\s*(?:,\s*([A-Za-z\s]+?))?\s*,?\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)\b`)

	// Capitalized first name, optional middle initial, capitalized last name.
	reName = regexp.MustCompile(`\b([A-Z][a-z]+)(?:\s+([A-Z])\.?)?\s+([A-Z][a-z]+)\b`)

	reWhitespace   = regexp.MustCompile(`\s+`)
	reNonPrintable = regexp.MustCompile("[^\x20-\x7E\n\t]")
	reDigitsOnly   = regexp.MustCompile(`\D`)
)

// DateMatch is a date found in text, normalized to ISO YYYY-MM-DD.
// Offset is the byte offset of the raw match so callers can inspect the
// surrounding context without re-searching for the raw string.
type DateMatch struct {
	Raw        string  `json:"raw"`
	ISO        string  `json:"iso"`
	Pattern    string  `json:"pattern"`
	Offset     int     `json:"offset"`
	Confidence float64 `json:"confidence"`
}

// PhoneMatch is a 10-digit US phone number normalized to DDD-DDD-DDDD.
type PhoneMatch struct {
	Raw        string  `json:"raw"`
	Formatted  string  `json:"formatted"`
	Pattern    string  `json:"pattern"`
	Confidence float64 `json:"confidence"`
}

// EmailMatch is an email address normalized to lowercase.
type EmailMatch struct {
	Raw        string  `json:"raw"`
	Normalized string  `json:"normalized"`
	Confidence float64 `json:"confidence"`
}

// ZipMatch is a 5-digit or ZIP+4 code.
type ZipMatch struct {
	Raw        string  `json:"raw"`
	Confidence float64 `json:"confidence"`
}

// StateMatch is a standalone two-letter USPS state code. Common-word
// collisions (OR, IN, ...) are not disambiguated.
type StateMatch struct {
	Raw        string  `json:"raw"`
	Confidence float64 `json:"confidence"`
}

// AddressMatch is a structured US street address.
type AddressMatch struct {
	Raw        string  `json:"raw"`
	Number     string  `json:"number"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Zip        string  `json:"zip"`
	Confidence float64 `json:"confidence"`
}

// NameMatch is a capitalization-based name candidate.
type NameMatch struct {
	Raw        string  `json:"raw"`
	First      string  `json:"first"`
	Middle     string  `json:"middle"`
	Last       string  `json:"last"`
	Confidence float64 `json:"confidence"`
}

// ParseDate normalizes a date string to ISO YYYY-MM-DD. It tries an exact
// ISO match, then MM/DD/YYYY or MM-DD-YYYY, then falls back to a set of
// generic layouts. Returns "" when nothing parses.
func ParseDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}

	if m := regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`).FindStringSubmatch(dateStr); m != nil {
		if _, err := time.Parse("2006-01-02", dateStr); err == nil {
			return dateStr
		}
		return ""
	}

	if m := regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})$`).FindStringSubmatch(dateStr); m != nil {
		normalized := pad2(m[1]) + "/" + pad2(m[2]) + "/" + m[3]
		if t, err := time.Parse("01/02/2006", normalized); err == nil {
			return t.Format("2006-01-02")
		}
		return ""
	}

	// Generic fallback layouts for month-name notations.
	cleaned := strings.ReplaceAll(dateStr, ",", "")
	cleaned = reWhitespace.ReplaceAllString(strings.TrimSpace(cleaned), " ")
	for _, layout := range []string{
		"January 2 2006",
		"Jan 2 2006",
		"Jan. 2 2006",
		"2 January 2006",
	} {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ExtractDates scans text for the four supported date notations and returns
// normalized matches. Matches that fail normalization are dropped, and a date
// recognized by more than one notation is reported once.
func ExtractDates(text string) []DateMatch {
	var dates []DateMatch
	patterns := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"slashOrDash", reDateSlashOrDash},
		{"iso", reDateISO},
		{"monthDayYear", reDateMonthName},
		{"abbreviatedMonth", reDateMonthAbbrev},
	}

	seen := map[int]bool{}
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			if seen[loc[0]] {
				continue
			}
			raw := text[loc[0]:loc[1]]
			iso := ParseDate(raw)
			if iso == "" {
				continue
			}
			seen[loc[0]] = true
			dates = append(dates, DateMatch{
				Raw:        raw,
				ISO:        iso,
				Pattern:    p.name,
				Offset:     loc[0],
				Confidence: confidenceDate,
			})
		}
	}
	return dates
}

// ExtractPhones returns phone numbers whose digit count is exactly 10,
// normalized to DDD-DDD-DDDD.
func ExtractPhones(text string) []PhoneMatch {
	var phones []PhoneMatch
	patterns := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"standard", rePhoneStandard},
		{"withParens", rePhoneWithParens},
	}

	for _, p := range patterns {
		for _, raw := range p.re.FindAllString(text, -1) {
			digits := reDigitsOnly.ReplaceAllString(raw, "")
			if len(digits) != 10 {
				continue
			}
			phones = append(phones, PhoneMatch{
				Raw:        raw,
				Formatted:  digits[0:3] + "-" + digits[3:6] + "-" + digits[6:],
				Pattern:    p.name,
				Confidence: confidencePhone,
			})
		}
	}
	return phones
}

// ExtractEmails returns email addresses found in text, lowercased.
func ExtractEmails(text string) []EmailMatch {
	var emails []EmailMatch
	for _, raw := range reEmail.FindAllString(text, -1) {
		emails = append(emails, EmailMatch{
			Raw:        raw,
			Normalized: strings.ToLower(raw),
			Confidence: confidenceEmail,
		})
	}
	return emails
}

// ExtractZipCodes returns 5-digit and ZIP+4 codes found in text.
func ExtractZipCodes(text string) []ZipMatch {
	var zips []ZipMatch
	for _, raw := range reZip.FindAllString(text, -1) {
		zips = append(zips, ZipMatch{Raw: raw, Confidence: confidenceZip})
	}
	return zips
}

// ExtractStates returns standalone two-letter state codes found in text.
func ExtractStates(text string) []StateMatch {
	var states []StateMatch
	for _, raw := range reState.FindAllString(text, -1) {
		states = append(states, StateMatch{Raw: raw, Confidence: confidenceState})
	}
	return states
}

// ExtractAddresses returns structured US street addresses found in text.
func ExtractAddresses(text string) []AddressMatch {
	var addresses []AddressMatch
	for _, m := range reAddress.FindAllStringSubmatch(text, -1) {
		addresses = append(addresses, AddressMatch{
			Raw:        m[0],
			Number:     m[1],
			Street:     strings.TrimSpace(m[2]),
			City:       strings.TrimSpace(m[3]),
			State:      m[4],
			Zip:        m[5],
			Confidence: confidenceAddress,
		})
	}
	return addresses
}

// ExtractNamePatterns returns capitalization-based name candidates. This is
// the lowest-confidence extractor since it is not lexicon-based.
func ExtractNamePatterns(text string) []NameMatch {
	var names []NameMatch
	for _, m := range reName.FindAllStringSubmatch(text, -1) {
		names = append(names, NameMatch{
			Raw:        m[0],
			First:      m[1],
			Middle:     m[2],
			Last:       m[3],
			Confidence: confidenceName,
		})
	}
	return names
}

// CalculateConfidence scores text against a keyword-weight map: the sum of
// weights for keywords present (case-insensitive substring match) divided by
// the sum of all weights. An empty keyword map yields 0.
func CalculateConfidence(text string, keywords map[string]float64) float64 {
	normalized := strings.ToLower(text)
	var score, maxScore float64

	for keyword, weight := range keywords {
		maxScore += weight
		if strings.Contains(normalized, strings.ToLower(keyword)) {
			score += weight
		}
	}

	if maxScore == 0 {
		return 0
	}
	result := score / maxScore
	if result > 1.0 {
		result = 1.0
	}
	return result
}

// NormalizeText collapses whitespace runs to single spaces, strips
// non-printable characters, and trims. Newlines are preserved so callers can
// still split into lines.
func NormalizeText(text string) string {
	cleaned := reNonPrintable.ReplaceAllString(text, "")
	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		lines = append(lines, strings.TrimSpace(reWhitespace.ReplaceAllString(line, " ")))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// NonEmptyLines splits text into trimmed lines, dropping empty ones.
func NonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
