package parser

// DocumentType labels the kind of document the classifier recognized.
type DocumentType string

const (
	DocTypeDriversLicense    DocumentType = "drivers_license"
	DocTypeScholarshipLetter DocumentType = "scholarship_letter"
	DocTypeUnknown           DocumentType = "unknown"
)

// Classification is the classifier verdict for a document's text. Scores
// holds the confidence of every type that cleared its minimum, so callers
// can see how close the runner-up came.
type Classification struct {
	Type       DocumentType             `json:"type"`
	Confidence float64                  `json:"confidence"`
	Scores     map[DocumentType]float64 `json:"scores"`
}

type docTypeProfile struct {
	docType       DocumentType
	keywords      map[string]float64
	minConfidence float64
}

// docTypeProfiles is ordered; ties between candidate scores resolve to the
// earlier entry, so classification is deterministic regardless of input.
var docTypeProfiles = []docTypeProfile{
	{
		docType: DocTypeDriversLicense,
		keywords: map[string]float64{
			"driver":        3,
			"license":       3,
			"licence":       3,
			"dl":            2,
			"dob":           2,
			"date of birth": 2,
			"exp":           2,
			"expires":       2,
			"iss":           1,
			"issued":        1,
			"class":         1,
			"restrictions":  1,
			"endorsements":  1,
		},
		minConfidence: 0.4,
	},
	{
		docType: DocTypeScholarshipLetter,
		keywords: map[string]float64{
			"scholarship":       4,
			"award":             3,
			"recipient":         3,
			"congratulations":   2,
			"pleased to inform": 2,
			"grant":             2,
			"financial aid":     2,
			"tuition":           2,
			"academic":          1,
			"university":        1,
			"college":           1,
			"foundation":        1,
		},
		minConfidence: 0.3,
	},
}

// ClassifyDocument scores text against each known document type and returns
// the best match, or unknown when no type clears its minimum confidence.
// A candidate replaces the incumbent only with a strictly greater score.
func ClassifyDocument(text string) Classification {
	best := Classification{
		Type:       DocTypeUnknown,
		Confidence: 0,
		Scores:     make(map[DocumentType]float64),
	}

	for _, profile := range docTypeProfiles {
		score := CalculateConfidence(text, profile.keywords)
		if score < profile.minConfidence {
			continue
		}
		best.Scores[profile.docType] = score
		if score > best.Confidence {
			best.Type = profile.docType
			best.Confidence = score
		}
	}
	return best
}
