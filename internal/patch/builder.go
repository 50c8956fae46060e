// Package patch builds field-level change suggestions from a parse result
// and applies them to the database under a confidence gate.
package patch

import (
	"grantflow/internal/parser"
)

// Value is one suggested field value. Formatted and Structured carry
// presentation detail for amount and address suggestions; the applier only
// reads Value and Confidence.
type Value struct {
	Value      any                       `json:"value"`
	Confidence float64                   `json:"confidence"`
	Formatted  string                    `json:"formatted,omitempty"`
	Structured *parser.StructuredAddress `json:"structured,omitempty"`
}

// ProfilePatch is a set of suggested profile field values.
type ProfilePatch struct {
	Set map[string]Value `json:"set"`
}

// FundingSourcePatch is a suggested funding source upsert. UpsertBy carries
// the natural key (name) used to find or create the record.
type FundingSourcePatch struct {
	UpsertBy map[string]string `json:"upsert_by"`
	Set      map[string]Value  `json:"set"`
}

// Document is the full patch suggestion derived from one parsed document.
type Document struct {
	Profile        ProfilePatch         `json:"profile"`
	FundingSources []FundingSourcePatch `json:"funding_sources"`
}

// Build maps a parse result's typed extraction onto patch suggestions.
// Driver's licenses patch the owning profile; scholarship letters propose a
// funding source upsert keyed by organization name. A funding source
// suggestion with no name is dropped entirely since there is nothing to
// upsert by. Unknown document types yield an empty patch document.
func Build(result parser.Result) Document {
	patches := Document{
		Profile:        ProfilePatch{Set: map[string]Value{}},
		FundingSources: []FundingSourcePatch{},
	}

	switch data := result.Extracted.(type) {
	case parser.DriversLicenseData:
		setField(patches.Profile.Set, "full_name", data.FullName)
		setField(patches.Profile.Set, "dob", data.DOB)
		setField(patches.Profile.Set, "address_line1", data.AddressLine1)
		setField(patches.Profile.Set, "city", data.City)
		setField(patches.Profile.Set, "state", data.State)
		setField(patches.Profile.Set, "zip", data.Zip)

	case parser.ScholarshipLetterData:
		fsPatch := FundingSourcePatch{
			UpsertBy: map[string]string{},
			Set:      map[string]Value{},
		}
		if data.FundingSourceName != nil {
			fsPatch.UpsertBy["name"] = data.FundingSourceName.StringValue()
		}
		setField(fsPatch.Set, "contact_email", data.ContactEmail)
		setField(fsPatch.Set, "contact_phone", data.ContactPhone)
		if data.Address != nil {
			fsPatch.Set["address"] = Value{
				Value:      data.Address.Value,
				Confidence: data.Address.Confidence,
				Structured: &data.Address.Structured,
			}
		}
		if data.AwardAmount != nil {
			fsPatch.Set["award_amount"] = Value{
				Value:      data.AwardAmount.Value,
				Confidence: data.AwardAmount.Confidence,
				Formatted:  data.AwardAmount.Formatted,
			}
		}
		if fsPatch.UpsertBy["name"] != "" {
			patches.FundingSources = append(patches.FundingSources, fsPatch)
		}
	}

	return patches
}

func setField(set map[string]Value, name string, f *parser.Field) {
	if f == nil {
		return
	}
	set[name] = Value{Value: f.Value, Confidence: f.Confidence}
}
