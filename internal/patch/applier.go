package patch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"grantflow/internal/domain"
	"grantflow/internal/port"
)

// FieldChange records one applied field mutation for the audit trail and
// the apply response.
type FieldChange struct {
	Field      string  `json:"field"`
	OldValue   any     `json:"oldValue"`
	NewValue   any     `json:"newValue"`
	Confidence float64 `json:"confidence"`
}

// FundingChange is a FieldChange scoped to a named funding source.
type FundingChange struct {
	Name       string  `json:"name"`
	Field      string  `json:"field"`
	OldValue   any     `json:"oldValue"`
	NewValue   any     `json:"newValue"`
	Confidence float64 `json:"confidence"`
}

// Summary reports every change an apply call made.
type Summary struct {
	Profile        []FieldChange   `json:"profile"`
	FundingSources []FundingChange `json:"funding_sources"`
}

type profileFieldAccessor struct {
	name string
	get  func(*domain.Profile) string
	set  func(*domain.Profile, string)
}

// profileFieldAccessors fixes both the set of patchable profile columns and
// the order they are considered in, so apply results are deterministic.
var profileFieldAccessors = []profileFieldAccessor{
	{"full_name", func(p *domain.Profile) string { return p.FullName }, func(p *domain.Profile, v string) { p.FullName = v }},
	{"dob", func(p *domain.Profile) string { return p.DOB }, func(p *domain.Profile, v string) { p.DOB = v }},
	{"address_line1", func(p *domain.Profile) string { return p.AddressLine1 }, func(p *domain.Profile, v string) { p.AddressLine1 = v }},
	{"city", func(p *domain.Profile) string { return p.City }, func(p *domain.Profile, v string) { p.City = v }},
	{"state", func(p *domain.Profile) string { return p.State }, func(p *domain.Profile, v string) { p.State = v }},
	{"zip", func(p *domain.Profile) string { return p.Zip }, func(p *domain.Profile, v string) { p.Zip = v }},
}

type fundingFieldAccessor struct {
	name string
	get  func(*domain.FundingSource) string
	set  func(*domain.FundingSource, string)
}

var fundingFieldAccessors = []fundingFieldAccessor{
	{"email", func(f *domain.FundingSource) string { return f.Email }, func(f *domain.FundingSource, v string) { f.Email = v }},
	{"phone", func(f *domain.FundingSource) string { return f.Phone }, func(f *domain.FundingSource, v string) { f.Phone = v }},
	{"address", func(f *domain.FundingSource) string { return f.Address }, func(f *domain.FundingSource, v string) { f.Address = v }},
}

// fieldColumnRemap translates extraction field names to database columns.
var fieldColumnRemap = map[string]string{
	"contact_email": "email",
	"contact_phone": "phone",
}

// Applier writes confidence-gated patch suggestions to the database, fills
// only fields that are currently empty, and records an audit entry for each
// mutated record.
type Applier struct {
	profiles  port.ProfileRepository
	funding   port.FundingSourceRepository
	audit     port.AuditRepository
	threshold float64
}

// NewApplier builds an Applier. threshold is the minimum confidence
// (inclusive) a suggestion needs to be applied.
func NewApplier(profiles port.ProfileRepository, funding port.FundingSourceRepository, audit port.AuditRepository, threshold float64) *Applier {
	return &Applier{profiles: profiles, funding: funding, audit: audit, threshold: threshold}
}

// Apply writes the patch document's suggestions to the database and returns
// a summary of every change made. A missing profile is fatal. A missing
// funding_sources table skips the funding phase. Individual funding source
// failures are logged and skipped so one bad entry cannot block the rest.
func (a *Applier) Apply(ctx context.Context, patches Document, documentID, profileID uuid.UUID) (*Summary, error) {
	summary := &Summary{
		Profile:        []FieldChange{},
		FundingSources: []FundingChange{},
	}

	if len(patches.Profile.Set) > 0 {
		if err := a.applyProfile(ctx, patches.Profile, documentID, profileID, summary); err != nil {
			return nil, err
		}
	}

	if len(patches.FundingSources) > 0 {
		a.applyFundingSources(ctx, patches.FundingSources, documentID, summary)
	}

	return summary, nil
}

func (a *Applier) applyProfile(ctx context.Context, p ProfilePatch, documentID, profileID uuid.UUID, summary *Summary) error {
	profile, err := a.profiles.GetByID(ctx, profileID)
	if err != nil {
		return fmt.Errorf("patch.Apply: load profile %s: %w", profileID, err)
	}

	before := *profile
	updated := false

	for _, accessor := range profileFieldAccessors {
		suggestion, ok := p.Set[accessor.name]
		if !ok || suggestion.Confidence < a.threshold {
			continue
		}
		value := asString(suggestion.Value)
		if value == "" || accessor.get(profile) != "" {
			continue
		}
		oldValue := accessor.get(profile)
		accessor.set(profile, value)
		updated = true
		summary.Profile = append(summary.Profile, FieldChange{
			Field:      accessor.name,
			OldValue:   oldValue,
			NewValue:   value,
			Confidence: suggestion.Confidence,
		})
	}

	if !updated {
		return nil
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := a.profiles.Update(ctx, profile); err != nil {
		return fmt.Errorf("patch.Apply: update profile %s: %w", profileID, err)
	}

	a.writeAudit(ctx, domain.AuditEntry{
		DocumentID: documentID,
		Entity:     domain.AuditEntityProfile,
		RecordID:   profileID.String(),
		Action:     domain.AuditActionUpdate,
		Before:     mustJSON(before),
		After:      mustJSON(profile),
		Changes:    mustJSON(summary.Profile),
	})
	return nil
}

func (a *Applier) applyFundingSources(ctx context.Context, patches []FundingSourcePatch, documentID uuid.UUID, summary *Summary) {
	exists, err := a.funding.TableExists(ctx)
	if err != nil {
		log.Printf("patch.Apply: funding_sources table check failed: %v", err)
		return
	}
	if !exists {
		log.Printf("patch.Apply: funding_sources table does not exist, skipping funding source patches")
		return
	}

	for _, fp := range patches {
		name := fp.UpsertBy["name"]
		if name == "" {
			continue
		}
		if err := a.applyFundingSource(ctx, fp, name, documentID, summary); err != nil {
			log.Printf("patch.Apply: funding source %q: %v", name, err)
		}
	}
}

func (a *Applier) applyFundingSource(ctx context.Context, fp FundingSourcePatch, name string, documentID uuid.UUID, summary *Summary) error {
	existing, err := a.funding.GetByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrFundingSourceNotFound) {
		return fmt.Errorf("lookup: %w", err)
	}

	fs := existing
	isInsert := fs == nil
	if isInsert {
		fs = &domain.FundingSource{ID: uuid.New(), Name: name}
	}
	var before *domain.FundingSource
	if !isInsert {
		snapshot := *fs
		before = &snapshot
	}

	var changes []FundingChange

	for _, accessor := range fundingFieldAccessors {
		suggestion, ok := lookupSuggestion(fp.Set, accessor.name)
		if !ok || suggestion.Confidence < a.threshold {
			continue
		}
		value := asString(suggestion.Value)
		if value == "" || accessor.get(fs) != "" {
			continue
		}
		oldValue := accessor.get(fs)
		accessor.set(fs, value)
		changes = append(changes, FundingChange{
			Name:       name,
			Field:      accessor.name,
			OldValue:   oldValue,
			NewValue:   value,
			Confidence: suggestion.Confidence,
		})
	}

	if suggestion, ok := fp.Set["award_amount"]; ok && suggestion.Confidence >= a.threshold {
		if amount := asFloat(suggestion.Value); amount > 0 && fs.AwardAmount == 0 {
			oldValue := fs.AwardAmount
			fs.AwardAmount = amount
			changes = append(changes, FundingChange{
				Name:       name,
				Field:      "award_amount",
				OldValue:   oldValue,
				NewValue:   amount,
				Confidence: suggestion.Confidence,
			})
		}
	}

	if len(changes) == 0 {
		return nil
	}

	now := time.Now().UTC()
	fs.UpdatedAt = now
	action := domain.AuditActionUpdate
	if isInsert {
		fs.CreatedAt = now
		action = domain.AuditActionInsert
		if err := a.funding.Create(ctx, fs); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	} else {
		if err := a.funding.Update(ctx, fs); err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}

	summary.FundingSources = append(summary.FundingSources, changes...)

	entry := domain.AuditEntry{
		DocumentID: documentID,
		Entity:     domain.AuditEntityFundingSource,
		RecordID:   name,
		Action:     action,
		After:      mustJSON(fs),
		Changes:    mustJSON(changes),
	}
	if before != nil {
		entry.Before = mustJSON(before)
	}
	a.writeAudit(ctx, entry)
	return nil
}

// writeAudit records an audit entry. Audit failures are logged but never
// propagated; a lost audit record must not roll back an applied patch.
func (a *Applier) writeAudit(ctx context.Context, entry domain.AuditEntry) {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()
	if err := a.audit.Create(ctx, &entry); err != nil {
		log.Printf("patch.Apply: audit write failed for %s %s: %v", entry.Entity, entry.RecordID, err)
	}
}

// lookupSuggestion resolves a column name against the patch set, accepting
// either the column name itself or its extraction-field alias.
func lookupSuggestion(set map[string]Value, column string) (Value, bool) {
	if v, ok := set[column]; ok {
		return v, true
	}
	for alias, mapped := range fieldColumnRemap {
		if mapped == column {
			if v, ok := set[alias]; ok {
				return v, true
			}
		}
	}
	return Value{}, false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	}
	return 0
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`null`)
	}
	return b
}
