package domain

// ProfileType distinguishes individual and organization profiles.
type ProfileType string

const (
	ProfileTypeIndividual   ProfileType = "individual"
	ProfileTypeOrganization ProfileType = "organization"
)

// DocumentStatus represents the lifecycle of an uploaded document.
// Applied is only reachable from Parsed; Failed is terminal unless a caller
// explicitly re-triggers parsing.
type DocumentStatus string

const (
	DocumentStatusUploaded DocumentStatus = "uploaded"
	DocumentStatusParsing  DocumentStatus = "parsing"
	DocumentStatusParsed   DocumentStatus = "parsed"
	DocumentStatusFailed   DocumentStatus = "failed"
	DocumentStatusApplied  DocumentStatus = "applied"
)

// AuditEntity identifies which record type a patch mutation touched.
type AuditEntity string

const (
	AuditEntityProfile       AuditEntity = "profile"
	AuditEntityFundingSource AuditEntity = "funding_source"
)

// AuditAction identifies how the target record was mutated.
type AuditAction string

const (
	AuditActionUpdate AuditAction = "update"
	AuditActionInsert AuditAction = "insert"
)

// AllowedContentTypes maps upload MIME content types to a short file type tag.
var AllowedContentTypes = map[string]string{
	"application/pdf": "pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"image/jpeg": "jpg",
	"image/png":  "png",
}
