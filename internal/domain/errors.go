package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrFundingSourceNotFound = errors.New("funding source not found")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrNoPatchesAvailable    = errors.New("no patches available for this document")
	ErrDocumentNotParsed     = errors.New("document has not been parsed yet")
	ErrDisplayNameRequired   = errors.New("display_name is required")
	ErrAdminRequired         = errors.New("admin authentication required")
	ErrRuntimeBusy           = errors.New("runtime is currently executing another task")
	ErrUnsupportedAction     = errors.New("unsupported runtime action")
)
