package extractor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"grantflow/internal/domain"
	"grantflow/internal/extractor"
	"grantflow/mocks"
)

func TestRegistry_DispatchesOnMimeType(t *testing.T) {
	pdfLike := new(mocks.MockTextExtractor)
	pdfLike.On("Supports", "application/pdf").Return(true)
	pdfLike.On("Extract", mock.Anything, []byte("raw")).Return("extracted text", nil)

	r := extractor.NewRegistry(pdfLike)

	text, err := r.Extract(context.Background(), []byte("raw"), "application/pdf")

	assert.NoError(t, err)
	assert.Equal(t, "extracted text", text)
	pdfLike.AssertExpectations(t)
}

func TestRegistry_FirstClaimWins(t *testing.T) {
	first := new(mocks.MockTextExtractor)
	first.On("Supports", "image/png").Return(true)
	first.On("Extract", mock.Anything, mock.Anything).Return("from first", nil)

	second := new(mocks.MockTextExtractor)

	r := extractor.NewRegistry(first, second)

	text, err := r.Extract(context.Background(), []byte{0x01}, "image/png")

	assert.NoError(t, err)
	assert.Equal(t, "from first", text)
	second.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestRegistry_UnsupportedMimeType(t *testing.T) {
	docx := new(mocks.MockTextExtractor)
	docx.On("Supports", "application/zip").Return(false)

	r := extractor.NewRegistry(docx)

	_, err := r.Extract(context.Background(), []byte{0x01}, "application/zip")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	assert.Contains(t, err.Error(), "application/zip")
}
