package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "COMPRA-0001", FormatDocumentNumber(SeriesPurchase, 1))
	assert.Equal(t, "AJU-0042", FormatDocumentNumber(SeriesAdjustment, 42))
	assert.Equal(t, "COMPRA-12345", FormatDocumentNumber(SeriesPurchase, 12345))
}
