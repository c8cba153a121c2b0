package apperror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadRequestFormatsMessage(t *testing.T) {
	err := BadRequest("batch size exceeded (max %d)", 10_000)
	assert.Equal(t, KindBadRequest, err.Kind)
	assert.Equal(t, "batch size exceeded (max 10000)", err.Error())
}

func TestSymbolNotFoundIncludesSymbol(t *testing.T) {
	err := SymbolNotFound("BTC-USD")
	assert.Equal(t, KindSymbolNotFound, err.Kind)
	assert.Contains(t, err.Error(), "BTC-USD")
}

func TestNotEnoughData(t *testing.T) {
	err := NotEnoughData()
	assert.Equal(t, KindNotEnoughData, err.Kind)
	assert.NotEmpty(t, err.Error())
}
