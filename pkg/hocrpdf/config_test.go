package hocrpdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Font.Size = 0
	assert.Error(t, cfg.Validate(), "zero font size")

	cfg = DefaultConfig()
	cfg.Font.Name = ""
	assert.Error(t, cfg.Validate(), "missing font name")

	cfg = DefaultConfig()
	cfg.LayerName = ""
	assert.Error(t, cfg.Validate(), "missing layer name")
}

func TestDefaultConfigSemantics(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.ShowImage, "images included unless disabled")
	assert.False(t, cfg.VisibleText, "text layer invisible by default")
	assert.False(t, cfg.InvertY, "top-down coordinates by default")
	assert.False(t, cfg.MultiPage)
}
