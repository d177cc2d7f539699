package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "laporan-pertanggungjawaban-2024", Slugify("  Laporan Pertanggungjawaban 2024 ", 0))
	assert.Equal(t, "cafe-desa", Slugify("Café  Désa!!", 0))
	assert.Equal(t, "item", Slugify("***", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}
