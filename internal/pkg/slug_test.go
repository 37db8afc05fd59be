package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Türkiye'de Yazılım Sektörü", "turkiye-de-yazilim-sektoru"},
		{"göç ve şehir", "goc-ve-sehir"},
		{"  spaced   out  ", "spaced-out"},
		{"C++ vs Go!!!", "c-vs-go"},
		{"already-sluggy", "already-sluggy"},
		{"2024 yılında", "2024-yilinda"},
		{"???", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.title), "title %q", tc.title)
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	slug := GenerateSlug("Türkiye'de Yazılım Sektörü")
	assert.Equal(t, slug, GenerateSlug(slug))
}
