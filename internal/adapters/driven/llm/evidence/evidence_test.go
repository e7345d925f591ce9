package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

func TestExtractSources(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []string
	}{
		{"page keyword", "See page 3 for details.", []string{"Page 3"}},
		{"abbreviated", "Mentioned on p. 7 and p.12.", []string{"Page 7", "Page 12"}},
		{"pg abbreviation", "Covered in pg. 4.", []string{"Page 4"}},
		{"deduplicated", "Page 3 and again Page 3.", []string{"Page 3"}},
		{"case insensitive", "PAGE 9 covers this.", []string{"Page 9"}},
		{"no references", "No citations at all.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSources(tt.answer))
		})
	}
}

func TestScoreConfidence(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		contextText string
		want        domain.Confidence
	}{
		{
			"high overlap",
			"the warranty covers two years",
			"the warranty covers two years from purchase",
			domain.ConfidenceHigh,
		},
		{
			"partial overlap",
			"warranty duration is unclear but coverage spans several years apparently maybe",
			"warranty coverage information",
			domain.ConfidenceMedium,
		},
		{
			"no overlap",
			"completely unrelated reply here",
			"warranty terms and conditions",
			domain.ConfidenceLow,
		},
		{
			"empty answer",
			"",
			"anything",
			domain.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreConfidence(tt.answer, tt.contextText))
		})
	}
}

func TestWordSet(t *testing.T) {
	set := WordSet(`The "quick" fox, (brown) jumps!`)
	for _, w := range []string{"the", "quick", "fox", "brown", "jumps"} {
		assert.True(t, set[w], w)
	}
	assert.Len(t, set, 5)
}
