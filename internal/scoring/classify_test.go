package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPercentileBoundaries(t *testing.T) {
	tests := []struct {
		percentile float64
		want       string
	}{
		{1, Inferior},
		{5, Inferior},
		{5.1, MediaInferior},
		{25, MediaInferior},
		{25.1, Media},
		{50, Media},
		{75, Media},
		{75.1, MediaSuperior},
		{94.9, MediaSuperior},
		{95, Superior},
		{99, Superior},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPercentile(tt.percentile), "percentile %v", tt.percentile)
	}
}

func TestClassifyPercentileValueCodes(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"<5", Inferior},
		{"≤5", Inferior},
		{"5-10", MediaInferior},
		{"10-25", MediaInferior},
		{"25-50", Media},
		{"50-75", Media},
		{"75-90", MediaSuperior},
		{"90-95", MediaSuperior},
		{">95", Superior},
		{"95+", Superior},
		// Numeric strings take the numeric banding, not the code table.
		{"25", MediaInferior},
		{"75", Media},
		{"95", Superior},
		{"62,5", Media},
		// Unknowns never default to a mid-range label.
		{"", NotClassified},
		{"40-60", NotClassified},
		{"alto", NotClassified},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPercentileValue(tt.value), "value %q", tt.value)
	}
}

func TestClassifyZBoundaries(t *testing.T) {
	tests := []struct {
		z    float64
		want string
	}{
		{-2.0, Inferior},
		{-1.32, Inferior},
		{-1.31, MedioInferior},
		{-0.70, MedioInferior},
		{-0.69, Medio},
		{0, Medio},
		{0.65, Medio},
		{0.66, MedioSuperior},
		{1.36, MedioSuperior},
		{1.37, Superior},
		{2.5, Superior},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyZ(tt.z), "z %v", tt.z)
	}
}

func TestClassifyStandardBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{55, MuitoBaixa},
		{69, MuitoBaixa},
		{70, Baixa},
		{84, Baixa},
		{85, Media},
		{114, Media},
		{115, Alta},
		{129, Alta},
		{130, MuitoAlta},
		{145, MuitoAlta},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStandard(tt.score), "score %v", tt.score)
	}
}
