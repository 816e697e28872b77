package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestComputeCPR_Determinism(t *testing.T) {
	// skor = criticality * competence * frequency, needs_training ⇔ skor < 21
	score, needs := ComputeCPR(intPtr(3), intPtr(4), intPtr(2))
	assert.NotNil(t, score)
	assert.Equal(t, 24.0, *score)
	assert.False(t, needs, "24 >= 21, tidak butuh training")

	score, needs = ComputeCPR(intPtr(1), intPtr(2), intPtr(3))
	assert.NotNil(t, score)
	assert.Equal(t, 6.0, *score)
	assert.True(t, needs, "6 < 21, butuh training")

	// nilai terdekat ambang yang bisa dicapai: 18 (butuh) dan 24 (tidak);
	// 21 sendiri tidak mungkin sebagai produk rentang 3x4x3
	score, needs = ComputeCPR(intPtr(2), intPtr(3), intPtr(3))
	assert.Equal(t, 18.0, *score)
	assert.True(t, needs)

	score, needs = ComputeCPR(intPtr(2), intPtr(4), intPtr(3))
	assert.Equal(t, 24.0, *score)
	assert.False(t, needs)
}

func TestComputeCPR_Extremes(t *testing.T) {
	score, needs := ComputeCPR(intPtr(1), intPtr(1), intPtr(1))
	assert.Equal(t, 1.0, *score)
	assert.True(t, needs)

	score, needs = ComputeCPR(intPtr(3), intPtr(4), intPtr(3))
	assert.Equal(t, 36.0, *score)
	assert.False(t, needs)
}

func TestComputeCPR_MissingInput(t *testing.T) {
	// satu saja sub-rating kosong → skor nil, bukan 0 atau skor parsial
	score, needs := ComputeCPR(nil, intPtr(4), intPtr(3))
	assert.Nil(t, score)
	assert.False(t, needs)

	score, needs = ComputeCPR(intPtr(3), nil, intPtr(3))
	assert.Nil(t, score)
	assert.False(t, needs)

	score, needs = ComputeCPR(intPtr(3), intPtr(4), nil)
	assert.Nil(t, score)
	assert.False(t, needs)

	score, needs = ComputeCPR(nil, nil, nil)
	assert.Nil(t, score)
	assert.False(t, needs)
}

func TestValidateSubRatings(t *testing.T) {
	// nil sah (pengisian parsial)
	assert.NoError(t, ValidateSubRatings(nil, nil, nil))
	assert.NoError(t, ValidateSubRatings(intPtr(1), nil, intPtr(3)))
	assert.NoError(t, ValidateSubRatings(intPtr(3), intPtr(4), intPtr(3)))

	// di luar rentang → error
	assert.Error(t, ValidateSubRatings(intPtr(0), nil, nil))
	assert.Error(t, ValidateSubRatings(intPtr(4), nil, nil), "criticality maks 3")
	assert.Error(t, ValidateSubRatings(nil, intPtr(5), nil), "competence maks 4")
	assert.Error(t, ValidateSubRatings(nil, nil, intPtr(4)), "frequency maks 3")
	assert.Error(t, ValidateSubRatings(nil, intPtr(-1), nil))
}
