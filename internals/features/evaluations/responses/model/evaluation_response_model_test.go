package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUniqueKeyIndexTreatsNullSubjectAsEqual(t *testing.T) {
	// tanpa NULLS NOT DISTINCT, baris self/final (subject NULL) lolos dari
	// keunikan karena postgres menganggap NULL saling berbeda
	assert.Contains(t, UniqueKeyIndexDDL, "NULLS NOT DISTINCT")

	for _, col := range []string{
		"evaluation_response_rater_id",
		"evaluation_response_element_id",
		"evaluation_response_subject_id",
		"evaluation_response_type",
	} {
		assert.Contains(t, UniqueKeyIndexDDL, col)
	}
}

func TestBeforeCreateFillsID(t *testing.T) {
	m := EvaluationResponseModel{}
	assert.NoError(t, m.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, m.EvaluationResponseID)

	// ID yang sudah diisi tidak ditimpa
	fixed := uuid.New()
	m2 := EvaluationResponseModel{EvaluationResponseID: fixed}
	assert.NoError(t, m2.BeforeCreate(nil))
	assert.Equal(t, fixed, m2.EvaluationResponseID)
}
