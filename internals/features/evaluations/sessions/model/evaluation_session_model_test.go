package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueKeyIndexTreatsNullSubjectAsEqual(t *testing.T) {
	// baris session self (subject NULL) harus ikut tunduk keunikan
	assert.Contains(t, UniqueKeyIndexDDL, "NULLS NOT DISTINCT")

	for _, col := range []string{
		"evaluation_session_form_id",
		"evaluation_session_rater_id",
		"evaluation_session_subject_id",
		"evaluation_session_type",
	} {
		assert.Contains(t, UniqueKeyIndexDDL, col)
	}
}
