package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
)

func TestDeriveProgress_InProgress(t *testing.T) {
	// 3 dari 5 elemen lengkap → 60.00%, in_progress
	pct, status := DeriveProgress(5, 3)
	assert.Equal(t, 60.0, pct)
	assert.Equal(t, sessionModel.SessionStatusInProgress, status)
}

func TestDeriveProgress_Completed(t *testing.T) {
	pct, status := DeriveProgress(5, 5)
	assert.Equal(t, 100.0, pct)
	assert.Equal(t, sessionModel.SessionStatusCompleted, status)
}

func TestDeriveProgress_NotStarted(t *testing.T) {
	pct, status := DeriveProgress(5, 0)
	assert.Equal(t, 0.0, pct)
	assert.Equal(t, sessionModel.SessionStatusNotStarted, status)
}

func TestDeriveProgress_EmptyForm(t *testing.T) {
	// form tanpa elemen: 0.00, bukan pembagian nol
	pct, status := DeriveProgress(0, 0)
	assert.Equal(t, 0.0, pct)
	assert.Equal(t, sessionModel.SessionStatusNotStarted, status)
}

func TestDeriveProgress_Rounding(t *testing.T) {
	// 1 dari 3 → 33.33 (dibulatkan 2 desimal)
	pct, status := DeriveProgress(3, 1)
	assert.Equal(t, 33.33, pct)
	assert.Equal(t, sessionModel.SessionStatusInProgress, status)

	pct, _ = DeriveProgress(3, 2)
	assert.Equal(t, 66.67, pct)
}

func TestDeriveProgress_RecomputeIdempotent(t *testing.T) {
	// hitung ulang dengan input sama harus memberi hasil sama persis
	p1, s1 := DeriveProgress(7, 4)
	p2, s2 := DeriveProgress(7, 4)
	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
}
