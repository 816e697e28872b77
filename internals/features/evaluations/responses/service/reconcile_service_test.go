package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	responseModel "kompetensiku_backend/internals/features/evaluations/responses/model"
)

func floatPtr(v float64) *float64 { return &v }

func makeResponse(respType string, crit, comp, freq int) *responseModel.EvaluationResponseModel {
	score, needs := ComputeCPR(intPtr(crit), intPtr(comp), intPtr(freq))
	return &responseModel.EvaluationResponseModel{
		EvaluationResponseID:              uuid.New(),
		EvaluationResponseType:            respType,
		EvaluationResponseCriticality:     intPtr(crit),
		EvaluationResponseCompetenceLevel: intPtr(comp),
		EvaluationResponseFrequency:       intPtr(freq),
		EvaluationResponseCPRScore:        score,
		EvaluationResponseNeedsTraining:   needs,
	}
}

func TestResolveFinal_SupervisorPriority(t *testing.T) {
	self := makeResponse(responseModel.ResponseTypeSelf, 3, 4, 3)      // cpr 36
	sup := makeResponse(responseModel.ResponseTypeSupervisor, 1, 2, 3) // cpr 6

	// supervisor ada → nilai supervisor menang mutlak, terlepas siapa
	// submit duluan atau skor siapa lebih tinggi
	cell, source := ResolveFinal(self, sup)
	assert.Equal(t, SourceSupervisor, source)
	assert.Equal(t, 6.0, *cell.CPRScore)
	assert.True(t, cell.NeedsTraining)
	assert.Equal(t, 1, *cell.Criticality)
	assert.Equal(t, 2, *cell.CompetenceLevel)
	assert.Equal(t, 3, *cell.Frequency)
}

func TestResolveFinal_SupervisorWinsEvenIfIncomplete(t *testing.T) {
	self := makeResponse(responseModel.ResponseTypeSelf, 3, 4, 3)

	// baris supervisor parsial (skor masih nil) tetap menang — aturan
	// override ketat berdasar keberadaan baris, bukan kelengkapan
	sup := &responseModel.EvaluationResponseModel{
		EvaluationResponseID:          uuid.New(),
		EvaluationResponseType:        responseModel.ResponseTypeSupervisor,
		EvaluationResponseCriticality: intPtr(2),
	}

	cell, source := ResolveFinal(self, sup)
	assert.Equal(t, SourceSupervisor, source)
	assert.Nil(t, cell.CPRScore)
	assert.Equal(t, 2, *cell.Criticality)
	assert.Nil(t, cell.CompetenceLevel)
}

func TestResolveFinal_SelfFallback(t *testing.T) {
	self := makeResponse(responseModel.ResponseTypeSelf, 2, 3, 3) // cpr 18

	cell, source := ResolveFinal(self, nil)
	assert.Equal(t, SourceInstructor, source)
	assert.Equal(t, 18.0, *cell.CPRScore)
	assert.True(t, cell.NeedsTraining)
}

func TestResolveFinal_NoData(t *testing.T) {
	cell, source := ResolveFinal(nil, nil)
	assert.Equal(t, SourceNone, source)
	assert.NotNil(t, cell.CPRScore)
	assert.Equal(t, 0.0, *cell.CPRScore)
	assert.False(t, cell.NeedsTraining)
	assert.Nil(t, cell.Criticality)
}

func TestAverageCPR_ExcludesNullScores(t *testing.T) {
	rows := []responseModel.EvaluationResponseModel{
		{EvaluationResponseCPRScore: floatPtr(36)},
		{EvaluationResponseCPRScore: floatPtr(6)},
		{EvaluationResponseCPRScore: nil}, // parsial: tidak ikut pembilang maupun penyebut
	}
	avg := AverageCPR(rows)
	assert.NotNil(t, avg)
	assert.Equal(t, 21.0, *avg)
}

func TestAverageCPR_NoScores(t *testing.T) {
	assert.Nil(t, AverageCPR(nil))
	assert.Nil(t, AverageCPR([]responseModel.EvaluationResponseModel{
		{EvaluationResponseCPRScore: nil},
	}))
}

func TestResolveAggregateCPR(t *testing.T) {
	// aturan agregat berdiri sendiri: supervisor punya skor apa pun → menang
	assert.Equal(t, 10.0, *ResolveAggregateCPR(floatPtr(30), floatPtr(10)))
	assert.Equal(t, 30.0, *ResolveAggregateCPR(floatPtr(30), nil))
	assert.Nil(t, ResolveAggregateCPR(nil, nil))
}
