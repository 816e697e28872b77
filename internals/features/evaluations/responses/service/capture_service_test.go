package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"kompetensiku_backend/internals/features/evaluations/responses/dto"
	responseModel "kompetensiku_backend/internals/features/evaluations/responses/model"
)

func validEntry() dto.SubmitRatingEntry {
	return dto.SubmitRatingEntry{
		ElementID:       uuid.New(),
		Criticality:     intPtr(2),
		CompetenceLevel: intPtr(3),
		Frequency:       intPtr(1),
	}
}

func assertFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	assert.Error(t, err)
	fe, ok := err.(*fiber.Error)
	assert.True(t, ok, "harus *fiber.Error")
	assert.Equal(t, status, fe.Code)
}

func TestValidateSubmission_SelfOK(t *testing.T) {
	rater := uuid.New()
	req := &dto.SubmitRatingsRequest{
		FormID:       uuid.New(),
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings:      []dto.SubmitRatingEntry{validEntry()},
	}
	assert.NoError(t, ValidateSubmission(rater, req))
}

func TestValidateSubmission_SelfWithSubjectRejected(t *testing.T) {
	rater := uuid.New()
	subject := uuid.New()
	req := &dto.SubmitRatingsRequest{
		FormID:       uuid.New(),
		SubjectID:    &subject,
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings:      []dto.SubmitRatingEntry{validEntry()},
	}
	assertFiberStatus(t, ValidateSubmission(rater, req), fiber.StatusBadRequest)
}

func TestValidateSubmission_SupervisorNeedsSubject(t *testing.T) {
	rater := uuid.New()
	req := &dto.SubmitRatingsRequest{
		FormID:       uuid.New(),
		ResponseType: responseModel.ResponseTypeSupervisor,
		Ratings:      []dto.SubmitRatingEntry{validEntry()},
	}
	assertFiberStatus(t, ValidateSubmission(rater, req), fiber.StatusBadRequest)
}

func TestValidateSubmission_SupervisorCannotRateSelf(t *testing.T) {
	rater := uuid.New()
	req := &dto.SubmitRatingsRequest{
		FormID:       uuid.New(),
		SubjectID:    &rater,
		ResponseType: responseModel.ResponseTypeSupervisor,
		Ratings:      []dto.SubmitRatingEntry{validEntry()},
	}
	assertFiberStatus(t, ValidateSubmission(rater, req), fiber.StatusBadRequest)
}

func TestValidateSubmission_UnknownResponseType(t *testing.T) {
	rater := uuid.New()
	for _, bad := range []string{"", "final", "peer"} {
		req := &dto.SubmitRatingsRequest{
			FormID:       uuid.New(),
			ResponseType: bad,
			Ratings:      []dto.SubmitRatingEntry{validEntry()},
		}
		assertFiberStatus(t, ValidateSubmission(rater, req), fiber.StatusBadRequest)
	}
}

func TestValidateSubmission_OutOfRangeValue(t *testing.T) {
	rater := uuid.New()
	entry := validEntry()
	entry.CompetenceLevel = intPtr(5)
	req := &dto.SubmitRatingsRequest{
		FormID:       uuid.New(),
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings:      []dto.SubmitRatingEntry{entry},
	}
	assertFiberStatus(t, ValidateSubmission(rater, req), fiber.StatusBadRequest)
}

func TestValidateSubmission_AllEmptyBatchRejected(t *testing.T) {
	rater := uuid.New()
	// entri tanpa satu pun sub-rating: di-skip; batch yang semuanya kosong
	// tidak menyimpan apa-apa → tolak
	req := &dto.SubmitRatingsRequest{
		FormID:       uuid.New(),
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings: []dto.SubmitRatingEntry{
			{ElementID: uuid.New()},
			{ElementID: uuid.New()},
		},
	}
	assertFiberStatus(t, ValidateSubmission(rater, req), fiber.StatusBadRequest)
}

func TestValidateSubmission_PartialEntryAllowed(t *testing.T) {
	rater := uuid.New()
	// hanya criticality terisi: sah untuk disimpan (cpr tetap nil)
	req := &dto.SubmitRatingsRequest{
		FormID:       uuid.New(),
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings: []dto.SubmitRatingEntry{
			{ElementID: uuid.New(), Criticality: intPtr(3)},
		},
	}
	assert.NoError(t, ValidateSubmission(rater, req))
}

func TestEntryIsEmpty(t *testing.T) {
	assert.True(t, entryIsEmpty(dto.SubmitRatingEntry{ElementID: uuid.New()}))
	assert.False(t, entryIsEmpty(dto.SubmitRatingEntry{ElementID: uuid.New(), Frequency: intPtr(1)}))
}
