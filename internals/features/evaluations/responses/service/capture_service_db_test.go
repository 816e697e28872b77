package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	formModel "kompetensiku_backend/internals/features/evaluations/forms/model"
	"kompetensiku_backend/internals/features/evaluations/responses/dto"
	responseModel "kompetensiku_backend/internals/features/evaluations/responses/model"
	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
	userModel "kompetensiku_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: hidup per koneksi; batasi pool supaya tidak membuka DB kedua
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&formModel.EvaluationFormModel{},
		&formModel.CompetencyUnitModel{},
		&formModel.CompetencyElementModel{},
		&responseModel.EvaluationResponseModel{},
		&sessionModel.EvaluationSessionModel{},
	))
	return db
}

func seedForm(t *testing.T, db *gorm.DB, elementCount int) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	form := formModel.EvaluationFormModel{
		EvaluationFormID:        uuid.New(),
		EvaluationFormTitle:     "Evaluasi Kompetensi Instruktur",
		EvaluationFormIsActive:  true,
		EvaluationFormCreatedBy: uuid.New(),
	}
	require.NoError(t, db.Create(&form).Error)

	unit := formModel.CompetencyUnitModel{
		CompetencyUnitID:     uuid.New(),
		CompetencyUnitFormID: form.EvaluationFormID,
		CompetencyUnitName:   "Unit 1",
	}
	require.NoError(t, db.Create(&unit).Error)

	elementIDs := make([]uuid.UUID, 0, elementCount)
	for i := 0; i < elementCount; i++ {
		elem := formModel.CompetencyElementModel{
			CompetencyElementID:         uuid.New(),
			CompetencyElementUnitID:     unit.CompetencyUnitID,
			CompetencyElementTask:       "Tugas",
			CompetencyElementOrderIndex: i,
		}
		require.NoError(t, db.Create(&elem).Error)
		elementIDs = append(elementIDs, elem.CompetencyElementID)
	}
	return form.EvaluationFormID, elementIDs
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		ID:       uuid.New(),
		UserName: "budi",
		FullName: "Budi Santoso",
		Email:    uuid.NewString() + "@example.com",
		Role:     "instructor",
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func fullEntry(elementID uuid.UUID, crit, comp, freq int) dto.SubmitRatingEntry {
	return dto.SubmitRatingEntry{
		ElementID:       elementID,
		Criticality:     &crit,
		CompetenceLevel: &comp,
		Frequency:       &freq,
	}
}

// Submit batch identik dua kali harus meng-update baris yang sama,
// bukan menambah baris; session tetap satu dan persentasenya sama.
func TestSubmitRatings_ResubmitUpdatesSameRows(t *testing.T) {
	db := newTestDB(t)
	formID, elems := seedForm(t, db, 3)
	rater := uuid.New()
	svc := NewRatingCaptureService()

	req := &dto.SubmitRatingsRequest{
		FormID:       formID,
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings: []dto.SubmitRatingEntry{
			fullEntry(elems[0], 3, 4, 3),
			fullEntry(elems[1], 2, 3, 2),
			fullEntry(elems[2], 1, 2, 1),
		},
	}

	sum1, err := svc.SubmitRatings(db, rater, req)
	require.NoError(t, err)
	sum2, err := svc.SubmitRatings(db, rater, req)
	require.NoError(t, err)

	var rowCount int64
	require.NoError(t, db.Model(&responseModel.EvaluationResponseModel{}).
		Where("evaluation_response_rater_id = ?", rater).
		Count(&rowCount).Error)
	assert.Equal(t, int64(3), rowCount, "satu baris per elemen, submit ulang tidak menduplikasi")

	var sessionCount int64
	require.NoError(t, db.Model(&sessionModel.EvaluationSessionModel{}).
		Where("evaluation_session_rater_id = ?", rater).
		Count(&sessionCount).Error)
	assert.Equal(t, int64(1), sessionCount)

	assert.Equal(t, sum1.SessionID, sum2.SessionID)
	assert.Equal(t, 100.0, sum2.CompletionPercentage)
	assert.Equal(t, sessionModel.SessionStatusCompleted, sum2.Status)
}

// Submit ulang dengan nilai berbeda: last-writer-wins pada baris yang sama.
func TestSubmitRatings_ResubmitOverwritesValues(t *testing.T) {
	db := newTestDB(t)
	formID, elems := seedForm(t, db, 1)
	rater := uuid.New()
	svc := NewRatingCaptureService()

	first := &dto.SubmitRatingsRequest{
		FormID:       formID,
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings:      []dto.SubmitRatingEntry{fullEntry(elems[0], 1, 1, 1)},
	}
	_, err := svc.SubmitRatings(db, rater, first)
	require.NoError(t, err)

	second := &dto.SubmitRatingsRequest{
		FormID:       formID,
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings:      []dto.SubmitRatingEntry{fullEntry(elems[0], 3, 4, 3)},
	}
	_, err = svc.SubmitRatings(db, rater, second)
	require.NoError(t, err)

	var rows []responseModel.EvaluationResponseModel
	require.NoError(t, db.
		Where("evaluation_response_rater_id = ?", rater).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 36.0, *rows[0].EvaluationResponseCPRScore)
	assert.False(t, rows[0].EvaluationResponseNeedsTraining)
}

// Setelah submit supervisor, baris `final` yang termaterialisasi harus sama
// persis dengan hasil hitung on-the-fly di FinalView.
func TestSupervisorSubmit_MaterializedMatchesComputed(t *testing.T) {
	db := newTestDB(t)
	formID, elems := seedForm(t, db, 2)
	instructor := seedUser(t, db)
	supervisor := uuid.New()
	svc := NewRatingCaptureService()

	// instruktur mengisi self untuk kedua elemen
	selfReq := &dto.SubmitRatingsRequest{
		FormID:       formID,
		ResponseType: responseModel.ResponseTypeSelf,
		Ratings: []dto.SubmitRatingEntry{
			fullEntry(elems[0], 3, 4, 3), // cpr 36
			fullEntry(elems[1], 1, 2, 3), // cpr 6
		},
	}
	_, err := svc.SubmitRatings(db, instructor, selfReq)
	require.NoError(t, err)

	// supervisor menilai instruktur, hanya elemen pertama
	supReq := &dto.SubmitRatingsRequest{
		FormID:       formID,
		SubjectID:    &instructor,
		ResponseType: responseModel.ResponseTypeSupervisor,
		Ratings:      []dto.SubmitRatingEntry{fullEntry(elems[0], 2, 2, 2)}, // cpr 8
	}
	_, err = svc.SubmitRatings(db, supervisor, supReq)
	require.NoError(t, err)

	view, err := svc.Reconciler.FinalView(db, formID, instructor)
	require.NoError(t, err)

	computed := map[uuid.UUID]dto.FinalElementResult{}
	for _, unit := range view.Units {
		for _, el := range unit.Elements {
			computed[el.ElementID] = el
		}
	}

	var finals []responseModel.EvaluationResponseModel
	require.NoError(t, db.
		Where("evaluation_response_rater_id = ? AND evaluation_response_type = ?",
			instructor, responseModel.ResponseTypeFinal).
		Find(&finals).Error)
	require.Len(t, finals, 1, "hanya elemen yang dinilai supervisor yang termaterialisasi")

	mat := finals[0]
	comp, ok := computed[mat.EvaluationResponseElementID]
	require.True(t, ok)

	assert.Equal(t, SourceSupervisor, comp.Source)
	assert.Equal(t, *comp.Final.CPRScore, *mat.EvaluationResponseCPRScore)
	assert.Equal(t, comp.Final.NeedsTraining, mat.EvaluationResponseNeedsTraining)
	assert.Equal(t, *comp.Final.Criticality, *mat.EvaluationResponseCriticality)
	assert.Equal(t, *comp.Final.CompetenceLevel, *mat.EvaluationResponseCompetenceLevel)
	assert.Equal(t, *comp.Final.Frequency, *mat.EvaluationResponseFrequency)
	assert.Equal(t, 8.0, *mat.EvaluationResponseCPRScore)

	// rollup agregat: supervisor punya skor → rata-rata supervisor menang
	require.NotNil(t, view.FinalAverageCPR)
	assert.Equal(t, 8.0, *view.FinalAverageCPR)
	require.NotNil(t, view.SelfAverageCPR)
	assert.Equal(t, 21.0, *view.SelfAverageCPR)

	// elemen tanpa baris supervisor jatuh ke self di jalur on-the-fly
	other := computed[elems[1]]
	assert.Equal(t, SourceInstructor, other.Source)
	assert.Equal(t, 6.0, *other.Final.CPRScore)
}
