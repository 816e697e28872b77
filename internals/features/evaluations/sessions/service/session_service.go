package service

import (
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
)

// SessionTrackerService memelihara baris progres per
// (form, rater, subject, session_type). Semua method menerima tx supaya
// bisa ikut transaksi batch rating capture.
type SessionTrackerService struct{}

func NewSessionTrackerService() *SessionTrackerService { return &SessionTrackerService{} }

// DeriveProgress: persentase + status murni dari hitungan.
// total 0 → 0.00 & not_started. Persentase dibulatkan 2 desimal.
func DeriveProgress(totalElements, completedElements int) (float64, string) {
	if totalElements <= 0 {
		return 0, sessionModel.SessionStatusNotStarted
	}
	pct := math.Round(float64(completedElements)/float64(totalElements)*100*100) / 100
	switch {
	case pct >= 100:
		return 100, sessionModel.SessionStatusCompleted
	case pct > 0:
		return pct, sessionModel.SessionStatusInProgress
	default:
		return 0, sessionModel.SessionStatusNotStarted
	}
}

// EnsureSession: ambil baris session untuk key ini, buat kalau belum ada
// (lazy). Lookup dan create berjalan di dalam transaksi pemanggil; subject
// NULL tidak bisa diserahkan ke unique index (NULL dianggap distinct oleh
// postgres), jadi jalurnya cek-dulu-baru-insert, bukan OnConflict.
func (s *SessionTrackerService) EnsureSession(tx *gorm.DB, formID, raterID uuid.UUID, subjectID *uuid.UUID, sessionType string) (*sessionModel.EvaluationSessionModel, error) {
	if !sessionModel.IsValidSessionType(sessionType) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "session_type tidak dikenal")
	}

	var found sessionModel.EvaluationSessionModel
	err := tx.
		Where(`
			evaluation_session_form_id = ?
			AND evaluation_session_rater_id = ?
			AND evaluation_session_subject_id IS NOT DISTINCT FROM ?
			AND evaluation_session_type = ?
		`, formID, raterID, subjectID, sessionType).
		First(&found).Error
	if err == nil {
		return &found, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca session")
	}

	row := sessionModel.EvaluationSessionModel{
		EvaluationSessionFormID:           formID,
		EvaluationSessionRaterID:          raterID,
		EvaluationSessionSubjectID:        subjectID,
		EvaluationSessionType:             sessionType,
		EvaluationSessionStatus:           sessionModel.SessionStatusNotStarted,
		EvaluationSessionSupervisorStatus: sessionModel.SupervisorStatusNotEvaluated,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyiapkan session")
	}
	return &row, nil
}

// Recompute menghitung ulang progres dari nol setiap kali dipanggil:
// total dari struktur form saat ini (tidak dicache), completed dari baris
// response yang ketiga sub-ratingnya terisi. started_at di-set sekali;
// completed_at di-set saat 100% dan tidak dihapus kalau persentase turun.
func (s *SessionTrackerService) Recompute(tx *gorm.DB, sess *sessionModel.EvaluationSessionModel) error {
	var total int64
	if err := tx.Table("competency_elements").
		Joins("JOIN competency_units ON competency_units.competency_unit_id = competency_elements.competency_element_unit_id").
		Where("competency_units.competency_unit_form_id = ?", sess.EvaluationSessionFormID).
		Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung total elemen")
	}

	var completed int64
	if err := tx.Table("evaluation_responses").
		Where(`
			evaluation_response_form_id = ?
			AND evaluation_response_rater_id = ?
			AND evaluation_response_subject_id IS NOT DISTINCT FROM ?
			AND evaluation_response_type = ?
			AND evaluation_response_criticality IS NOT NULL
			AND evaluation_response_competence_level IS NOT NULL
			AND evaluation_response_frequency IS NOT NULL
		`,
			sess.EvaluationSessionFormID,
			sess.EvaluationSessionRaterID,
			sess.EvaluationSessionSubjectID,
			sess.EvaluationSessionType,
		).
		Count(&completed).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung elemen selesai")
	}

	pct, status := DeriveProgress(int(total), int(completed))

	now := time.Now()
	sess.EvaluationSessionTotalElements = int(total)
	sess.EvaluationSessionCompletedElements = int(completed)
	sess.EvaluationSessionCompletionPercentage = pct
	if status != sessionModel.SessionStatusNotStarted {
		sess.EvaluationSessionStatus = status
	}
	if pct > 0 && sess.EvaluationSessionStartedAt == nil {
		sess.EvaluationSessionStartedAt = &now
	}
	if pct >= 100 && sess.EvaluationSessionCompletedAt == nil {
		sess.EvaluationSessionCompletedAt = &now
	}

	if err := tx.Save(sess).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan session")
	}
	return nil
}

// RecomputeByID: dipakai aksi admin "refresh status".
func (s *SessionTrackerService) RecomputeByID(db *gorm.DB, sessionID uuid.UUID) (*sessionModel.EvaluationSessionModel, error) {
	var sess sessionModel.EvaluationSessionModel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("evaluation_session_id = ?", sessionID).
			First(&sess).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Session tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca session")
		}
		return s.Recompute(tx, &sess)
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// MarkSupervisorStatus set sinyal kasar supervisor (dipanggil rating capture).
func (s *SessionTrackerService) MarkSupervisorStatus(tx *gorm.DB, sess *sessionModel.EvaluationSessionModel, status string) error {
	sess.EvaluationSessionSupervisorStatus = status
	if err := tx.Model(&sessionModel.EvaluationSessionModel{}).
		Where("evaluation_session_id = ?", sess.EvaluationSessionID).
		Update("evaluation_session_supervisor_status", status).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal update status supervisor")
	}
	return nil
}
