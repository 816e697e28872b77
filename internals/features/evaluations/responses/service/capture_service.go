package service

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formModel "kompetensiku_backend/internals/features/evaluations/forms/model"
	"kompetensiku_backend/internals/features/evaluations/responses/dto"
	responseModel "kompetensiku_backend/internals/features/evaluations/responses/model"
	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
	sessionService "kompetensiku_backend/internals/features/evaluations/sessions/service"
	userService "kompetensiku_backend/internals/features/users/user/service"
)

// RatingCaptureService menerima satu batch penilaian dari satu rater untuk
// satu form dan menyimpannya transaksional: semua upsert + recompute session
// + (untuk supervisor) materialisasi final commit bersama, atau tidak sama
// sekali.
type RatingCaptureService struct {
	Sessions   *sessionService.SessionTrackerService
	Reconciler *ReconciliationService
	Users      *userService.UserResolverService
}

func NewRatingCaptureService() *RatingCaptureService {
	return &RatingCaptureService{
		Sessions:   sessionService.NewSessionTrackerService(),
		Reconciler: NewReconciliationService(),
		Users:      userService.NewUserResolverService(),
	}
}

// entryIsEmpty: ketiga sub-rating kosong → entri di-skip (tidak membuat
// baris, tidak mengosongkan baris lama).
func entryIsEmpty(e dto.SubmitRatingEntry) bool {
	return e.Criticality == nil && e.CompetenceLevel == nil && e.Frequency == nil
}

// ValidateSubmission: aturan bentuk batch (di luar resolusi id).
// - response_type harus self/supervisor
// - self: subject harus kosong
// - supervisor: subject wajib dan ≠ rater
func ValidateSubmission(raterID uuid.UUID, req *dto.SubmitRatingsRequest) error {
	if !responseModel.IsSubmittableResponseType(req.ResponseType) {
		return fiber.NewError(fiber.StatusBadRequest, "response_type tidak dikenal")
	}

	switch req.ResponseType {
	case responseModel.ResponseTypeSelf:
		if req.SubjectID != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Rating self tidak boleh menyertakan subject")
		}
	case responseModel.ResponseTypeSupervisor:
		if req.SubjectID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Rating supervisor wajib menyertakan subject")
		}
		if *req.SubjectID == raterID {
			return fiber.NewError(fiber.StatusBadRequest, "Supervisor tidak boleh menilai dirinya sendiri")
		}
	}

	hasPayload := false
	for _, e := range req.Ratings {
		if err := ValidateSubRatings(e.Criticality, e.CompetenceLevel, e.Frequency); err != nil {
			return err
		}
		if !entryIsEmpty(e) {
			hasPayload = true
		}
	}
	if !hasPayload {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada nilai rating yang dikirim")
	}
	return nil
}

// SubmitRatings menjalankan seluruh batch dalam satu transaksi dan
// mengembalikan ringkasan session terkini (persentase langsung mencerminkan
// submit ini, tanpa proses async).
func (s *RatingCaptureService) SubmitRatings(db *gorm.DB, raterID uuid.UUID, req *dto.SubmitRatingsRequest) (*dto.SessionSummaryResponse, error) {
	if err := ValidateSubmission(raterID, req); err != nil {
		return nil, err
	}

	var summary dto.SessionSummaryResponse

	err := db.Transaction(func(tx *gorm.DB) error {
		// form harus ada
		var form formModel.EvaluationFormModel
		if err := tx.
			Where("evaluation_form_id = ?", req.FormID).
			First(&form).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Form evaluasi tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca form")
		}

		// subject harus user valid (supervisor saja; self tidak bawa subject)
		if req.SubjectID != nil {
			ok, err := s.Users.Exists(tx, *req.SubjectID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa subject")
			}
			if !ok {
				return fiber.NewError(fiber.StatusNotFound, "Subject tidak ditemukan")
			}
		}

		// elemen yang dikirim harus milik form ini
		elementSet, err := loadFormElementSet(tx, req.FormID)
		if err != nil {
			return err
		}

		ratedElementIDs := make([]uuid.UUID, 0, len(req.Ratings))
		for _, entry := range req.Ratings {
			if entryIsEmpty(entry) {
				continue // skip, jangan buat/kosongkan baris
			}
			if _, ok := elementSet[entry.ElementID]; !ok {
				return fiber.NewError(fiber.StatusNotFound, "Elemen kompetensi tidak ditemukan di form ini")
			}
			if err := s.upsertResponse(tx, raterID, req, entry); err != nil {
				return err
			}
			ratedElementIDs = append(ratedElementIDs, entry.ElementID)
		}

		// session: lazy create + recompute dari baris tersimpan
		// (bukan counter in-memory, supaya crash mid-batch tidak menyisakan
		// session basi terhadap baris yang sudah ter-upsert)
		sess, err := s.Sessions.EnsureSession(tx, req.FormID, raterID, req.SubjectID, req.ResponseType)
		if err != nil {
			return err
		}
		if err := s.Sessions.Recompute(tx, sess); err != nil {
			return err
		}

		// submit supervisor → materialisasi baris final + tandai supervisor
		// sudah memfinalkan
		if req.ResponseType == responseModel.ResponseTypeSupervisor {
			if err := s.Reconciler.MaterializeFinals(tx, req.FormID, *req.SubjectID, ratedElementIDs); err != nil {
				return err
			}
			if err := s.Sessions.MarkSupervisorStatus(tx, sess, sessionModel.SupervisorStatusCompleted); err != nil {
				return err
			}
		}

		summary = dto.NewSessionSummary(sess)
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] SubmitRatings rater=%s form=%s: %v", raterID, req.FormID, err)
		return nil, err
	}

	return &summary, nil
}

// upsertResponse: satu baris per (rater, element, subject, type).
// Lookup + write dalam transaksi yang sama; race pada key yang sama berakhir
// last-writer-wins, dan insert ganda ditahan indeks unik NULLS NOT DISTINCT
// (lihat model.UniqueKeyIndexDDL).
func (s *RatingCaptureService) upsertResponse(tx *gorm.DB, raterID uuid.UUID, req *dto.SubmitRatingsRequest, entry dto.SubmitRatingEntry) error {
	cpr, needsTraining := ComputeCPR(entry.Criticality, entry.CompetenceLevel, entry.Frequency)

	var existing responseModel.EvaluationResponseModel
	err := tx.
		Where(`
			evaluation_response_rater_id = ?
			AND evaluation_response_element_id = ?
			AND evaluation_response_subject_id IS NOT DISTINCT FROM ?
			AND evaluation_response_type = ?
		`, raterID, entry.ElementID, req.SubjectID, req.ResponseType).
		First(&existing).Error

	switch {
	case err == nil:
		existing.EvaluationResponseCriticality = entry.Criticality
		existing.EvaluationResponseCompetenceLevel = entry.CompetenceLevel
		existing.EvaluationResponseFrequency = entry.Frequency
		existing.EvaluationResponseCPRScore = cpr
		existing.EvaluationResponseNeedsTraining = needsTraining
		if err := tx.Save(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal update rating")
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := responseModel.EvaluationResponseModel{
			EvaluationResponseFormID:          req.FormID,
			EvaluationResponseRaterID:         raterID,
			EvaluationResponseElementID:       entry.ElementID,
			EvaluationResponseSubjectID:       req.SubjectID,
			EvaluationResponseType:            req.ResponseType,
			EvaluationResponseCriticality:     entry.Criticality,
			EvaluationResponseCompetenceLevel: entry.CompetenceLevel,
			EvaluationResponseFrequency:       entry.Frequency,
			EvaluationResponseCPRScore:        cpr,
			EvaluationResponseNeedsTraining:   needsTraining,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan rating")
		}
		return nil
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca rating tersimpan")
	}
}

// loadFormElementSet: semua id elemen milik form (lewat unit).
func loadFormElementSet(tx *gorm.DB, formID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := tx.Table("competency_elements").
		Joins("JOIN competency_units ON competency_units.competency_unit_id = competency_elements.competency_element_unit_id").
		Where("competency_units.competency_unit_form_id = ?", formID).
		Pluck("competency_elements.competency_element_id", &ids).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca elemen form")
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
