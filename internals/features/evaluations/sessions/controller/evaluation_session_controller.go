package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionDTO "kompetensiku_backend/internals/features/evaluations/sessions/dto"
	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
	sessionService "kompetensiku_backend/internals/features/evaluations/sessions/service"
	helper "kompetensiku_backend/internals/helpers"
)

type EvaluationSessionController struct {
	DB      *gorm.DB
	Tracker *sessionService.SessionTrackerService
}

func NewEvaluationSessionController(db *gorm.DB) *EvaluationSessionController {
	return &EvaluationSessionController{
		DB:      db,
		Tracker: sessionService.NewSessionTrackerService(),
	}
}

// 📈 GetSessionStatus: progres pengisian milik user token.
// Session dibuat lazy saat submit pertama; kalau belum ada, laporkan
// not_started dengan total elemen dari struktur form sekarang.
// GET /api/u/evaluation-sessions/status?form_id=&session_type=&subject_id=
func (ctrl *EvaluationSessionController) GetSessionStatus(c *fiber.Ctx) error {
	raterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	formID, err := uuid.Parse(strings.TrimSpace(c.Query("form_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "form_id tidak valid")
	}

	sessionType := strings.TrimSpace(c.Query("session_type", sessionModel.SessionTypeSelf))
	if !sessionModel.IsValidSessionType(sessionType) {
		return helper.JsonError(c, fiber.StatusBadRequest, "session_type tidak dikenal")
	}

	var subjectID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("subject_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "subject_id tidak valid")
		}
		subjectID = &id
	}

	var sess sessionModel.EvaluationSessionModel
	err = ctrl.DB.
		Where(`
			evaluation_session_form_id = ?
			AND evaluation_session_rater_id = ?
			AND evaluation_session_subject_id IS NOT DISTINCT FROM ?
			AND evaluation_session_type = ?
		`, formID, raterID, subjectID, sessionType).
		First(&sess).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca session")
		}

		var total int64
		if cerr := ctrl.DB.Table("competency_elements").
			Joins("JOIN competency_units ON competency_units.competency_unit_id = competency_elements.competency_element_unit_id").
			Where("competency_units.competency_unit_form_id = ?", formID).
			Count(&total).Error; cerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung elemen form")
		}
		return helper.JsonOK(c, "Status session",
			sessionDTO.NewNotStartedStatus(formID, subjectID, sessionType, int(total)))
	}

	return helper.JsonOK(c, "Status session", sessionDTO.NewSessionStatus(&sess))
}

// 🔄 RecomputeSession: aksi admin "refresh status" — hitung ulang dari nol.
// POST /api/a/evaluation-sessions/:id/recompute
func (ctrl *EvaluationSessionController) RecomputeSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}

	sess, err := ctrl.Tracker.RecomputeByID(ctrl.DB, sessionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Session dihitung ulang", sessionDTO.NewSessionStatus(sess))
}
