package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	responseDTO "kompetensiku_backend/internals/features/evaluations/responses/dto"
	responseService "kompetensiku_backend/internals/features/evaluations/responses/service"
	helper "kompetensiku_backend/internals/helpers"
)

type EvaluationResponseController struct {
	DB         *gorm.DB
	Capture    *responseService.RatingCaptureService
	Reconciler *responseService.ReconciliationService
}

func NewEvaluationResponseController(db *gorm.DB) *EvaluationResponseController {
	return &EvaluationResponseController{
		DB:         db,
		Capture:    responseService.NewRatingCaptureService(),
		Reconciler: responseService.NewReconciliationService(),
	}
}

// 📩 SubmitRatings menyimpan satu batch penilaian (self/supervisor) secara
// transaksional dan mengembalikan ringkasan session yang sudah ter-update
// di response yang sama (tidak ada proses async).
// POST /api/u/evaluation-responses
func (ctrl *EvaluationResponseController) SubmitRatings(c *fiber.Ctx) error {
	raterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req responseDTO.SubmitRatingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	summary, err := ctrl.Capture.SubmitRatings(ctrl.DB, raterID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Penilaian berhasil disimpan", summary)
}

// 📊 GetFinalView: tampilan final per elemen (self vs supervisor vs final)
// untuk satu instruktur, dihitung on-the-fly dari baris mentah.
// Dipakai layar perbandingan supervisor, detail admin, dan data ekspor PDF.
// GET /api/u/evaluation-forms/:id/final-view/:instructor_id
func (ctrl *EvaluationResponseController) GetFinalView(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID form tidak valid")
	}
	instructorID, err := uuid.Parse(c.Params("instructor_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID instruktur tidak valid")
	}

	view, err := ctrl.Reconciler.FinalView(ctrl.DB, formID, instructorID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Hasil evaluasi final", view)
}

// 🙋 GetMyFinalView: instruktur melihat hasil rekonsiliasi dirinya sendiri.
// GET /api/u/evaluation-forms/:id/my-results
func (ctrl *EvaluationResponseController) GetMyFinalView(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	formID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID form tidak valid")
	}

	view, err := ctrl.Reconciler.FinalView(ctrl.DB, formID, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Hasil evaluasi saya", view)
}
