package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formDTO "kompetensiku_backend/internals/features/evaluations/forms/dto"
	formModel "kompetensiku_backend/internals/features/evaluations/forms/model"
	responseModel "kompetensiku_backend/internals/features/evaluations/responses/model"
	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
	helper "kompetensiku_backend/internals/helpers"
)

type EvaluationFormController struct {
	DB *gorm.DB
}

func NewEvaluationFormController(db *gorm.DB) *EvaluationFormController {
	return &EvaluationFormController{DB: db}
}

// validasi tiap dimensi muncul tepat sekali (len=3 saja tidak cukup)
func checkCriteriaDimensions(criterias []formDTO.CreateCriteriaRequest) error {
	seen := map[string]bool{}
	for _, c := range criterias {
		if !formModel.IsValidDimension(c.Dimension) {
			return fiber.NewError(fiber.StatusBadRequest, "Dimensi criteria tidak dikenal: "+c.Dimension)
		}
		if seen[c.Dimension] {
			return fiber.NewError(fiber.StatusBadRequest, "Dimensi criteria duplikat: "+c.Dimension)
		}
		seen[c.Dimension] = true
	}
	for _, d := range formModel.RatingDimensions {
		if !seen[d] {
			return fiber.NewError(fiber.StatusBadRequest, "Dimensi criteria belum lengkap: "+d)
		}
	}
	return nil
}

// CREATE
// POST /api/a/evaluation-forms
func (h *EvaluationFormController) CreateForm(c *fiber.Ctx) error {
	creatorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req formDTO.CreateEvaluationFormRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)

	// validasi DTO (pesan per field, bukan satu string gabungan)
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := checkCriteriaDimensions(req.Criterias); err != nil {
		return err
	}

	m := req.ToModel(creatorID)
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat form evaluasi")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Form evaluasi berhasil dibuat", m)
}

// UPDATE
// PUT /api/a/evaluation-forms/:id
// Edit = hapus & buat ulang children (unit/elemen/criteria/skala) — tanpa
// versioning; rating lama tetap menunjuk elemen lama yang ikut terhapus.
func (h *EvaluationFormController) UpdateForm(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID form tidak valid")
	}

	var req formDTO.UpdateEvaluationFormRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := checkCriteriaDimensions(req.Criterias); err != nil {
		return helper.FromFiberError(c, err)
	}

	var form formModel.EvaluationFormModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("evaluation_form_id = ?", formID).
			First(&form).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Form evaluasi tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca form")
		}

		// header
		form.EvaluationFormTitle = req.Title
		form.EvaluationFormOffice = req.Office
		form.EvaluationFormDivision = req.Division
		form.EvaluationFormPeriod = req.Period
		if req.IsActive != nil {
			form.EvaluationFormIsActive = *req.IsActive
		}
		if err := tx.Save(&form).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal update form")
		}

		// hapus children lama
		if err := deleteFormChildren(tx, formID); err != nil {
			return err
		}

		// buat ulang dari payload
		units := formDTO.BuildUnits(req.Units)
		for i := range units {
			units[i].CompetencyUnitFormID = formID
		}
		if len(units) > 0 {
			if err := tx.Create(&units).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat ulang unit")
			}
		}

		criterias := formDTO.BuildCriterias(req.Criterias)
		for i := range criterias {
			criterias[i].RatingCriteriaFormID = formID
		}
		if err := tx.Create(&criterias).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat ulang criteria")
		}

		scales := formDTO.BuildScaleDescriptions(req.ScaleDescriptions)
		if len(scales) > 0 {
			for i := range scales {
				scales[i].RatingScaleDescriptionFormID = formID
			}
			if err := tx.Create(&scales).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat ulang deskripsi skala")
			}
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Form evaluasi berhasil diperbarui", form)
}

// DELETE
// DELETE /api/a/evaluation-forms/:id — cascade ke seluruh children,
// termasuk response & session (satu-satunya jalur hapus massal rating).
func (h *EvaluationFormController) DeleteForm(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID form tidak valid")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&formModel.EvaluationFormModel{}).
			Where("evaluation_form_id = ?", formID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca form")
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Form evaluasi tidak ditemukan")
		}

		if err := tx.
			Where("evaluation_response_form_id = ?", formID).
			Delete(&responseModel.EvaluationResponseModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus response")
		}
		if err := tx.
			Where("evaluation_session_form_id = ?", formID).
			Delete(&sessionModel.EvaluationSessionModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus session")
		}
		if err := deleteFormChildren(tx, formID); err != nil {
			return err
		}
		if err := tx.
			Where("evaluation_form_id = ?", formID).
			Delete(&formModel.EvaluationFormModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus form")
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "Form evaluasi berhasil dihapus", fiber.Map{
		"evaluation_form_id": formID,
	})
}

// LIST
// GET /api/evaluation-forms?active=true&page=&per_page=
func (h *EvaluationFormController) GetForms(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&formModel.EvaluationFormModel{})
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		q = q.Where("evaluation_form_is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung form")
	}

	var forms []formModel.EvaluationFormModel
	if err := q.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&forms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca form")
	}

	pagination := helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit, len(forms))
	return helper.JsonList(c, "Daftar form evaluasi", forms, pagination)
}

// DETAIL
// GET /api/evaluation-forms/:id — unit+elemen urut order_index, criteria,
// deskripsi skala (bahan layar pengisian & ekspor).
func (h *EvaluationFormController) GetFormByID(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID form tidak valid")
	}

	var form formModel.EvaluationFormModel
	if err := h.DB.
		Preload("Units", func(q *gorm.DB) *gorm.DB {
			return q.Order("competency_unit_order_index ASC")
		}).
		Preload("Units.Elements", func(q *gorm.DB) *gorm.DB {
			return q.Order("competency_element_order_index ASC")
		}).
		Preload("Criterias").
		Preload("ScaleDescriptions").
		Where("evaluation_form_id = ?", formID).
		First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Form evaluasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca form")
	}

	return helper.JsonOK(c, "Detail form evaluasi", form)
}

// deleteFormChildren: elemen (lewat unit), unit, criteria, deskripsi skala.
func deleteFormChildren(tx *gorm.DB, formID uuid.UUID) error {
	if err := tx.Exec(`
		DELETE FROM competency_elements
		WHERE competency_element_unit_id IN (
			SELECT competency_unit_id FROM competency_units
			WHERE competency_unit_form_id = ?
		)
	`, formID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus elemen")
	}
	if err := tx.
		Where("competency_unit_form_id = ?", formID).
		Delete(&formModel.CompetencyUnitModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus unit")
	}
	if err := tx.
		Where("rating_criteria_form_id = ?", formID).
		Delete(&formModel.RatingCriteriaModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus criteria")
	}
	if err := tx.
		Where("rating_scale_description_form_id = ?", formID).
		Delete(&formModel.RatingScaleDescriptionModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus deskripsi skala")
	}
	return nil
}
