package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	formModel "kompetensiku_backend/internals/features/evaluations/forms/model"
)

type CreateElementRequest struct {
	Task       string `json:"task" validate:"required"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

type CreateUnitRequest struct {
	Name       string                 `json:"name" validate:"required"`
	OrderIndex int                    `json:"order_index" validate:"min=0"`
	Elements   []CreateElementRequest `json:"elements" validate:"required,min=1,dive"`
}

type CreateCriteriaRequest struct {
	Dimension    string         `json:"dimension" validate:"required,oneof=criticality competence_level frequency"`
	Label        string         `json:"label" validate:"required"`
	ScaleOptions datatypes.JSON `json:"scale_options,omitempty"`
}

type CreateScaleDescriptionRequest struct {
	Dimension  string `json:"dimension" validate:"required,oneof=criticality competence_level frequency"`
	ScaleValue int    `json:"scale_value" validate:"required,min=1,max=4"`
	Text       string `json:"text" validate:"required"`
}

// CreateEvaluationFormRequest: grafik authoring lengkap dalam satu request.
// Tepat tiga criteria (satu per dimensi) — dicek di controller, bukan cuma len.
type CreateEvaluationFormRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Office   *string `json:"office,omitempty"`
	Division *string `json:"division,omitempty"`
	Period   *string `json:"period,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`

	Units             []CreateUnitRequest             `json:"units" validate:"required,min=1,dive"`
	Criterias         []CreateCriteriaRequest         `json:"criterias" validate:"required,len=3,dive"`
	ScaleDescriptions []CreateScaleDescriptionRequest `json:"scale_descriptions" validate:"dive"`
}

// UpdateEvaluationFormRequest: edit = hapus & buat ulang children
// (tanpa versioning), jadi bentuknya sama dengan create.
type UpdateEvaluationFormRequest = CreateEvaluationFormRequest

// ToModel membangun form + children bersarang; FK diisi GORM saat create.
func (r *CreateEvaluationFormRequest) ToModel(createdBy uuid.UUID) formModel.EvaluationFormModel {
	m := formModel.EvaluationFormModel{
		EvaluationFormTitle:     r.Title,
		EvaluationFormOffice:    r.Office,
		EvaluationFormDivision:  r.Division,
		EvaluationFormPeriod:    r.Period,
		EvaluationFormIsActive:  true,
		EvaluationFormCreatedBy: createdBy,
	}
	if r.IsActive != nil {
		m.EvaluationFormIsActive = *r.IsActive
	}

	m.Units = BuildUnits(r.Units)
	m.Criterias = BuildCriterias(r.Criterias)
	m.ScaleDescriptions = BuildScaleDescriptions(r.ScaleDescriptions)
	return m
}

func BuildUnits(in []CreateUnitRequest) []formModel.CompetencyUnitModel {
	units := make([]formModel.CompetencyUnitModel, 0, len(in))
	for _, u := range in {
		unit := formModel.CompetencyUnitModel{
			CompetencyUnitName:       u.Name,
			CompetencyUnitOrderIndex: u.OrderIndex,
		}
		for _, e := range u.Elements {
			unit.Elements = append(unit.Elements, formModel.CompetencyElementModel{
				CompetencyElementTask:       e.Task,
				CompetencyElementOrderIndex: e.OrderIndex,
			})
		}
		units = append(units, unit)
	}
	return units
}

func BuildCriterias(in []CreateCriteriaRequest) []formModel.RatingCriteriaModel {
	out := make([]formModel.RatingCriteriaModel, 0, len(in))
	for _, c := range in {
		out = append(out, formModel.RatingCriteriaModel{
			RatingCriteriaDimension:    c.Dimension,
			RatingCriteriaLabel:        c.Label,
			RatingCriteriaScaleOptions: c.ScaleOptions,
		})
	}
	return out
}

func BuildScaleDescriptions(in []CreateScaleDescriptionRequest) []formModel.RatingScaleDescriptionModel {
	out := make([]formModel.RatingScaleDescriptionModel, 0, len(in))
	for _, s := range in {
		out = append(out, formModel.RatingScaleDescriptionModel{
			RatingScaleDescriptionDimension:  s.Dimension,
			RatingScaleDescriptionScaleValue: s.ScaleValue,
			RatingScaleDescriptionText:       s.Text,
		})
	}
	return out
}
