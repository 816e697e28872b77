package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EvaluationFormModel: kuesioner kompetensi.
// Satu form memiliki unit kompetensi berurut, tepat tiga rating criteria
// (satu per dimensi) dan deskripsi skala per dimensi.
type EvaluationFormModel struct {
	EvaluationFormID        uuid.UUID `gorm:"column:evaluation_form_id;type:uuid;primaryKey" json:"evaluation_form_id"`
	EvaluationFormTitle     string    `gorm:"column:evaluation_form_title;size:255;not null" json:"evaluation_form_title"`
	EvaluationFormOffice    *string   `gorm:"column:evaluation_form_office;size:255" json:"evaluation_form_office,omitempty"`
	EvaluationFormDivision  *string   `gorm:"column:evaluation_form_division;size:255" json:"evaluation_form_division,omitempty"`
	EvaluationFormPeriod    *string   `gorm:"column:evaluation_form_period;size:100" json:"evaluation_form_period,omitempty"`
	EvaluationFormIsActive  bool      `gorm:"column:evaluation_form_is_active;not null;default:true" json:"evaluation_form_is_active"`
	EvaluationFormCreatedBy uuid.UUID `gorm:"column:evaluation_form_created_by;type:uuid;not null;index" json:"evaluation_form_created_by"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Units             []CompetencyUnitModel         `gorm:"foreignKey:CompetencyUnitFormID;references:EvaluationFormID" json:"units,omitempty"`
	Criterias         []RatingCriteriaModel         `gorm:"foreignKey:RatingCriteriaFormID;references:EvaluationFormID" json:"criterias,omitempty"`
	ScaleDescriptions []RatingScaleDescriptionModel `gorm:"foreignKey:RatingScaleDescriptionFormID;references:EvaluationFormID" json:"scale_descriptions,omitempty"`
}

func (EvaluationFormModel) TableName() string {
	return "evaluation_forms"
}

// ID semua model form diisi aplikasi sebelum insert (termasuk children
// nested saat create), tidak bergantung default DB.
func (m *EvaluationFormModel) BeforeCreate(_ *gorm.DB) error {
	if m.EvaluationFormID == uuid.Nil {
		m.EvaluationFormID = uuid.New()
	}
	return nil
}

// CompetencyUnitModel: pengelompokan bernama di dalam form, berurut.
type CompetencyUnitModel struct {
	CompetencyUnitID         uuid.UUID `gorm:"column:competency_unit_id;type:uuid;primaryKey" json:"competency_unit_id"`
	CompetencyUnitFormID     uuid.UUID `gorm:"column:competency_unit_form_id;type:uuid;not null;index" json:"competency_unit_form_id"`
	CompetencyUnitName       string    `gorm:"column:competency_unit_name;size:255;not null" json:"competency_unit_name"`
	CompetencyUnitOrderIndex int       `gorm:"column:competency_unit_order_index;not null;default:0" json:"competency_unit_order_index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Elements []CompetencyElementModel `gorm:"foreignKey:CompetencyElementUnitID;references:CompetencyUnitID" json:"elements,omitempty"`
}

func (CompetencyUnitModel) TableName() string {
	return "competency_units"
}

func (m *CompetencyUnitModel) BeforeCreate(_ *gorm.DB) error {
	if m.CompetencyUnitID == uuid.Nil {
		m.CompetencyUnitID = uuid.New()
	}
	return nil
}

// CompetencyElementModel: butir terkecil yang dinilai.
// Semua baris rating menunjuk ke sini.
type CompetencyElementModel struct {
	CompetencyElementID         uuid.UUID `gorm:"column:competency_element_id;type:uuid;primaryKey" json:"competency_element_id"`
	CompetencyElementUnitID     uuid.UUID `gorm:"column:competency_element_unit_id;type:uuid;not null;index" json:"competency_element_unit_id"`
	CompetencyElementTask       string    `gorm:"column:competency_element_task;type:text;not null" json:"competency_element_task"`
	CompetencyElementOrderIndex int       `gorm:"column:competency_element_order_index;not null;default:0" json:"competency_element_order_index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CompetencyElementModel) TableName() string {
	return "competency_elements"
}

func (m *CompetencyElementModel) BeforeCreate(_ *gorm.DB) error {
	if m.CompetencyElementID == uuid.Nil {
		m.CompetencyElementID = uuid.New()
	}
	return nil
}
