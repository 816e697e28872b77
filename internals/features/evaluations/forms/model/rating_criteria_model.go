package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tiga dimensi rating. Rentang numeriknya tetap (lihat service CPR);
// scale_options hanya label untuk tampilan.
const (
	DimensionCriticality     = "criticality"
	DimensionCompetenceLevel = "competence_level"
	DimensionFrequency       = "frequency"
)

// RatingDimensions urut sesuai urutan tampil di form.
var RatingDimensions = []string{
	DimensionCriticality,
	DimensionCompetenceLevel,
	DimensionFrequency,
}

func IsValidDimension(d string) bool {
	switch d {
	case DimensionCriticality, DimensionCompetenceLevel, DimensionFrequency:
		return true
	default:
		return false
	}
}

// RatingCriteriaModel: label & opsi skala per dimensi per form.
type RatingCriteriaModel struct {
	RatingCriteriaID           uuid.UUID      `gorm:"column:rating_criteria_id;type:uuid;primaryKey" json:"rating_criteria_id"`
	RatingCriteriaFormID       uuid.UUID      `gorm:"column:rating_criteria_form_id;type:uuid;not null;index" json:"rating_criteria_form_id"`
	RatingCriteriaDimension    string         `gorm:"column:rating_criteria_dimension;type:varchar(32);not null" json:"rating_criteria_dimension"`
	RatingCriteriaLabel        string         `gorm:"column:rating_criteria_label;size:255;not null" json:"rating_criteria_label"`
	RatingCriteriaScaleOptions datatypes.JSON `gorm:"column:rating_criteria_scale_options" json:"rating_criteria_scale_options,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RatingCriteriaModel) TableName() string {
	return "rating_criterias"
}

func (m *RatingCriteriaModel) BeforeCreate(_ *gorm.DB) error {
	if m.RatingCriteriaID == uuid.Nil {
		m.RatingCriteriaID = uuid.New()
	}
	return nil
}

// RatingScaleDescriptionModel: teks penjelasan nilai skala 1..N per dimensi.
type RatingScaleDescriptionModel struct {
	RatingScaleDescriptionID         uuid.UUID `gorm:"column:rating_scale_description_id;type:uuid;primaryKey" json:"rating_scale_description_id"`
	RatingScaleDescriptionFormID     uuid.UUID `gorm:"column:rating_scale_description_form_id;type:uuid;not null;index" json:"rating_scale_description_form_id"`
	RatingScaleDescriptionDimension  string    `gorm:"column:rating_scale_description_dimension;type:varchar(32);not null" json:"rating_scale_description_dimension"`
	RatingScaleDescriptionScaleValue int       `gorm:"column:rating_scale_description_scale_value;not null" json:"rating_scale_description_scale_value"`
	RatingScaleDescriptionText       string    `gorm:"column:rating_scale_description_text;type:text;not null" json:"rating_scale_description_text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RatingScaleDescriptionModel) TableName() string {
	return "rating_scale_descriptions"
}

func (m *RatingScaleDescriptionModel) BeforeCreate(_ *gorm.DB) error {
	if m.RatingScaleDescriptionID == uuid.Nil {
		m.RatingScaleDescriptionID = uuid.New()
	}
	return nil
}
