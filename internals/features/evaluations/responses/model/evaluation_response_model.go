package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// response_type: himpunan tertutup, tangani exhaustive di tiap pemakai.
const (
	ResponseTypeSelf       = "self"       // instruktur menilai diri sendiri (subject NULL)
	ResponseTypeSupervisor = "supervisor" // supervisor menilai instruktur tertentu
	ResponseTypeFinal      = "final"      // baris hasil rekonsiliasi (derived, bukan input manusia)
)

func IsSubmittableResponseType(t string) bool {
	return t == ResponseTypeSelf || t == ResponseTypeSupervisor
}

// EvaluationResponseModel: satu penilaian rater atas satu elemen untuk satu
// subject. Unik pada (rater, element, subject, type) — submit ulang meng-update
// baris yang sama, tidak menambah baris.
//
// Sub-rating nullable sampai ketiganya terisi; cpr_score ikut NULL selama
// belum lengkap (bukan 0).
type EvaluationResponseModel struct {
	EvaluationResponseID        uuid.UUID  `gorm:"column:evaluation_response_id;type:uuid;primaryKey" json:"evaluation_response_id"`
	EvaluationResponseFormID    uuid.UUID  `gorm:"column:evaluation_response_form_id;type:uuid;not null;index" json:"evaluation_response_form_id"`
	EvaluationResponseRaterID   uuid.UUID  `gorm:"column:evaluation_response_rater_id;type:uuid;not null;index" json:"evaluation_response_rater_id"`
	EvaluationResponseElementID uuid.UUID  `gorm:"column:evaluation_response_element_id;type:uuid;not null" json:"evaluation_response_element_id"`
	EvaluationResponseSubjectID *uuid.UUID `gorm:"column:evaluation_response_subject_id;type:uuid" json:"evaluation_response_subject_id,omitempty"`
	EvaluationResponseType      string     `gorm:"column:evaluation_response_type;type:varchar(16);not null" json:"evaluation_response_type"`

	EvaluationResponseCriticality     *int `gorm:"column:evaluation_response_criticality" json:"evaluation_response_criticality,omitempty"`
	EvaluationResponseCompetenceLevel *int `gorm:"column:evaluation_response_competence_level" json:"evaluation_response_competence_level,omitempty"`
	EvaluationResponseFrequency       *int `gorm:"column:evaluation_response_frequency" json:"evaluation_response_frequency,omitempty"`

	EvaluationResponseCPRScore      *float64 `gorm:"column:evaluation_response_cpr_score" json:"evaluation_response_cpr_score,omitempty"`
	EvaluationResponseNeedsTraining bool     `gorm:"column:evaluation_response_needs_training;not null;default:false" json:"evaluation_response_needs_training"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EvaluationResponseModel) TableName() string {
	return "evaluation_responses"
}

// ID diisi aplikasi sebelum insert, tidak bergantung default DB.
func (m *EvaluationResponseModel) BeforeCreate(_ *gorm.DB) error {
	if m.EvaluationResponseID == uuid.Nil {
		m.EvaluationResponseID = uuid.New()
	}
	return nil
}

// Indeks unik kunci response dibuat lewat DDL mentah, bukan tag gorm:
// subject_id nullable dan postgres menganggap NULL saling berbeda, sehingga
// indeks unik biasa tidak menjaga baris self/final (subject NULL).
// NULLS NOT DISTINCT (postgres 15+) membuat NULL dihitung sama.
const UniqueKeyIndexDDL = `
CREATE UNIQUE INDEX IF NOT EXISTS uq_evaluation_responses_key
ON evaluation_responses (
	evaluation_response_rater_id,
	evaluation_response_element_id,
	evaluation_response_subject_id,
	evaluation_response_type
) NULLS NOT DISTINCT`

// IsComplete: ketiga sub-rating sudah terisi.
func (m *EvaluationResponseModel) IsComplete() bool {
	return m.EvaluationResponseCriticality != nil &&
		m.EvaluationResponseCompetenceLevel != nil &&
		m.EvaluationResponseFrequency != nil
}
