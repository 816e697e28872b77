package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionTypeSelf       = "self"
	SessionTypeSupervisor = "supervisor"
)

const (
	SessionStatusNotStarted = "not_started"
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

// supervisor_status: sinyal kasar "supervisor sudah bertindak atau belum",
// di-set eksplisit oleh rating capture, bukan diturunkan dari persentase.
const (
	SupervisorStatusNotEvaluated = "not_evaluated"
	SupervisorStatusInProgress   = "in_progress"
	SupervisorStatusCompleted    = "completed"
)

func IsValidSessionType(t string) bool {
	return t == SessionTypeSelf || t == SessionTypeSupervisor
}

// EvaluationSessionModel: progres satu rater mengisi satu form untuk satu
// subject. Unik pada (form, rater, subject, session_type). Dibuat lazy saat
// submit pertama; status & persentase selalu hasil hitung ulang dari baris
// response yang tersimpan (idempotent), bukan counter inkremental.
type EvaluationSessionModel struct {
	EvaluationSessionID        uuid.UUID  `gorm:"column:evaluation_session_id;type:uuid;primaryKey" json:"evaluation_session_id"`
	EvaluationSessionFormID    uuid.UUID  `gorm:"column:evaluation_session_form_id;type:uuid;not null;index" json:"evaluation_session_form_id"`
	EvaluationSessionRaterID   uuid.UUID  `gorm:"column:evaluation_session_rater_id;type:uuid;not null" json:"evaluation_session_rater_id"`
	EvaluationSessionSubjectID *uuid.UUID `gorm:"column:evaluation_session_subject_id;type:uuid" json:"evaluation_session_subject_id,omitempty"`
	EvaluationSessionType      string     `gorm:"column:evaluation_session_type;type:varchar(16);not null" json:"evaluation_session_type"`

	EvaluationSessionTotalElements        int     `gorm:"column:evaluation_session_total_elements;not null;default:0" json:"evaluation_session_total_elements"`
	EvaluationSessionCompletedElements    int     `gorm:"column:evaluation_session_completed_elements;not null;default:0" json:"evaluation_session_completed_elements"`
	EvaluationSessionCompletionPercentage float64 `gorm:"column:evaluation_session_completion_percentage;type:numeric(5,2);not null;default:0" json:"evaluation_session_completion_percentage"`

	EvaluationSessionStatus           string `gorm:"column:evaluation_session_status;type:varchar(16);not null;default:'not_started'" json:"evaluation_session_status"`
	EvaluationSessionSupervisorStatus string `gorm:"column:evaluation_session_supervisor_status;type:varchar(16);not null;default:'not_evaluated'" json:"evaluation_session_supervisor_status"`

	EvaluationSessionStartedAt   *time.Time `gorm:"column:evaluation_session_started_at" json:"evaluation_session_started_at,omitempty"`
	EvaluationSessionCompletedAt *time.Time `gorm:"column:evaluation_session_completed_at" json:"evaluation_session_completed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EvaluationSessionModel) TableName() string {
	return "evaluation_sessions"
}

// ID diisi aplikasi sebelum insert, tidak bergantung default DB.
func (m *EvaluationSessionModel) BeforeCreate(_ *gorm.DB) error {
	if m.EvaluationSessionID == uuid.Nil {
		m.EvaluationSessionID = uuid.New()
	}
	return nil
}

// Indeks unik kunci session, NULLS NOT DISTINCT supaya baris self
// (subject NULL) juga tunduk keunikan (postgres menganggap NULL saling
// berbeda di indeks unik biasa).
const UniqueKeyIndexDDL = `
CREATE UNIQUE INDEX IF NOT EXISTS uq_evaluation_sessions_key
ON evaluation_sessions (
	evaluation_session_form_id,
	evaluation_session_rater_id,
	evaluation_session_subject_id,
	evaluation_session_type
) NULLS NOT DISTINCT`
