package dto

import (
	"github.com/google/uuid"

	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
	userService "kompetensiku_backend/internals/features/users/user/service"
)

/* ===============================
   Request
=================================*/

// Satu entri penilaian elemen. Sub-rating boleh sebagian (nil = belum diisi);
// entri yang ketiganya kosong di-skip oleh service.
type SubmitRatingEntry struct {
	ElementID       uuid.UUID `json:"element_id" validate:"required"`
	Criticality     *int      `json:"criticality,omitempty"`
	CompetenceLevel *int      `json:"competence_level,omitempty"`
	Frequency       *int      `json:"frequency,omitempty"`
}

type SubmitRatingsRequest struct {
	FormID       uuid.UUID           `json:"form_id" validate:"required"`
	SubjectID    *uuid.UUID          `json:"subject_id,omitempty"`
	ResponseType string              `json:"response_type" validate:"required,oneof=self supervisor"`
	Ratings      []SubmitRatingEntry `json:"ratings" validate:"required,min=1,dive"`
}

/* ===============================
   Session summary (dikembalikan setelah submit)
=================================*/

type SessionSummaryResponse struct {
	SessionID            uuid.UUID  `json:"session_id"`
	FormID               uuid.UUID  `json:"form_id"`
	SubjectID            *uuid.UUID `json:"subject_id,omitempty"`
	SessionType          string     `json:"session_type"`
	TotalElements        int        `json:"total_elements"`
	CompletedElements    int        `json:"completed_elements"`
	CompletionPercentage float64    `json:"completion_percentage"`
	Status               string     `json:"status"`
	SupervisorStatus     string     `json:"supervisor_status"`
}

func NewSessionSummary(m *sessionModel.EvaluationSessionModel) SessionSummaryResponse {
	return SessionSummaryResponse{
		SessionID:            m.EvaluationSessionID,
		FormID:               m.EvaluationSessionFormID,
		SubjectID:            m.EvaluationSessionSubjectID,
		SessionType:          m.EvaluationSessionType,
		TotalElements:        m.EvaluationSessionTotalElements,
		CompletedElements:    m.EvaluationSessionCompletedElements,
		CompletionPercentage: m.EvaluationSessionCompletionPercentage,
		Status:               m.EvaluationSessionStatus,
		SupervisorStatus:     m.EvaluationSessionSupervisorStatus,
	}
}

/* ===============================
   Final view (layar perbandingan / ekspor)
=================================*/

// RatingCell: satu sisi penilaian (self / supervisor / final).
type RatingCell struct {
	Criticality     *int     `json:"criticality,omitempty"`
	CompetenceLevel *int     `json:"competence_level,omitempty"`
	Frequency       *int     `json:"frequency,omitempty"`
	CPRScore        *float64 `json:"cpr_score,omitempty"`
	NeedsTraining   bool     `json:"needs_training"`
}

type FinalElementResult struct {
	ElementID  uuid.UUID   `json:"element_id"`
	Task       string      `json:"task"`
	OrderIndex int         `json:"order_index"`
	Self       *RatingCell `json:"self,omitempty"`
	Supervisor *RatingCell `json:"supervisor,omitempty"`
	Final      RatingCell  `json:"final"`
	Source     string      `json:"source"` // supervisor | instructor | none
}

type FinalUnitGroup struct {
	UnitID     uuid.UUID            `json:"unit_id"`
	Name       string               `json:"name"`
	OrderIndex int                  `json:"order_index"`
	Elements   []FinalElementResult `json:"elements"`
}

type FinalViewResponse struct {
	FormID     uuid.UUID             `json:"form_id"`
	FormTitle  string                `json:"form_title"`
	Instructor *userService.UserLite `json:"instructor,omitempty"`

	Units []FinalUnitGroup `json:"units"`

	// Rollup rata-rata CPR per tipe rater. Aturan prioritas agregat berdiri
	// sendiri dari aturan per-elemen (lihat FinalAverageCPR).
	SelfAverageCPR       *float64 `json:"self_average_cpr,omitempty"`
	SupervisorAverageCPR *float64 `json:"supervisor_average_cpr,omitempty"`
	FinalAverageCPR      *float64 `json:"final_average_cpr,omitempty"`
}
