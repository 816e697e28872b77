package dto

import (
	"github.com/google/uuid"

	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
)

type SessionStatusResponse struct {
	SessionID            *uuid.UUID `json:"session_id,omitempty"`
	FormID               uuid.UUID  `json:"form_id"`
	SubjectID            *uuid.UUID `json:"subject_id,omitempty"`
	SessionType          string     `json:"session_type"`
	Status               string     `json:"status"`
	SupervisorStatus     string     `json:"supervisor_status"`
	TotalElements        int        `json:"total_elements"`
	CompletedElements    int        `json:"completed_elements"`
	CompletionPercentage float64    `json:"completion_percentage"`
}

func NewSessionStatus(m *sessionModel.EvaluationSessionModel) SessionStatusResponse {
	return SessionStatusResponse{
		SessionID:            &m.EvaluationSessionID,
		FormID:               m.EvaluationSessionFormID,
		SubjectID:            m.EvaluationSessionSubjectID,
		SessionType:          m.EvaluationSessionType,
		Status:               m.EvaluationSessionStatus,
		SupervisorStatus:     m.EvaluationSessionSupervisorStatus,
		TotalElements:        m.EvaluationSessionTotalElements,
		CompletedElements:    m.EvaluationSessionCompletedElements,
		CompletionPercentage: m.EvaluationSessionCompletionPercentage,
	}
}

// NewNotStartedStatus: session belum pernah dibuat (lazy) — laporkan
// not_started dengan total dari struktur form saat ini.
func NewNotStartedStatus(formID uuid.UUID, subjectID *uuid.UUID, sessionType string, totalElements int) SessionStatusResponse {
	return SessionStatusResponse{
		FormID:           formID,
		SubjectID:        subjectID,
		SessionType:      sessionType,
		Status:           sessionModel.SessionStatusNotStarted,
		SupervisorStatus: sessionModel.SupervisorStatusNotEvaluated,
		TotalElements:    totalElements,
	}
}
