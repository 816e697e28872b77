package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formModel "kompetensiku_backend/internals/features/evaluations/forms/model"
	"kompetensiku_backend/internals/features/evaluations/responses/dto"
	responseModel "kompetensiku_backend/internals/features/evaluations/responses/model"
	userService "kompetensiku_backend/internals/features/users/user/service"
)

// Sumber nilai final per elemen.
const (
	SourceSupervisor = "supervisor"
	SourceInstructor = "instructor"
	SourceNone       = "none"
)

// ReconciliationService menurunkan nilai "final" per elemen dengan prioritas
// supervisor: keberadaan baris supervisor menang mutlak, bukan rata-rata,
// terlepas dari kelengkapan maupun urutan submit.
type ReconciliationService struct {
	Users *userService.UserResolverService
}

func NewReconciliationService() *ReconciliationService {
	return &ReconciliationService{Users: userService.NewUserResolverService()}
}

// cellFromResponse menyalin sub-rating + skor dari satu baris response.
func cellFromResponse(r *responseModel.EvaluationResponseModel) dto.RatingCell {
	return dto.RatingCell{
		Criticality:     r.EvaluationResponseCriticality,
		CompetenceLevel: r.EvaluationResponseCompetenceLevel,
		Frequency:       r.EvaluationResponseFrequency,
		CPRScore:        r.EvaluationResponseCPRScore,
		NeedsTraining:   r.EvaluationResponseNeedsTraining,
	}
}

// ResolveFinal: aturan rekonsiliasi per elemen.
// supervisor ada → nilai supervisor; hanya self → nilai self;
// tidak ada keduanya → cpr 0, needs_training false.
func ResolveFinal(self, supervisor *responseModel.EvaluationResponseModel) (dto.RatingCell, string) {
	if supervisor != nil {
		return cellFromResponse(supervisor), SourceSupervisor
	}
	if self != nil {
		return cellFromResponse(self), SourceInstructor
	}
	zero := 0.0
	return dto.RatingCell{CPRScore: &zero, NeedsTraining: false}, SourceNone
}

// AverageCPR: rata-rata aritmetika cpr_score; baris dengan skor NULL tidak
// ikut pembilang maupun penyebut. Tidak ada skor sama sekali → nil.
func AverageCPR(rows []responseModel.EvaluationResponseModel) *float64 {
	var sum float64
	var n int
	for i := range rows {
		if rows[i].EvaluationResponseCPRScore != nil {
			sum += *rows[i].EvaluationResponseCPRScore
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// ResolveAggregateCPR: aturan prioritas level agregat — supervisor punya
// skor apa pun → rata-rata supervisor; kalau tidak, rata-rata instruktur.
// Sengaja terpisah dari aturan per-elemen (dua aturan independen).
func ResolveAggregateCPR(selfAvg, supervisorAvg *float64) *float64 {
	if supervisorAvg != nil {
		return supervisorAvg
	}
	return selfAvg
}

// loadRawRows mengambil baris self & supervisor mentah untuk satu
// (form, instruktur), di-map per elemen.
func (s *ReconciliationService) loadRawRows(db *gorm.DB, formID, instructorID uuid.UUID) (selfByElem, supByElem map[uuid.UUID]*responseModel.EvaluationResponseModel, selfRows, supRows []responseModel.EvaluationResponseModel, err error) {
	if err = db.
		Where(`
			evaluation_response_form_id = ?
			AND evaluation_response_rater_id = ?
			AND evaluation_response_subject_id IS NULL
			AND evaluation_response_type = ?
		`, formID, instructorID, responseModel.ResponseTypeSelf).
		Find(&selfRows).Error; err != nil {
		return nil, nil, nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca rating self")
	}

	if err = db.
		Where(`
			evaluation_response_form_id = ?
			AND evaluation_response_subject_id = ?
			AND evaluation_response_type = ?
		`, formID, instructorID, responseModel.ResponseTypeSupervisor).
		Find(&supRows).Error; err != nil {
		return nil, nil, nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca rating supervisor")
	}

	selfByElem = make(map[uuid.UUID]*responseModel.EvaluationResponseModel, len(selfRows))
	for i := range selfRows {
		selfByElem[selfRows[i].EvaluationResponseElementID] = &selfRows[i]
	}
	supByElem = make(map[uuid.UUID]*responseModel.EvaluationResponseModel, len(supRows))
	for i := range supRows {
		supByElem[supRows[i].EvaluationResponseElementID] = &supRows[i]
	}
	return selfByElem, supByElem, selfRows, supRows, nil
}

// FinalView menghitung tampilan final on-the-fly dari baris mentah —
// tidak bergantung pada baris `final` yang termaterialisasi, tapi hasil
// keduanya harus identik (idempotensi materialisasi).
func (s *ReconciliationService) FinalView(db *gorm.DB, formID, instructorID uuid.UUID) (*dto.FinalViewResponse, error) {
	var form formModel.EvaluationFormModel
	if err := db.
		Preload("Units", func(q *gorm.DB) *gorm.DB {
			return q.Order("competency_unit_order_index ASC")
		}).
		Preload("Units.Elements", func(q *gorm.DB) *gorm.DB {
			return q.Order("competency_element_order_index ASC")
		}).
		Where("evaluation_form_id = ?", formID).
		First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Form evaluasi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca form")
	}

	selfByElem, supByElem, selfRows, supRows, err := s.loadRawRows(db, formID, instructorID)
	if err != nil {
		return nil, err
	}

	out := &dto.FinalViewResponse{
		FormID:    form.EvaluationFormID,
		FormTitle: form.EvaluationFormTitle,
		Units:     make([]dto.FinalUnitGroup, 0, len(form.Units)),
	}

	for _, unit := range form.Units {
		group := dto.FinalUnitGroup{
			UnitID:     unit.CompetencyUnitID,
			Name:       unit.CompetencyUnitName,
			OrderIndex: unit.CompetencyUnitOrderIndex,
			Elements:   make([]dto.FinalElementResult, 0, len(unit.Elements)),
		}
		for _, elem := range unit.Elements {
			selfRow := selfByElem[elem.CompetencyElementID]
			supRow := supByElem[elem.CompetencyElementID]
			finalCell, source := ResolveFinal(selfRow, supRow)

			res := dto.FinalElementResult{
				ElementID:  elem.CompetencyElementID,
				Task:       elem.CompetencyElementTask,
				OrderIndex: elem.CompetencyElementOrderIndex,
				Final:      finalCell,
				Source:     source,
			}
			if selfRow != nil {
				cell := cellFromResponse(selfRow)
				res.Self = &cell
			}
			if supRow != nil {
				cell := cellFromResponse(supRow)
				res.Supervisor = &cell
			}
			group.Elements = append(group.Elements, res)
		}
		out.Units = append(out.Units, group)
	}

	// rollup rata-rata
	out.SelfAverageCPR = AverageCPR(selfRows)
	out.SupervisorAverageCPR = AverageCPR(supRows)
	out.FinalAverageCPR = ResolveAggregateCPR(out.SelfAverageCPR, out.SupervisorAverageCPR)

	// identitas untuk tampilan (nama/email); kegagalan resolve bukan fatal
	if users, uerr := s.Users.ResolveMany(db, []uuid.UUID{instructorID}); uerr == nil {
		if u, ok := users[instructorID]; ok {
			out.Instructor = &u
		}
	}

	return out, nil
}

// MaterializeFinals meng-upsert baris `final` (rater = instruktur,
// subject NULL) untuk elemen-elemen tsb. Dipanggil di dalam transaksi
// submit supervisor supaya layar hasil instruktur tinggal baca.
func (s *ReconciliationService) MaterializeFinals(tx *gorm.DB, formID, instructorID uuid.UUID, elementIDs []uuid.UUID) error {
	selfByElem, supByElem, _, _, err := s.loadRawRows(tx, formID, instructorID)
	if err != nil {
		return err
	}

	for _, elemID := range elementIDs {
		finalCell, _ := ResolveFinal(selfByElem[elemID], supByElem[elemID])

		var existing responseModel.EvaluationResponseModel
		ferr := tx.
			Where(`
				evaluation_response_rater_id = ?
				AND evaluation_response_element_id = ?
				AND evaluation_response_subject_id IS NULL
				AND evaluation_response_type = ?
			`, instructorID, elemID, responseModel.ResponseTypeFinal).
			First(&existing).Error

		switch {
		case ferr == nil:
			existing.EvaluationResponseCriticality = finalCell.Criticality
			existing.EvaluationResponseCompetenceLevel = finalCell.CompetenceLevel
			existing.EvaluationResponseFrequency = finalCell.Frequency
			existing.EvaluationResponseCPRScore = finalCell.CPRScore
			existing.EvaluationResponseNeedsTraining = finalCell.NeedsTraining
			if err := tx.Save(&existing).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal update baris final")
			}
		case errors.Is(ferr, gorm.ErrRecordNotFound):
			row := responseModel.EvaluationResponseModel{
				EvaluationResponseFormID:          formID,
				EvaluationResponseRaterID:         instructorID,
				EvaluationResponseElementID:       elemID,
				EvaluationResponseSubjectID:       nil,
				EvaluationResponseType:            responseModel.ResponseTypeFinal,
				EvaluationResponseCriticality:     finalCell.Criticality,
				EvaluationResponseCompetenceLevel: finalCell.CompetenceLevel,
				EvaluationResponseFrequency:       finalCell.Frequency,
				EvaluationResponseCPRScore:        finalCell.CPRScore,
				EvaluationResponseNeedsTraining:   finalCell.NeedsTraining,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat baris final")
			}
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca baris final")
		}
	}
	return nil
}
