package service

import "github.com/gofiber/fiber/v2"

// CPR (Competency Priority Rating) = criticality × competence × frequency.
// Ambang 21 adalah konstanta domain, bukan konfigurasi per form.
const TrainingNeedThreshold = 21.0

// Rentang skala tetap per dimensi (1–3 / 1–4 / 1–3).
const (
	CriticalityMin = 1
	CriticalityMax = 3

	CompetenceLevelMin = 1
	CompetenceLevelMax = 4

	FrequencyMin = 1
	FrequencyMax = 3
)

// ComputeCPR menghitung skor CPR dan flag needs_training.
// Selama ada sub-rating yang belum terisi, hasilnya nil (bukan 0 atau skor
// parsial) dan needs_training false.
func ComputeCPR(criticality, competenceLevel, frequency *int) (*float64, bool) {
	if criticality == nil || competenceLevel == nil || frequency == nil {
		return nil, false
	}
	score := float64(*criticality * *competenceLevel * *frequency)
	return &score, score < TrainingNeedThreshold
}

// ValidateSubRatings memeriksa rentang tiap sub-rating yang terisi.
// Nilai nil sah (pengisian parsial); nilai di luar rentang → 400.
func ValidateSubRatings(criticality, competenceLevel, frequency *int) error {
	if criticality != nil && (*criticality < CriticalityMin || *criticality > CriticalityMax) {
		return fiber.NewError(fiber.StatusBadRequest, "Nilai criticality harus 1-3")
	}
	if competenceLevel != nil && (*competenceLevel < CompetenceLevelMin || *competenceLevel > CompetenceLevelMax) {
		return fiber.NewError(fiber.StatusBadRequest, "Nilai competence_level harus 1-4")
	}
	if frequency != nil && (*frequency < FrequencyMin || *frequency > FrequencyMax) {
		return fiber.NewError(fiber.StatusBadRequest, "Nilai frequency harus 1-3")
	}
	return nil
}
