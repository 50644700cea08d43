package services

import (
	"time"

	"github.com/senyabanana/etender-service/internal/models"
)

// ResolvePhase вычисляет фазу тендера из его полей и текущего времени.
// Чистая функция без побочных эффектов: фаза нигде не хранится и
// пересчитывается при каждом вызове, потому что зависит от часов.
// Awarded имеет приоритет независимо от дедлайна; момент now == deadline
// считается закрытым.
func ResolvePhase(tender *models.Tender, now time.Time) models.TenderPhase {
	switch tender.Status {
	case models.AwardedTender:
		return models.AwardedPhase
	case models.DraftTender:
		return models.PendingPhase
	}
	if now.Before(tender.SubmissionDeadline) {
		return models.OpenPhase
	}
	return models.ClosedPhase
}

// CalcTimeRemaining возвращает структурированный остаток времени до дедлайна.
// Используется только для отображения: решения о мутациях всегда принимаются
// повторным вызовом ResolvePhase на стороне сервера.
func CalcTimeRemaining(tender *models.Tender, now time.Time) models.TimeRemaining {
	remaining := tender.SubmissionDeadline.Sub(now)
	if remaining <= 0 {
		return models.TimeRemaining{IsClosed: true}
	}

	days := int(remaining / (24 * time.Hour))
	remaining -= time.Duration(days) * 24 * time.Hour
	hours := int(remaining / time.Hour)
	remaining -= time.Duration(hours) * time.Hour
	minutes := int(remaining / time.Minute)

	return models.TimeRemaining{
		Days:    days,
		Hours:   hours,
		Minutes: minutes,
	}
}
