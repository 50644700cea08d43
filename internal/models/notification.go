package models

import "time"

type (
	NotificationPriority string // Приоритет уведомления
	NotificationRule     string // Правило, породившее уведомление
	ActorType            string // Тип получателя уведомлений
)

const (
	LowPriority    NotificationPriority = "low"
	MediumPriority NotificationPriority = "medium"
	HighPriority   NotificationPriority = "high"

	NewTenderRule           NotificationRule = "new-tender"           // Тендер опубликован менее суток назад
	DeadlineApproachingRule NotificationRule = "deadline-approaching" // До дедлайна осталось не больше трёх дней
	BiddingClosedRule       NotificationRule = "bidding-closed"       // Приём закрыт, предложение не подано
	BidOutcomeRule          NotificationRule = "bid-outcome"          // Результат по поданному предложению

	VendorActor     ActorType = "Vendor"     // Поставщик
	DepartmentActor ActorType = "Department" // Подразделение института, создавшее тендер
)

// Notification - производное уведомление, никогда не сохраняется.
// ID детерминирован ("{rule}-{entityId}"), повторный прогон правил не
// порождает дубликатов для уже увиденных событий.
type Notification struct {
	ID        string               `json:"id"`
	Rule      NotificationRule     `json:"rule"`
	TenderID  string               `json:"tenderId"`
	Message   string               `json:"message"`
	Priority  NotificationPriority `json:"priority"`
	IsRead    bool                 `json:"isRead"`
	CreatedAt time.Time            `json:"createdAt"`
}
