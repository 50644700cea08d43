package models

import "time"

type (
	TenderStatus string // Статус тендера (хранится в базе)
	TenderPhase  string // Фаза тендера (вычисляется, не хранится)
)

const (
	DraftTender     TenderStatus = "Draft"     // Тендер создан, не опубликован
	PublishedTender TenderStatus = "Published" // Тендер опубликован
	AwardedTender   TenderStatus = "Awarded"   // Победитель выбран, терминальный статус

	PendingPhase TenderPhase = "Pending" // Тендер ещё не опубликован
	OpenPhase    TenderPhase = "Open"    // Приём предложений открыт
	ClosedPhase  TenderPhase = "Closed"  // Дедлайн прошёл, приём закрыт
	AwardedPhase TenderPhase = "Awarded" // Победитель выбран
)

// TenderDocument - метаданные документа тендера, ядро их не интерпретирует.
type TenderDocument struct {
	DocID        string `json:"docId"`
	DocumentName string `json:"documentName"`
}

// Tender представляет модель тендера.
type Tender struct {
	ID                 string           `json:"id"`
	TenderNumber       string           `json:"tenderNumber"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	EstimatedCost      float64          `json:"estimatedCost"`
	Status             TenderStatus     `json:"status"`
	PublishDate        time.Time        `json:"publishDate"`
	SubmissionDeadline time.Time        `json:"submissionDeadline"`
	DepartmentID       string           `json:"departmentId"`
	CategoryID         string           `json:"categoryId"`
	Documents          []TenderDocument `json:"documents"`
	CreatedAt          time.Time        `json:"createdAt"`
	Bids               []Bid            `json:"bids,omitempty"`
}

// TenderRequest представляет структуру запроса для создания тендера.
type TenderRequest struct {
	TenderNumber       string           `json:"tenderNumber"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	EstimatedCost      float64          `json:"estimatedCost"`
	SubmissionDeadline time.Time        `json:"submissionDeadline"`
	DepartmentID       string           `json:"departmentId"`
	CategoryID         string           `json:"categoryId"`
	Documents          []TenderDocument `json:"documents"`
}

// TimeRemaining - остаток времени до дедлайна подачи предложений.
type TimeRemaining struct {
	Days     int  `json:"days"`
	Hours    int  `json:"hours"`
	Minutes  int  `json:"minutes"`
	IsClosed bool `json:"isClosed"`
}

// TenderPhaseResponse - ответ на запрос фазы тендера.
type TenderPhaseResponse struct {
	TenderID      string        `json:"tenderId"`
	Phase         TenderPhase   `json:"phase"`
	TimeRemaining TimeRemaining `json:"timeRemaining"`
}
