package models

import "time"

type BidStatus string // Статус предложения

const (
	SubmittedBid    BidStatus = "Submitted"    // Предложение подано
	UnderReviewBid  BidStatus = "UnderReview"  // Предложение на рассмотрении
	AwardedBid      BidStatus = "Awarded"      // Предложение выбрано победителем
	DisqualifiedBid BidStatus = "Disqualified" // Предложение отклонено после выбора победителя
)

// Bid представляет модель предложения.
type Bid struct {
	ID             string    `json:"id"`
	TenderID       string    `json:"tenderId"`
	VendorID       string    `json:"vendorId"`
	BidAmount      float64   `json:"bidAmount"`
	Status         BidStatus `json:"status"`
	SubmissionDate time.Time `json:"submissionDate"`
}

// BidRequest представляет структуру запроса для подачи предложения.
type BidRequest struct {
	TenderID  string  `json:"tenderId"`
	VendorID  string  `json:"vendorId"`
	BidAmount float64 `json:"bidAmount"`
}
