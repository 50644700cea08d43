package router

import (
	"net/http"

	"github.com/senyabanana/etender-service/internal/handlers"
)

func InitRoutes(tenderHandler *handlers.TenderHandler, bidHandler *handlers.BidHandler, notificationHandler *handlers.NotificationHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)
	mux.HandleFunc("/api/tenders", tenderHandler.GetTenders)
	mux.HandleFunc("/api/tenders/new", tenderHandler.CreateTender)
	mux.HandleFunc("GET /api/tenders/{tenderId}", tenderHandler.GetTender)
	mux.HandleFunc("GET /api/tenders/{tenderId}/phase", tenderHandler.GetTenderPhase)
	mux.HandleFunc("PUT /api/tenders/{tenderId}/publish", tenderHandler.PublishTender)
	mux.HandleFunc("PUT /api/tenders/{tenderId}/award/{bidId}", tenderHandler.AwardBid)

	mux.HandleFunc("/api/bids/new", bidHandler.CreateBid)
	mux.HandleFunc("/api/bids/my", bidHandler.GetVendorBids)
	mux.HandleFunc("GET /api/bids/{tenderId}/list", bidHandler.GetTenderBids)

	mux.HandleFunc("/api/notifications", notificationHandler.GetNotifications)

	return mux
}
