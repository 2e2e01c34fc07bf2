package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"society-ledger/internal/domain/session"
	"society-ledger/internal/transport/httpserver/handler"
	authmw "society-ledger/internal/transport/httpserver/middleware"
	"society-ledger/pkg/logger"
)

func NewRouter(handlers *handler.Handlers, sessions session.Store, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:5173"}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/apartments", handlers.RegisterApartment)
		r.Post("/apartments/join", handlers.JoinApartment)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewSessionAuth(sessions, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/auth/logout", handlers.Logout)
			r.Get("/auth/me", handlers.Me)

			r.Post("/invites", handlers.GenerateInvite)
			r.Get("/invites", handlers.ListInvites)
			r.Get("/residents", handlers.ListResidents)

			r.Get("/maintenance/status", handlers.MaintenanceStatus)
			r.Post("/maintenance/payments", handlers.RecordPayment)
			r.Post("/maintenance/payments/{record_id}/verify", handlers.VerifyPayment)
			r.Post("/maintenance/confirmations", handlers.ConfirmPayment)

			r.Post("/contributions", handlers.RecordContribution)
			r.Post("/expenses", handlers.AddExpense)
			r.Get("/expenses", handlers.ExpenseSummary)
			r.Get("/balance", handlers.Balance)

			r.Get("/payment-info", handlers.GetPaymentInfo)
			r.Put("/payment-info", handlers.SavePaymentInfo)

			r.Get("/announcements", handlers.ListAnnouncements)
			r.Post("/announcements", handlers.PostAnnouncement)

			r.Post("/messages", handlers.SendMessage)
			r.Get("/messages/{partner_id}", handlers.Conversation)

			r.Get("/reports/maintenance", handlers.MaintenanceReport)
		})
	})

	return r
}
