// internal/api/handler/ledger.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"minivenmo/internal/api/types"
	"minivenmo/internal/domain"
	"minivenmo/internal/service"
	"minivenmo/internal/util"
)

// DefaultTimeout bounds request handling in the router.
const DefaultTimeout = 10 * time.Second

const defaultHistoryLimit = 20

// LedgerHandler handles HTTP requests for the payment ledger.
type LedgerHandler struct {
	service service.LedgerService
	logger  *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(svc service.LedgerService, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *LedgerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *LedgerHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case util.IsError(err, util.ErrDuplicateUsername):
		statusCode = http.StatusConflict
		message = "Username already taken"
	case util.IsError(err, domain.ErrNonPositiveAmount),
		util.IsError(err, domain.ErrSelfPayment):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, domain.ErrPayment):
		// Missing card or a declined charge: the funding source failed.
		statusCode = http.StatusPaymentRequired
		message = err.Error()
	case util.IsError(err, domain.ErrUsername),
		util.IsError(err, domain.ErrCreditCard),
		util.IsError(err, domain.ErrInvalidOperation),
		util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Username       string          `json:"username"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CardNumber     string          `json:"card_number"`
}

// CreateUser handles user registration.
// POST /users
func (h *LedgerHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Username, req.InitialBalance, req.CardNumber)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"username": user.Username(),
		"balance":  user.Balance(),
		"has_card": user.CreditCardNumber() != "",
	})
}

// GetBalance handles the balance query.
// GET /users/{username}/balance
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.service.GetUser(r.Context(), username)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"username": user.Username(),
		"balance":  user.Balance(),
	})
}

// PayRequest represents the request body for a payment.
type PayRequest struct {
	Actor  string          `json:"actor"`
	Target string          `json:"target"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// Pay handles a payment between two users.
// POST /payments
func (h *LedgerHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.Actor == "" || req.Target == "" {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	payment, err := h.service.Pay(r.Context(), req.Actor, req.Target, req.Amount, req.Note)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Payment successful",
		"payment_id": payment.ID,
		"actor":      payment.Actor.Username(),
		"target":     payment.Target.Username(),
		"amount":     payment.Amount,
		"note":       payment.Note,
		"funding":    payment.Funding,
	})
}

// AddFriendRequest represents the request body for a friend addition.
type AddFriendRequest struct {
	Friend string `json:"friend"`
}

// AddFriend handles a friend addition.
// POST /users/{username}/friends
func (h *LedgerHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req AddFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.Friend == "" {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	if err := h.service.AddFriend(r.Context(), username, req.Friend); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Friend added",
	})
}

// GetFeed handles the feed query.
// GET /users/{username}/feed
func (h *LedgerHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	feed, err := h.service.RetrieveFeed(r.Context(), username)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"username": username,
		"feed":     feed,
	})
}

// GetPaymentHistory handles the archive history query.
// GET /users/{username}/payments?limit=&offset=
func (h *LedgerHandler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		offset = n
	}

	records, totalCount, err := h.service.PaymentHistory(r.Context(), username, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.PaymentRecord]{
		Data:       records,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}
