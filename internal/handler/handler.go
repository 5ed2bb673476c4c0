package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/guidewell/guidewell-server/internal/models"
	"github.com/guidewell/guidewell-server/internal/repository"
	"github.com/guidewell/guidewell-server/internal/service"
	"github.com/guidewell/guidewell-server/internal/strategy"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateLinkToken handles POST /plaid/link/token/create
func (h *Handler) CreateLinkToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	token, err := h.svc.CreateLinkToken(r.Context(), req.UserID)
	if err != nil {
		http.Error(w, "Failed to create link token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"link_token": token})
}

// ExchangePublicToken handles POST /plaid/item/public_token/exchange
func (h *Handler) ExchangePublicToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PublicToken string `json:"public_token"`
		UserID      string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PublicToken == "" || req.UserID == "" {
		http.Error(w, "public_token and userId are required", http.StatusBadRequest)
		return
	}

	itemID, err := h.svc.ExchangePublicToken(r.Context(), req.PublicToken, req.UserID)
	if err != nil {
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"item_id": itemID})
}

// GetAccounts handles GET /plaid/accounts
func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	accounts, err := h.svc.GetAccounts(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoLinkedItem) {
			http.Error(w, "No linked item found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch accounts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.Account{"accounts": accounts})
}

// GetGoals handles GET /goals
func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.GetGoals(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoLinkedItem) {
			http.Error(w, "No linked item found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to derive goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetPresets handles GET /strategies/presets
func (h *Handler) GetPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]models.StrategyPreset{"presets": strategy.Presets()})
}

// CalculateStrategy handles POST /strategies/calculate
func (h *Handler) CalculateStrategy(w http.ResponseWriter, r *http.Request) {
	var config models.StrategyConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, narrative, err := h.svc.CalculateStrategy(config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result":      result,
		"narrative":   narrative,
		"riskWarning": strategy.GenerateRiskWarning(config.RiskLevel),
	})
}

// CreateManualAccount handles POST /accounts/manual
func (h *Handler) CreateManualAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var params service.ManualAccountParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.svc.CreateManualAccount(userID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// ImportStatement handles POST /accounts/import
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Failed to read statement", http.StatusBadRequest)
		return
	}

	accounts, err := h.svc.ImportStatement(userID, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string][]models.Account{"accounts": accounts})
}

// EmailScenarioSummary handles POST /strategies/email
func (h *Handler) EmailScenarioSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var config models.StrategyConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.EmailScenarioSummary(userID, config); err != nil {
		http.Error(w, "Failed to send summary", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
