package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bakeryhq/orderdesk/internal/middleware"
)

// AccessHandler trades the desk PIN for a bearer token
type AccessHandler struct {
	pinHash []byte
	secret  []byte
	ttl     time.Duration
	log     *slog.Logger
	now     func() time.Time
}

// NewAccessHandler takes the bcrypt hash of the PIN, never the PIN itself
func NewAccessHandler(pinHash, secret []byte, ttl time.Duration, log *slog.Logger) *AccessHandler {
	return &AccessHandler{pinHash: pinHash, secret: secret, ttl: ttl, log: log, now: time.Now}
}

// HashPIN prepares a PIN for NewAccessHandler
func HashPIN(pin string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
}

type unlockRequest struct {
	PIN string `json:"pin"`
}

type unlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Unlock handles POST /api/access/unlock
func (h *AccessHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if bcrypt.CompareHashAndPassword(h.pinHash, []byte(req.PIN)) != nil {
		h.log.Warn("unlock attempt with wrong pin", "remote_addr", r.RemoteAddr)
		WriteError(w, http.StatusUnauthorized, "Código incorrecto", h.log)
		return
	}

	token, expires, err := middleware.IssueToken(h.secret, h.ttl, h.now())
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, unlockResponse{Token: token, ExpiresAt: expires.UTC()}, h.log)
}
