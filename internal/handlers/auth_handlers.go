package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/middleware"
	"github.com/top4/calldrivers/internal/models"
	"github.com/top4/calldrivers/internal/service"
)

// UserDirectory is the slice of the user repository the auth flow
// needs. *repository.UserRepository satisfies it.
type UserDirectory interface {
	GetOrCreate(ctx context.Context, mobile string) (*models.User, error)
	MarkVerified(ctx context.Context, mobile string) error
}

type AuthHandlers struct {
	otpService *service.OTPService
	sessions   *service.SessionService
	userRepo   UserDirectory
	debug      bool
	logger     *logrus.Logger
}

func NewAuthHandlers(
	otpService *service.OTPService,
	sessions *service.SessionService,
	userRepo UserDirectory,
	debug bool,
	logger *logrus.Logger,
) *AuthHandlers {
	return &AuthHandlers{
		otpService: otpService,
		sessions:   sessions,
		userRepo:   userRepo,
		debug:      debug,
		logger:     logger,
	}
}

type sendOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`

	// Legacy field names; see normalizeAliases.
	MobileNo string `json:"mobileno" validate:"omitempty"`
	Phone    string `json:"phone" validate:"omitempty"`
}

func (r *sendOTPRequest) normalizeAliases() {
	if r.Mobile == "" {
		if r.MobileNo != "" {
			r.Mobile = r.MobileNo
		} else if r.Phone != "" {
			r.Mobile = r.Phone
		}
	}
	r.Mobile = strings.TrimSpace(r.Mobile)
}

type sendOTPResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	OTP      string `json:"otp,omitempty"`
	Provider string `json:"provider"`
}

func (h *AuthHandlers) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	result, err := h.otpService.Send(r.Context(), req.Mobile)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	resp := sendOTPResponse{
		Status:   "success",
		Message:  result.Message,
		Provider: result.Provider,
	}
	if h.debug {
		resp.OTP = result.Code
	}

	respondWithJSON(w, http.StatusOK, resp)
}

type verifyOTPRequest struct {
	Mobile      string `json:"mobile" validate:"required"`
	OTP         string `json:"otp" validate:"required,min=4,max=8"`
	DeviceToken string `json:"devicetoken" validate:"omitempty"`

	// Legacy field names; see normalizeAliases.
	MobileNo string `json:"mobileno" validate:"omitempty"`
	Phone    string `json:"phone" validate:"omitempty"`
	OTPUpper string `json:"OTP" validate:"omitempty"`
}

func (r *verifyOTPRequest) normalizeAliases() {
	if r.Mobile == "" {
		if r.MobileNo != "" {
			r.Mobile = r.MobileNo
		} else if r.Phone != "" {
			r.Mobile = r.Phone
		}
	}
	if r.OTP == "" && r.OTPUpper != "" {
		r.OTP = r.OTPUpper
	}
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.OTP = strings.TrimSpace(r.OTP)
}

type verifyOTPResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	User    models.AuthUser `json:"user"`
}

func (h *AuthHandlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	ok, err := h.otpService.Verify(r.Context(), req.Mobile, req.OTP)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}

	user, err := h.userRepo.GetOrCreate(r.Context(), req.Mobile)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get or create user")
		respondWithError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	if !user.Verified {
		if err := h.userRepo.MarkVerified(r.Context(), req.Mobile); err != nil {
			h.logger.WithError(err).Error("Failed to mark user verified")
			respondWithError(w, http.StatusInternalServerError, "failed to update user")
			return
		}
		user.Verified = true
	}

	token, err := h.sessions.CreateToken(user.ToAuthUser())
	if err != nil {
		h.logger.WithError(err).Error("Failed to create session token")
		respondWithError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, h.sessions.AuthCookie(token))
	respondWithJSON(w, http.StatusOK, verifyOTPResponse{
		Status:  "success",
		Message: "OTP verified",
		User:    user.ToAuthUser(),
	})
}

type meResponse struct {
	Status string          `json:"status"`
	User   models.AuthUser `json:"user"`
}

func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		// Me is also mounted unauthenticated so the frontend can probe
		// for a session without triggering an error page.
		user = h.sessions.CurrentUser(r)
	}
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	respondWithJSON(w, http.StatusOK, meResponse{Status: "success", User: *user})
}

func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearAuthCookie())
	respondWithJSON(w, http.StatusOK, envelope{Status: "success", Message: "Logged out successfully"})
}
