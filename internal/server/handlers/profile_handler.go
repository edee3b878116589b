package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
	"github.com/AnsarMahir/doc4all-dashboard/internal/server/middleware"
	"github.com/AnsarMahir/doc4all-dashboard/internal/service/profile"
)

// ProfileHandler serves the profile-completion endpoints.
type ProfileHandler struct {
	svc    *profile.Service
	logger *zap.Logger
}

// NewProfileHandler constructs the HTTP handler adapter.
func NewProfileHandler(svc *profile.Service, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{svc: svc, logger: logger}
}

// CompleteDoctor accepts the doctor profile-completion form.
func (h *ProfileHandler) CompleteDoctor(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var sub models.DoctorProfileSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		h.logger.Warn("invalid doctor profile payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.CompleteDoctor(c.Request.Context(), ident, sub); err != nil {
		h.abortSubmission(c, "doctor", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isComplete": true})
}

// CompleteDispensary accepts the dispensary profile-completion form.
func (h *ProfileHandler) CompleteDispensary(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var sub models.DispensaryProfileSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		h.logger.Warn("invalid dispensary profile payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.CompleteDispensary(c.Request.Context(), ident, sub); err != nil {
		h.abortSubmission(c, "dispensary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isComplete": true})
}

func (h *ProfileHandler) abortSubmission(c *gin.Context, role string, err error) {
	var vErr *profile.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": vErr.Fields})
		return
	}

	h.logger.Error("profile submission failed", zap.String("role", role), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "unable to submit profile"})
}
