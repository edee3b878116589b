package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/server/middleware"
	"github.com/AnsarMahir/doc4all-dashboard/internal/service/dashboard"
)

// DashboardHandler serves the role-scoped dashboard snapshots.
type DashboardHandler struct {
	svc    *dashboard.Service
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Doctor returns the doctor dashboard snapshot. A doctor with an
// incomplete profile gets a profile_incomplete snapshot rather than data.
func (h *DashboardHandler) Doctor(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	snap, err := h.svc.Doctor(c.Request.Context(), ident)
	if err != nil {
		h.abortSnapshot(c, "doctor", err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Dispensary returns the dispensary dashboard snapshot.
func (h *DashboardHandler) Dispensary(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	snap, err := h.svc.Dispensary(c.Request.Context(), ident)
	if err != nil {
		h.abortSnapshot(c, "dispensary", err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Patient returns the patient dashboard snapshot.
func (h *DashboardHandler) Patient(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	snap, err := h.svc.Patient(c.Request.Context(), ident)
	if err != nil {
		h.abortSnapshot(c, "patient", err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// abortSnapshot maps snapshot build errors. Fetch failures degrade inside
// the snapshot, so the only errors reaching here are cancelled requests.
func (h *DashboardHandler) abortSnapshot(c *gin.Context, role string, err error) {
	if errors.Is(err, context.Canceled) {
		// Client went away; nothing useful to write.
		c.Status(http.StatusRequestTimeout)
		return
	}

	h.logger.Error("failed building dashboard snapshot", zap.String("role", role), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
}
