package handlers

import (
	"errors"
	"net/http"

	"booktrack/internal/models"
	"booktrack/internal/services"

	"github.com/gin-gonic/gin"
)

// ReminderHandler exposes the reminder service over HTTP
type ReminderHandler struct {
	service *services.ReminderService
	worker  *services.ReminderWorker
}

func NewReminderHandler(service *services.ReminderService, worker *services.ReminderWorker) *ReminderHandler {
	return &ReminderHandler{service: service, worker: worker}
}

// Upsert handles POST /reminders: create a reminder or update the
// existing one with the same identity key.
func (h *ReminderHandler) Upsert(c *gin.Context) {
	var payload models.ReminderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	if _, err := h.service.Upsert(payload); err != nil {
		if errors.Is(err, services.ErrMissingIdentity) {
			handleError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to save reminder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Complete handles POST /reminders/complete: deactivate every record
// matching the given company number or name.
func (h *ReminderHandler) Complete(c *gin.Context) {
	var req models.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	if err := h.service.Complete(req); err != nil {
		if errors.Is(err, services.ErrMissingIdentity) {
			handleError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to update reminders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// List handles GET /reminders and returns the full collection in file order.
func (h *ReminderHandler) List(c *gin.Context) {
	records := h.service.List()
	if records == nil {
		records = []models.ReminderRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"count":     len(records),
		"reminders": records,
	})
}

// SendNow handles GET /reminders/send-now: one synchronous sweep, for
// operational testing.
func (h *ReminderHandler) SendNow(c *gin.Context) {
	sent, err := h.worker.RunSweep()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Reminder sweep failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "sent": sent})
}
