package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quadro-expedicao.com/quadro-expedicao/internal/audit"
	apperrors "quadro-expedicao.com/quadro-expedicao/internal/errors"
	"quadro-expedicao.com/quadro-expedicao/internal/services"
)

type Handler struct {
	pickingService      *services.PickingService
	verificationService *services.VerificationService
	queueService        *services.QueueService
	trashService        *services.TrashService
	auditRecorder       *audit.Recorder
}

func NewHandler(
	pickingService *services.PickingService,
	verificationService *services.VerificationService,
	queueService *services.QueueService,
	trashService *services.TrashService,
	auditRecorder *audit.Recorder,
) *Handler {
	return &Handler{
		pickingService:      pickingService,
		verificationService: verificationService,
		queueService:        queueService,
		trashService:        trashService,
		auditRecorder:       auditRecorder,
	}
}

// translateError maps a service error onto the legacy status codes
// (400/403/404/409); anything unrecognized is a 500.
func translateError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func (h *Handler) ListTrash(c echo.Context) error {
	items, err := h.trashService.List(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) RestoreTrashItem(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		EditorName string `json:"editor_nome"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.trashService.Restore(c.Request().Context(), id, req.EditorName); err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

func (h *Handler) ListLogs(c echo.Context) error {
	entries, err := h.auditRecorder.List(c.Request().Context(), c.Param("tipo"), c.Param("id"))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, entries)
}
