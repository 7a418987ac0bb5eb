package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	dto "quadro-expedicao.com/quadro-expedicao/internal/data_models"
	"quadro-expedicao.com/quadro-expedicao/internal/http/validators"
	"quadro-expedicao.com/quadro-expedicao/internal/services"
)

func (h *Handler) CreateReceipt(c echo.Context) error {
	var req dto.CreateReceiptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateReceiptRequest(&req); err != nil {
		return err
	}

	task, err := h.verificationService.CreateReceipt(c.Request().Context(), services.CreateReceiptInput{
		InvoiceNumber: req.InvoiceNumber,
		SupplierName:  req.SupplierName,
		CarrierName:   req.CarrierName,
		VolumeCount:   req.VolumeCount,
		ReceivedBy:    req.ReceivedBy,
		EditorName:    req.EditorName,
	})
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) CreateStreetReceipt(c echo.Context) error {
	var req dto.CreateStreetReceiptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateStreetReceiptRequest(&req); err != nil {
		return err
	}

	task, err := h.verificationService.CreateStreetReceipt(c.Request().Context(), services.CreateStreetReceiptInput{
		InvoiceNumber:    req.InvoiceNumber,
		SupplierName:     req.SupplierName,
		VolumeCount:      req.VolumeCount,
		SellerName:       req.SellerName,
		ReceivedBy:       req.ReceivedBy,
		PendingSupplier:  req.PendingSupplier,
		PendingAmendment: req.PendingAmendment,
		Note:             req.Note,
		EditorName:       req.EditorName,
	})
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) StartVerification(c echo.Context) error {
	var req dto.StartVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.verificationService.StartVerification(c.Request().Context(), c.Param("id"), req.Verifiers, req.EditorName)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) FinalizeVerification(c echo.Context) error {
	var req dto.FinalizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.verificationService.Finalize(c.Request().Context(), c.Param("id"),
		req.PendingSupplier, req.PendingAmendment, req.Note, req.EditorName)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) RequestAmendmentLater(c echo.Context) error {
	var req dto.NoteActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.verificationService.RequestAmendmentLater(c.Request().Context(), c.Param("id"), req.Note, req.EditorName)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ResolvePendingItem(c echo.Context) error {
	var req dto.ResolvePendingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.verificationService.ResolvePendingItem(c.Request().Context(), c.Param("id"),
		constants.Role(req.Role), req.Note, req.EditorName)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ReopenVerification(c echo.Context) error {
	var req dto.ReopenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.verificationService.Reopen(c.Request().Context(), c.Param("id"),
		constants.Role(req.Role), req.Reason, req.EditorName)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) AddVerificationNote(c echo.Context) error {
	var req dto.AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.verificationService.AddNote(c.Request().Context(), c.Param("id"), req.Text, req.Author, constants.Role(req.Role))
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) DeleteVerification(c echo.Context) error {
	var req dto.ActorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.verificationService.Delete(c.Request().Context(), c.Param("id"), req.EditorName); err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

func (h *Handler) GetVerification(c echo.Context) error {
	task, err := h.verificationService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListActiveVerifications(c echo.Context) error {
	tasks, err := h.verificationService.ListActive(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListPendingAndResolved(c echo.Context) error {
	tasks, err := h.verificationService.ListPendingAndResolved(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListRecentReceipts(c echo.Context) error {
	tasks, err := h.verificationService.ListRecent(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}
