package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"quadro-expedicao.com/quadro-expedicao/internal/constants"
	dto "quadro-expedicao.com/quadro-expedicao/internal/data_models"
	"quadro-expedicao.com/quadro-expedicao/internal/http/validators"
	"quadro-expedicao.com/quadro-expedicao/internal/services"
)

func (h *Handler) CreatePicking(c echo.Context) error {
	var req dto.CreatePickingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreatePickingRequest(&req); err != nil {
		return err
	}

	task, err := h.pickingService.Create(c.Request().Context(), services.CreatePickingInput{
		MovementNumber: req.MovementNumber,
		ClientName:     req.ClientName,
		WorkerNames:    req.WorkerNames,
		SellerName:     req.SellerName,
		PieceCount:     req.PieceCount,
		EditorName:     req.EditorName,
	})
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) EditPicking(c echo.Context) error {
	var req dto.EditPickingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.pickingService.Edit(c.Request().Context(), c.Param("id"), services.EditPickingInput{
		MovementNumber: req.MovementNumber,
		ClientName:     req.ClientName,
		WorkerNames:    req.WorkerNames,
		SellerName:     req.SellerName,
		PieceCount:     req.PieceCount,
		VerifierName:   req.VerifierName,
		EditorName:     req.EditorName,
	})
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) AssignVerifier(c echo.Context) error {
	var req dto.AssignVerifierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.pickingService.AssignVerifier(c.Request().Context(), c.Param("id"), req.VerifierName, req.EditorName)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) SetPickingStatus(c echo.Context) error {
	var req dto.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.pickingService.SetStatus(c.Request().Context(), c.Param("id"), constants.PickingStatus(req.Status), req.EditorName)
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) AddPickingNote(c echo.Context) error {
	var req dto.AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.pickingService.AddNote(c.Request().Context(), c.Param("id"), req.Text, req.Author, constants.Role(req.Role))
	if err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) DeletePicking(c echo.Context) error {
	var req dto.ActorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.pickingService.Delete(c.Request().Context(), c.Param("id"), req.EditorName); err != nil {
		return translateError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

func (h *Handler) GetPicking(c echo.Context) error {
	task, err := h.pickingService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListPickings(c echo.Context) error {
	tasks, err := h.pickingService.List(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":      len(tasks),
		"separacoes": tasks,
	})
}

func (h *Handler) GetQueue(c echo.Context) error {
	names, err := h.queueService.ListQueue(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, names)
}

func (h *Handler) SetQueue(c echo.Context) error {
	var names []string
	if err := c.Bind(&names); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "O corpo da requisição deve ser uma lista de nomes.")
	}

	if err := h.queueService.SetActiveSet(c.Request().Context(), names); err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

func (h *Handler) WorkerStatuses(c echo.Context) error {
	statuses, err := h.queueService.WorkerStatuses(c.Request().Context())
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, statuses)
}
