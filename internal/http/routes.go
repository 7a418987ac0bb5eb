package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "quadro-expedicao.com/quadro-expedicao/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	sep := e.Group("/api/separacoes")
	sep.POST("", h.CreatePicking)
	sep.GET("", h.ListPickings)
	sep.GET("/fila-separadores", h.GetQueue)
	sep.PUT("/fila-separadores", h.SetQueue)
	sep.GET("/status-separadores", h.WorkerStatuses)
	sep.GET("/:id", h.GetPicking)
	sep.PUT("/:id", h.EditPicking)
	sep.DELETE("/:id", h.DeletePicking)
	sep.PUT("/:id/conferente", h.AssignVerifier)
	sep.PUT("/:id/status", h.SetPickingStatus)
	sep.POST("/:id/observacao", h.AddPickingNote)

	conf := e.Group("/api/conferencias")
	conf.POST("/recebimento", h.CreateReceipt)
	conf.POST("/recebimento-rua", h.CreateStreetReceipt)
	conf.GET("/ativas", h.ListActiveVerifications)
	conf.GET("/pendentes-e-resolvidas", h.ListPendingAndResolved)
	conf.GET("/recentes", h.ListRecentReceipts)
	conf.GET("/:id", h.GetVerification)
	conf.DELETE("/:id", h.DeleteVerification)
	conf.PUT("/:id/iniciar", h.StartVerification)
	conf.PUT("/:id/finalizar", h.FinalizeVerification)
	conf.PUT("/:id/solicitar-alteracao", h.RequestAmendmentLater)
	conf.PUT("/:id/resolver-item", h.ResolvePendingItem)
	conf.PUT("/:id/reabrir", h.ReopenVerification)
	conf.POST("/:id/observacao", h.AddVerificationNote)

	e.GET("/api/lixeira", h.ListTrash)
	e.POST("/api/lixeira/restaurar/:id", h.RestoreTrashItem)
	e.GET("/api/logs/:tipo/:id", h.ListLogs)
}
