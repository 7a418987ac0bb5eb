package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "quadro-expedicao.com/quadro-expedicao/internal/data_models"
)

func ValidateCreatePickingRequest(r *dto.CreatePickingRequest) error {
	if r.MovementNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "numero_movimentacao is required")
	}
	if len(r.WorkerNames) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "separadores_nomes is required")
	}
	if r.SellerName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "vendedor_nome is required")
	}
	return nil
}
