package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "quadro-expedicao.com/quadro-expedicao/internal/data_models"
)

func ValidateCreateReceiptRequest(r *dto.CreateReceiptRequest) error {
	if r.InvoiceNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "numero_nota_fiscal is required")
	}
	if r.ReceivedBy == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "recebido_por is required")
	}
	return nil
}

func ValidateCreateStreetReceiptRequest(r *dto.CreateStreetReceiptRequest) error {
	if r.InvoiceNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "numero_nota_fiscal is required")
	}
	if r.SellerName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "vendedor_nome is required")
	}
	return nil
}
