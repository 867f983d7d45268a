package handler

import (
	"github.com/labstack/echo/v4"

	"voltbay/internal/usecase"
	"voltbay/pkg/response"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

// GetProduct resolves a listing; the contact-seller flow reads sellerId from it.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{
		"product": product,
	})
}
