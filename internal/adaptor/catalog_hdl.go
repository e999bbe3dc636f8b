package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"bizportal/internal/dto/request"
	"bizportal/internal/dto/response"
	"bizportal/internal/usecase"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetProducts handles GET /products?category=
func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.handleServiceError(w, err, "list products")
		return
	}

	utils.ResponseSuccess(w, "success", products)
}

// Buy handles POST /buy
func (h *CatalogHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req request.BuyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	sale, err := h.service.Purchase(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "buy")
		return
	}

	username, _ := utils.GetUsernameFromContext(r.Context())
	h.log.Info("Purchase recorded",
		zap.String("username", username),
		zap.Int64("product_id", req.ProductID),
		zap.Int64("sale_id", sale.ID),
	)

	utils.ResponseSuccess(w, "Purchase successful", response.PurchaseResponse{
		Message: "Purchase successful",
		Sale:    *sale,
	})
}

func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Product not found")

	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
