package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/http/handlers/common"
	"github.com/prokvartiru/review-backend/internal/service"
)

type AddressHandler struct {
	addresses *service.AddressService
}

func NewAddressHandler(addresses *service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// List GET /addresses/remembered
func (h *AddressHandler) List(c *gin.Context) {
	city := c.Query("city")
	limit := common.ParseInt64Query(c, "limit", 20)

	addresses, err := h.addresses.List(c.Request.Context(), city, limit)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// Save POST /addresses/remembered
func (h *AddressHandler) Save(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	result, err := h.addresses.Save(c.Request.Context(), req)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"address": result.Address})
}

// Popular GET /addresses/popular
func (h *AddressHandler) Popular(c *gin.Context) {
	limit := common.ParseInt64Query(c, "limit", 10)

	addresses, err := h.addresses.Popular(c.Request.Context(), limit)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// Search GET /addresses/search
func (h *AddressHandler) Search(c *gin.Context) {
	q := c.Query("q")
	limit := common.ParseInt64Query(c, "limit", 20)

	addresses, err := h.addresses.Search(c.Request.Context(), q, limit)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}
