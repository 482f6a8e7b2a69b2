package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
	"github.com/KwakuBoohene/ackontant/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to platform and user exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.PUT("", h.upsertPlatformRate)
		rates.GET("", h.listPlatformRates)
		rates.GET("/resolve", h.resolveRate)
		rates.POST("/overrides", h.createUserRate)
		rates.GET("/overrides", h.listUserRates)
		rates.DELETE("/overrides/:rateID", h.deactivateUserRate)
	}
}

// upsertPlatformRate godoc
// @Summary Create or replace a platform exchange rate
// @Description Upserts the platform rate for a currency pair on a specific date
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertExchangeRateRequest true "Rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /exchange-rates [put]
func (h *exchangeRateHandler) upsertPlatformRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertPlatformRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.UpsertPlatformRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or both currencies do not exist"})
		} else {
			logger.Error("Failed to upsert platform rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save exchange rate"})
		}
		return
	}

	logger.Info("Platform rate upserted",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listPlatformRates godoc
// @Summary List platform rates for a pair
// @Description Retrieves platform rates for a currency pair, newest first
// @Tags exchange-rates
// @Produce  json
// @Param   from query string true "From currency code"
// @Param   to query string true "To currency code"
// @Param   limit query int false "Maximum number of rates"
// @Success 200 {array} dto.ExchangeRateResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listPlatformRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := strings.ToUpper(c.Query("from"))
	toCode := strings.ToUpper(c.Query("to"))
	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameters 'from' and 'to' must be 3-letter currency codes"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rates, err := h.rateService.ListPlatformRates(c.Request.Context(), fromCode, toCode, limit)
	if err != nil {
		logger.Error("Failed to list platform rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// resolveRate godoc
// @Summary Resolve the applicable rate for a pair and date
// @Description Returns the rate the ledger would use: an active user override wins over the platform rate for that date
// @Tags exchange-rates
// @Produce  json
// @Param   from query string true "From currency code"
// @Param   to query string true "To currency code"
// @Param   date query string false "Date (RFC 3339 or YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ResolvedRateResponse
// @Failure 404 {object} map[string]string "No rate available"
// @Security BearerAuth
// @Router /exchange-rates/resolve [get]
func (h *exchangeRateHandler) resolveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fromCode := strings.ToUpper(c.Query("from"))
	toCode := strings.ToUpper(c.Query("to"))
	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameters 'from' and 'to' must be 3-letter currency codes"})
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + err.Error()})
			return
		}
		date = parsed
	}

	resolved, err := h.rateService.ResolveRate(c.Request.Context(), userID, fromCode, toCode, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate available for this pair and date"})
		} else {
			logger.Error("Failed to resolve rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToResolvedRateResponse(fromCode, toCode, resolved))
}

// createUserRate godoc
// @Summary Create a user override rate
// @Description Creates a per-user override; any previous active override for the same pair and date is deactivated
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateUserExchangeRateRequest true "Override details"
// @Success 201 {object} dto.UserExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /exchange-rates/overrides [post]
func (h *exchangeRateHandler) createUserRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateUserRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.CreateUserRate(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or both currencies do not exist"})
		} else {
			logger.Error("Failed to create user rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create override rate"})
		}
		return
	}

	logger.Info("User override rate created", slog.String("user_exchange_rate_id", rate.UserExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToUserExchangeRateResponse(rate))
}

// listUserRates godoc
// @Summary List the user's override rates
// @Description Retrieves the user's override rates, newest first
// @Tags exchange-rates
// @Produce  json
// @Param   limit query int false "Maximum number of rates"
// @Success 200 {array} dto.UserExchangeRateResponse
// @Security BearerAuth
// @Router /exchange-rates/overrides [get]
func (h *exchangeRateHandler) listUserRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rates, err := h.rateService.ListUserRates(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to list user rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list override rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserExchangeRateResponse(rates))
}

// deactivateUserRate godoc
// @Summary Deactivate a user override rate
// @Description Marks an override inactive, restoring platform rate fallback for its pair and date
// @Tags exchange-rates
// @Produce  json
// @Param   rateID path string true "User Exchange Rate ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Override not found"
// @Failure 409 {object} map[string]string "Override already inactive"
// @Security BearerAuth
// @Router /exchange-rates/overrides/{rateID} [delete]
func (h *exchangeRateHandler) deactivateUserRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.rateService.DeactivateUserRate(c.Request.Context(), userID, rateID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Override rate not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "Override rate is already inactive"})
		} else {
			logger.Error("Failed to deactivate user rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate override rate"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// parseDateParam accepts either an RFC 3339 timestamp or a bare calendar date.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
