package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/activity-recommender/internal/model"
	"github.com/vzahanych/activity-recommender/internal/server/utils"
	"github.com/vzahanych/activity-recommender/internal/service"
	"github.com/vzahanych/activity-recommender/pkg/telemetry"
)

type Recommender interface {
	Recommend(ctx context.Context, city string) (*model.ActivityResponse, error)
}

type ActivitiesHandler struct {
	recommender Recommender
	logger      *zap.Logger
	tele        *telemetry.Telemetry
}

func NewActivitiesHandler(rec Recommender, logger *zap.Logger, tele *telemetry.Telemetry) *ActivitiesHandler {
	return &ActivitiesHandler{
		recommender: rec,
		logger:      logger,
		tele:        tele,
	}
}

func (h *ActivitiesHandler) GetActivities(c *gin.Context) {
	ctx := utils.RequestContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req model.CityQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		reqLogger.Warn("Invalid request body", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Detail:    "Invalid request body: " + err.Error(),
			ErrorCode: errorCodeInvalidRequest,
		})
		return
	}

	if err := model.Validate(req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Detail:    utils.ValidationDetail(err),
			ErrorCode: errorCodeInvalidRequest,
		})
		return
	}

	reqLogger.Info("Processing activities request", zap.String("city", req.City))

	resp, err := h.recommender.Recommend(ctx, req.City)
	if err != nil {
		status, detail := errorResponse(err)

		reqLogger.Error("Failed to recommend activities",
			zap.String("city", req.City),
			zap.Int("status", status),
			zap.Error(err))
		h.tele.RecordError(ctx, err, map[string]interface{}{"city": req.City})
		_ = c.Error(err)

		c.JSON(status, ErrorResponse{Detail: detail})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// errorResponse maps a recommendation failure onto a status and detail.
// Weather errors keep their own status; suggestion failures are always 500.
func errorResponse(err error) (int, string) {
	var weatherErr *service.WeatherProviderError
	var suggestionErr *service.SuggestionError

	switch {
	case errors.As(err, &weatherErr):
		return weatherErr.HTTPStatus(), weatherErr.Message
	case errors.As(err, &suggestionErr):
		return http.StatusInternalServerError, "Error generating activity suggestions: " + suggestionErr.Message
	default:
		return http.StatusInternalServerError, "An unexpected error occurred: " + err.Error()
	}
}
