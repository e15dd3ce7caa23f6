package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/pkg/utils"
	"github.com/city-boundary-service/internal/pkg/validator"
	"github.com/city-boundary-service/internal/usecase"
	"github.com/city-boundary-service/internal/usecase/dto"
)

// BoundaryHandler - обработчик запросов по границам городов
type BoundaryHandler struct {
	boundaryUC *usecase.BoundaryUseCase
	pipelineUC *usecase.PipelineUseCase
	logger     *zap.Logger
}

// NewBoundaryHandler - создание нового BoundaryHandler
func NewBoundaryHandler(
	boundaryUC *usecase.BoundaryUseCase,
	pipelineUC *usecase.PipelineUseCase,
	logger *zap.Logger,
) *BoundaryHandler {
	return &BoundaryHandler{
		boundaryUC: boundaryUC,
		pipelineUC: pipelineUC,
		logger:     logger,
	}
}

// List godoc
// @Summary Листинг загруженных границ
// @Description Возвращает сохранённые границы городов без geojson-тел
// @Tags Boundaries
// @Accept json
// @Produce json
// @Param limit query int false "Максимальное количество результатов" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=dto.ListBoundariesResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/boundaries [get]
func (h *BoundaryHandler) List(c *fiber.Ctx) error {
	var req dto.ListBoundariesRequest
	req.Limit = c.QueryInt("limit", 50)
	req.Offset = c.QueryInt("offset", 0)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.boundaryUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
		Page:  req.Offset/req.Limit + 1,
	})
}

// Get godoc
// @Summary Метаданные границы города
// @Description Возвращает запись границы: площадь, качество, количество полигонов
// @Tags Boundaries
// @Accept json
// @Produce json
// @Param city_id path string true "Идентификатор города"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/{city_id} [get]
func (h *BoundaryHandler) Get(c *fiber.Ctx) error {
	cityID := c.Params("city_id")

	boundary, err := h.boundaryUC.GetBoundary(c.Context(), cityID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertBoundarySummary(boundary), nil)
}

// GetGeoJSON godoc
// @Summary GeoJSON границы города
// @Description Возвращает FeatureCollection с полигоном границы
// @Tags Boundaries
// @Produce json
// @Param city_id path string true "Идентификатор города"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/{city_id}/geojson [get]
func (h *BoundaryHandler) GetGeoJSON(c *fiber.Ctx) error {
	cityID := c.Params("city_id")

	data, err := h.boundaryUC.GetBoundaryGeoJSON(c.Context(), cityID)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// Process godoc
// @Summary Сборка границы из сегментов
// @Description Сшивает сегменты в кольца, валидирует площадь и сохраняет результат. Отбракованная граница не сохраняется
// @Tags Boundaries
// @Accept json
// @Produce json
// @Param request body dto.ProcessSegmentsRequest true "Сегменты границы"
// @Success 200 {object} utils.SuccessResponse{data=dto.PipelineResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/process [post]
func (h *BoundaryHandler) Process(c *fiber.Ctx) error {
	var req dto.ProcessSegmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.pipelineUC.ProcessSegments(c.Context(), req)
	if err != nil {
		// Вердикт отбраковки полезен клиенту - отдаём вместе с ошибкой
		if result != nil {
			h.logger.Debug("Boundary rejected",
				zap.String("city_id", req.CityID),
				zap.Strings("issues", result.Issues))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "boundary rejected",
				"result": result,
			})
		}
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Enqueue godoc
// @Summary Постановка загрузки границы в очередь
// @Description Публикует задание на загрузку границы города в стрим воркера
// @Tags Boundaries
// @Accept json
// @Produce json
// @Param request body dto.EnqueueDownloadRequest true "Параметры города"
// @Success 202 {object} utils.SuccessResponse{data=dto.EnqueueDownloadResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/download [post]
func (h *BoundaryHandler) Enqueue(c *fiber.Ctx) error {
	var req dto.EnqueueDownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.boundaryUC.EnqueueDownload(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, result, nil)
}

// Refresh godoc
// @Summary Перезагрузка границы города
// @Description Ставит в очередь повторную загрузку границы по данным справочника
// @Tags Boundaries
// @Produce json
// @Param city_id path string true "Идентификатор города"
// @Success 202 {object} utils.SuccessResponse{data=dto.EnqueueDownloadResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/boundaries/{city_id}/refresh [post]
func (h *BoundaryHandler) Refresh(c *fiber.Ctx) error {
	cityID := c.Params("city_id")

	result, err := h.boundaryUC.RefreshBoundary(c.Context(), cityID)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, result, nil)
}
