package handler

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/errors"
	"github.com/location-registry/internal/pkg/utils"
	"github.com/location-registry/internal/projection"
	"github.com/location-registry/internal/usecase/dto"
)

const (
	// ActorHeader - заголовок с идентификатором пользователя для аудита
	ActorHeader  = "X-User-ID"
	defaultActor = "system"
)

// LocationService - операции уровня иерархии, которые нужны обработчику
type LocationService[E domain.Entity] interface {
	Level() domain.Level
	Create(ctx context.Context, req dto.CreateRequest[E], actor string) (*projection.Projection, error)
	Update(ctx context.Context, code, parentCode string, req dto.UpdateRequest[E], actor string) (*projection.Projection, error)
	Get(ctx context.Context, code string, req *dto.DetailRequest) (*projection.Projection, error)
	Search(ctx context.Context, c *dto.SearchCriteria) (*dto.Page, error)
	Nearby(ctx context.Context, req *dto.NearbyRequest) (*dto.Page, error)
	ListByParent(ctx context.Context, parentLevel domain.Level, parentCode, scope string, c *dto.SearchCriteria) (*dto.Page, error)
	Statistics(ctx context.Context, code, parentCode string) (*dto.DetailWithStatistics, error)
	Deactivate(ctx context.Context, code, parentCode, actor string) (*projection.Projection, error)
	Reactivate(ctx context.Context, code, parentCode, actor string) (*projection.Projection, error)
	History(ctx context.Context, code, parentCode string, limit int) ([]domain.AuditEntry, error)
}

// LocationHandler - REST обработчик одного уровня иерархии
type LocationHandler[E domain.Entity] struct {
	service   LocationService[E]
	newCreate func() dto.CreateRequest[E]
	newUpdate func() dto.UpdateRequest[E]
	title     string
	logger    *zap.Logger
}

// NewLocationHandler - newCreate/newUpdate возвращают пустые запросы для разбора тела
func NewLocationHandler[E domain.Entity](
	service LocationService[E],
	newCreate func() dto.CreateRequest[E],
	newUpdate func() dto.UpdateRequest[E],
	logger *zap.Logger,
) *LocationHandler[E] {
	level := string(service.Level())
	return &LocationHandler[E]{
		service:   service,
		newCreate: newCreate,
		newUpdate: newUpdate,
		title:     strings.ToUpper(level[:1]) + level[1:],
		logger:    logger.With(zap.String("level", level)),
	}
}

// Register - маршруты уровня в группе /api/v1/{plural}
func (h *LocationHandler[E]) Register(api fiber.Router) {
	level := h.service.Level()
	g := api.Group("/" + level.Plural())

	g.Post("/", h.Create)
	g.Get("/search", h.Search)
	g.Get("/nearby", h.Nearby)
	for _, ancestor := range level.Ancestors() {
		g.Get("/by-"+string(ancestor)+"/:code", h.listBy(ancestor))
	}
	g.Get("/:code", h.Get)
	g.Put("/:code", h.Update)
	g.Delete("/:code", h.Deactivate)
	g.Get("/:code/statistics", h.Statistics)
	g.Get("/:code/history", h.History)
	g.Post("/:code/reactivate", h.Reactivate)
}

// Create godoc
// @Summary Создание локации
// @Description Создаёт провинцию, район, муниципалитет или округ. Код уникален (без учёта регистра) в пределах родителя.
// @Tags Locations
// @Accept json
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param X-User-ID header string false "Пользователь для аудита" default(system)
// @Param request body dto.CreateMunicipalityRequest true "Тело запроса (пример для муниципалитета)"
// @Success 201 {object} utils.SuccessResponse{data=projection.Projection}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/{level} [post]
func (h *LocationHandler[E]) Create(c *fiber.Ctx) error {
	req := h.newCreate()
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.service.Create(c.UserContext(), req, actor(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusCreated, result, h.title+" created")
}

// Update godoc
// @Summary Частичное обновление локации
// @Description Изменяет только переданные поля. Код и родитель не изменяются.
// @Tags Locations
// @Accept json
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param code path string true "Код"
// @Param parentCode query string false "Код родителя, если код неоднозначен"
// @Param X-User-ID header string false "Пользователь для аудита" default(system)
// @Param request body dto.UpdateMunicipalityRequest true "Изменяемые поля (пример для муниципалитета)"
// @Success 200 {object} utils.SuccessResponse{data=projection.Projection}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/{level}/{code} [put]
func (h *LocationHandler[E]) Update(c *fiber.Ctx) error {
	req := h.newUpdate()
	if err := c.BodyParser(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.service.Update(c.UserContext(), c.Params("code"), c.Query("parentCode"), req, actor(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, result, h.title+" updated")
}

// Get godoc
// @Summary Получение локации по коду
// @Description Возвращает выбранные поля (fields) или набор полей по умолчанию
// @Tags Locations
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param code path string true "Код"
// @Param parentCode query string false "Код родителя, если код неоднозначен"
// @Param fields query string false "Поля через запятую, например NAME,CODE,POPULATION"
// @Param includeGeometry query bool false "Добавить геометрию"
// @Param includeTotals query bool false "Добавить суммы по дочерним"
// @Param includeChildren query bool false "Добавить дочерние элементы"
// @Success 200 {object} utils.SuccessResponse{data=projection.Projection}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/{level}/{code} [get]
func (h *LocationHandler[E]) Get(c *fiber.Ctx) error {
	var req dto.DetailRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidQuery(err))
	}

	result, err := h.service.Get(c.UserContext(), c.Params("code"), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Search godoc
// @Summary Поиск по критериям
// @Description Фильтры по тексту, населению, площади, числу дочерних, типу, кодам предков и радиусу. Ответ содержит только запрошенные поля.
// @Tags Locations
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param searchTerm query string false "Подстрока названия или кода"
// @Param minPopulation query int false "Минимальное население"
// @Param maxPopulation query int false "Максимальное население"
// @Param minArea query number false "Минимальная площадь, км²"
// @Param maxArea query number false "Максимальная площадь, км²"
// @Param minChildren query int false "Минимум активных дочерних"
// @Param maxChildren query int false "Максимум активных дочерних"
// @Param type query string false "Тип муниципалитета"
// @Param provinceCode query string false "Код провинции"
// @Param districtCode query string false "Код района"
// @Param municipalityCode query string false "Код муниципалитета"
// @Param latitude query number false "Широта"
// @Param longitude query number false "Долгота"
// @Param radiusKm query number false "Радиус, км"
// @Param fields query string false "Поля через запятую"
// @Param sortBy query string false "code, name, population, area, createdAt, distance"
// @Param sortDirection query string false "asc или desc"
// @Param page query int false "Номер страницы с 0" default(0)
// @Param pageSize query int false "Размер страницы" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.Page}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/{level}/search [get]
func (h *LocationHandler[E]) Search(c *fiber.Ctx) error {
	var criteria dto.SearchCriteria
	if err := c.QueryParser(&criteria); err != nil {
		return utils.SendError(c, invalidQuery(err))
	}

	page, err := h.service.Search(c.UserContext(), &criteria)
	if err != nil {
		return utils.SendError(c, err)
	}

	return sendPage(c, page)
}

// Nearby godoc
// @Summary Поиск в радиусе
// @Description Локации в радиусе от точки, ближайшие первыми
// @Tags Locations
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radiusKm query number true "Радиус, км"
// @Param page query int false "Номер страницы с 0" default(0)
// @Param size query int false "Размер страницы" default(20)
// @Param fields query string false "Поля через запятую"
// @Success 200 {object} utils.SuccessResponse{data=dto.Page}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/{level}/nearby [get]
func (h *LocationHandler[E]) Nearby(c *fiber.Ctx) error {
	var req dto.NearbyRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, invalidQuery(err))
	}

	page, err := h.service.Nearby(c.UserContext(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return sendPage(c, page)
}

// listBy - GET /by-{ancestor}/:code; принимает те же параметры, что и поиск,
// и parentCode - код родителя предка, если код предка неоднозначен
func (h *LocationHandler[E]) listBy(ancestor domain.Level) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var criteria dto.SearchCriteria
		if err := c.QueryParser(&criteria); err != nil {
			return utils.SendError(c, invalidQuery(err))
		}

		page, err := h.service.ListByParent(c.UserContext(), ancestor, c.Params("code"), c.Query("parentCode"), &criteria)
		if err != nil {
			return utils.SendError(c, err)
		}

		return sendPage(c, page)
	}
}

// Statistics godoc
// @Summary Статистика по локации
// @Description Количество дочерних (всего/активных), суммы населения и площади, плотность, распределение по типам
// @Tags Locations
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param code path string true "Код"
// @Param parentCode query string false "Код родителя, если код неоднозначен"
// @Success 200 {object} utils.SuccessResponse{data=dto.DetailWithStatistics}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/{level}/{code}/statistics [get]
func (h *LocationHandler[E]) Statistics(c *fiber.Ctx) error {
	result, err := h.service.Statistics(c.UserContext(), c.Params("code"), c.Query("parentCode"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// History godoc
// @Summary Журнал изменений
// @Tags Locations
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param code path string true "Код"
// @Param parentCode query string false "Код родителя, если код неоднозначен"
// @Param limit query int false "Количество записей" default(50)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.AuditEntry}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/{level}/{code}/history [get]
func (h *LocationHandler[E]) History(c *fiber.Ctx) error {
	entries, err := h.service.History(c.UserContext(), c.Params("code"), c.Query("parentCode"), c.QueryInt("limit", 0))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, entries, &utils.Meta{Total: int64(len(entries))})
}

// Deactivate godoc
// @Summary Деактивация локации
// @Description Мягкое удаление: запись остаётся, но исключается из поиска по умолчанию
// @Tags Locations
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param code path string true "Код"
// @Param parentCode query string false "Код родителя, если код неоднозначен"
// @Param X-User-ID header string false "Пользователь для аудита" default(system)
// @Success 200 {object} utils.SuccessResponse{data=projection.Projection}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/{level}/{code} [delete]
func (h *LocationHandler[E]) Deactivate(c *fiber.Ctx) error {
	result, err := h.service.Deactivate(c.UserContext(), c.Params("code"), c.Query("parentCode"), actor(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, result, h.title+" deactivated")
}

// Reactivate godoc
// @Summary Повторная активация локации
// @Tags Locations
// @Produce json
// @Param level path string true "Уровень" Enums(provinces, districts, municipalities, wards)
// @Param code path string true "Код"
// @Param parentCode query string false "Код родителя, если код неоднозначен"
// @Param X-User-ID header string false "Пользователь для аудита" default(system)
// @Success 200 {object} utils.SuccessResponse{data=projection.Projection}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/{level}/{code}/reactivate [post]
func (h *LocationHandler[E]) Reactivate(c *fiber.Ctx) error {
	result, err := h.service.Reactivate(c.UserContext(), c.Params("code"), c.Query("parentCode"), actor(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendMessage(c, fiber.StatusOK, result, h.title+" reactivated")
}

func sendPage(c *fiber.Ctx, page *dto.Page) error {
	return utils.SendSuccess(c, page, &utils.Meta{
		Total: page.TotalElements,
		Page:  page.Page,
		Limit: page.Size,
	})
}

func actor(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Get(ActorHeader)); v != "" {
		return v
	}
	return defaultActor
}

func invalidQuery(err error) error {
	return errors.ErrInvalidCriteria.WithDetails(map[string]interface{}{
		"query": err.Error(),
	})
}
