package usecase

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/location-registry/internal/config"
	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
	"github.com/location-registry/internal/pkg/errors"
	"github.com/location-registry/internal/pkg/metrics"
	"github.com/location-registry/internal/projection"
	"github.com/location-registry/internal/usecase/dto"
)

const defaultHistoryLimit = 50

// LocationUseCase - операции над сущностями одного уровня иерархии.
// Один и тот же код обслуживает провинции, районы, муниципалитеты и округа.
type LocationUseCase[E domain.Entity] struct {
	level     domain.Level
	catalog   *projection.Catalog[E]
	repo      repository.LocationRepository[E]
	hierarchy repository.HierarchyRepository
	audit     repository.AuditRepository
	publisher repository.EventPublisher
	limits    config.SearchConfig
	logger    *zap.Logger
}

// NewLocationUseCase - создание usecase уровня catalog.Level().
// publisher может быть nil: события тогда не публикуются.
func NewLocationUseCase[E domain.Entity](
	catalog *projection.Catalog[E],
	repo repository.LocationRepository[E],
	hierarchy repository.HierarchyRepository,
	audit repository.AuditRepository,
	publisher repository.EventPublisher,
	limits config.SearchConfig,
	logger *zap.Logger,
) *LocationUseCase[E] {
	return &LocationUseCase[E]{
		level:     catalog.Level(),
		catalog:   catalog,
		repo:      repo,
		hierarchy: hierarchy,
		audit:     audit,
		publisher: publisher,
		limits:    limits,
		logger:    logger.With(zap.String("level", string(catalog.Level()))),
	}
}

func (uc *LocationUseCase[E]) Level() domain.Level {
	return uc.level
}

func (uc *LocationUseCase[E]) Catalog() *projection.Catalog[E] {
	return uc.catalog
}

// Create - проверка родителя, проверка уникальности кода в пределах родителя, сохранение
func (uc *LocationUseCase[E]) Create(ctx context.Context, req dto.CreateRequest[E], actor string) (*projection.Projection, error) {
	entity, err := req.Build()
	if err != nil {
		return nil, err
	}
	meta := entity.Meta()

	var parentID int64
	if parentLevel := uc.level.Parent(); parentLevel != "" {
		parentCode := dto.NormalizeCode(req.ParentCode())
		parent, err := uc.hierarchy.FindByCode(ctx, parentLevel, parentCode, dto.NormalizeCode(req.ParentScope()))
		if err != nil {
			return nil, uc.lookupError(err, parentLevel, parentCode)
		}
		parentID = parent.ID
		entity.SetParent(parent.ID, parent.Code)
	}

	exists, err := uc.repo.ExistsInScope(ctx, meta.Code, parentID)
	if err != nil {
		uc.logger.Error("Failed to check code uniqueness", zap.String("code", meta.Code), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if exists {
		return nil, uc.duplicate(entity)
	}

	meta.CreatedBy = actor
	if err := uc.repo.Create(ctx, entity); err != nil {
		// проверка выше не защищает от параллельной вставки: её ловит уникальный индекс
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, uc.duplicate(entity)
		}
		uc.logger.Error("Failed to create location", zap.String("code", meta.Code), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	metrics.MutationsTotal.WithLabelValues(string(uc.level), "create").Inc()
	uc.logger.Info("Location created", zap.String("code", meta.Code), zap.Int64("id", meta.ID))
	uc.publish(ctx, domain.EventCreated, entity, actor, nil)

	return uc.project(ctx, entity, uc.catalog.Scalars(), projection.SourceOptions{})
}

// Update - частичное обновление: поля, не указанные в запросе, не изменяются
func (uc *LocationUseCase[E]) Update(ctx context.Context, code, parentCode string, req dto.UpdateRequest[E], actor string) (*projection.Projection, error) {
	entity, err := uc.lookup(ctx, code, parentCode, domain.LoadOptions{})
	if err != nil {
		return nil, err
	}

	changed, err := req.Apply(entity)
	if err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		meta := entity.Meta()
		meta.UpdatedBy = &actor
		if err := uc.repo.Update(ctx, entity); err != nil {
			uc.logger.Error("Failed to update location", zap.String("code", meta.Code), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		metrics.MutationsTotal.WithLabelValues(string(uc.level), "update").Inc()
		uc.publish(ctx, domain.EventUpdated, entity, actor, changed)
	}

	return uc.project(ctx, entity, uc.catalog.Scalars(), projection.SourceOptions{})
}

// Get - одна сущность с выбранными полями
func (uc *LocationUseCase[E]) Get(ctx context.Context, code string, req *dto.DetailRequest) (*projection.Projection, error) {
	fs, err := selectFields(uc.catalog, dto.SplitFields(req.Fields), projection.Include{
		Geometry: req.IncludeGeometry,
		Totals:   req.IncludeTotals,
		Children: req.IncludeChildren,
	})
	if err != nil {
		return nil, err
	}

	entity, err := uc.lookup(ctx, code, req.ParentCode, domain.LoadOptions{WithGeometry: uc.catalog.NeedsGeometry(fs)})
	if err != nil {
		return nil, err
	}
	return uc.project(ctx, entity, fs, projection.SourceOptions{})
}

// Search - проверка критериев, постраничный запрос и проекция каждой строки
func (uc *LocationUseCase[E]) Search(ctx context.Context, c *dto.SearchCriteria) (*dto.Page, error) {
	q, inc, err := BuildQuery(uc.level, c, uc.limits)
	if err != nil {
		return nil, err
	}
	fs, err := selectFields(uc.catalog, c.FieldList(), inc)
	if err != nil {
		return nil, err
	}
	q.WithGeometry = uc.catalog.NeedsGeometry(fs)

	items, total, err := uc.repo.Search(ctx, q)
	if err != nil {
		uc.logger.Error("Failed to search locations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	opts := projection.SourceOptions{IncludeInactive: q.IncludeInactive}
	if q.Near != nil {
		opts.Origin = &domain.Point{Lat: q.Near.Lat, Lon: q.Near.Lon}
	}

	content := make([]*projection.Projection, 0, len(items))
	for _, item := range items {
		p, err := uc.project(ctx, item, fs, opts)
		if err != nil {
			return nil, err
		}
		content = append(content, p)
	}

	metrics.SearchResults.WithLabelValues(string(uc.level)).Observe(float64(len(content)))
	return dto.NewPage(content, total, q.Offset/q.Limit, q.Limit), nil
}

// Nearby - поиск в радиусе, по умолчанию отсортированный по расстоянию
func (uc *LocationUseCase[E]) Nearby(ctx context.Context, req *dto.NearbyRequest) (*dto.Page, error) {
	c, err := NearbyCriteria(req)
	if err != nil {
		return nil, err
	}
	return uc.Search(ctx, c)
}

// ListByParent - потомки предка parentLevel с кодом parentCode.
// scope - код родителя самого предка, нужен когда parentCode повторяется в разных ветках
func (uc *LocationUseCase[E]) ListByParent(ctx context.Context, parentLevel domain.Level, parentCode, scope string, c *dto.SearchCriteria) (*dto.Page, error) {
	if !parentLevel.IsAncestorOf(uc.level) {
		return nil, errors.ErrInvalidCriteria.WithDetails(map[string]interface{}{
			"parent": string(parentLevel) + " is not an ancestor of " + string(uc.level),
		})
	}

	parentCode = dto.NormalizeCode(parentCode)
	scope = dto.NormalizeCode(scope)
	if _, err := uc.hierarchy.FindByCode(ctx, parentLevel, parentCode, scope); err != nil {
		return nil, uc.lookupError(err, parentLevel, parentCode)
	}

	scoped := *c
	switch parentLevel {
	case domain.LevelProvince:
		scoped.ProvinceCode = parentCode
	case domain.LevelDistrict:
		scoped.DistrictCode = parentCode
		if scope != "" {
			scoped.ProvinceCode = scope
		}
	case domain.LevelMunicipality:
		scoped.MunicipalityCode = parentCode
		if scope != "" {
			scoped.DistrictCode = scope
		}
	}
	return uc.Search(ctx, &scoped)
}

// Statistics - сущность и агрегаты по её потомкам
func (uc *LocationUseCase[E]) Statistics(ctx context.Context, code, parentCode string) (*dto.DetailWithStatistics, error) {
	entity, err := uc.lookup(ctx, code, parentCode, domain.LoadOptions{})
	if err != nil {
		return nil, err
	}
	detail, err := uc.project(ctx, entity, uc.catalog.Defaults(), projection.SourceOptions{})
	if err != nil {
		return nil, err
	}

	stats, err := uc.statistics(ctx, entity)
	if err != nil {
		return nil, err
	}
	return &dto.DetailWithStatistics{Detail: detail, Statistics: *stats}, nil
}

func (uc *LocationUseCase[E]) statistics(ctx context.Context, entity E) (*domain.Statistics, error) {
	meta := entity.Meta()
	stats := &domain.Statistics{ChildLevel: uc.level.Child()}

	if stats.ChildLevel != "" {
		children, err := uc.hierarchy.Descendants(ctx, uc.level, meta.ID, stats.ChildLevel, true)
		if err != nil {
			uc.logger.Error("Failed to load children", zap.String("code", meta.Code), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		active := make([]domain.Summary, 0, len(children))
		for _, ch := range children {
			if ch.IsActive {
				active = append(active, ch)
			}
		}
		stats.TotalChildren = len(children)
		stats.ActiveChildren = len(active)
		stats.InactiveChildren = len(children) - len(active)
		stats.ChildPopulation = projection.SumPopulation(active)
		stats.ChildAreaSqKm = projection.SumArea(active)

		stats.Descendants = map[domain.Level]int{stats.ChildLevel: len(active)}
		for lv := stats.ChildLevel.Child(); lv != ""; lv = lv.Child() {
			items, err := uc.hierarchy.Descendants(ctx, uc.level, meta.ID, lv, false)
			if err != nil {
				uc.logger.Error("Failed to load descendants", zap.String("code", meta.Code), zap.Error(err))
				return nil, errors.ErrDatabaseError
			}
			stats.Descendants[lv] = len(items)
			if lv == domain.LevelMunicipality {
				stats.ByType = countByType(items)
			}
		}
		if stats.ChildLevel == domain.LevelMunicipality {
			stats.ByType = countByType(active)
		}
	}

	if m, ok := any(entity).(*domain.Municipality); ok {
		registered := stats.TotalChildren
		stats.DeclaredWards = m.TotalWards
		stats.RegisteredWards = &registered
	}

	stats.PopulationDensity = density(stats, meta)
	return stats, nil
}

// density - население на км²: по активным потомкам, иначе по собственным данным сущности
func density(stats *domain.Statistics, meta *domain.Location) *float64 {
	var d float64
	switch {
	case stats.ChildAreaSqKm > 0 && stats.ChildPopulation > 0:
		d = float64(stats.ChildPopulation) / stats.ChildAreaSqKm
	case meta.AreaSqKm != nil && *meta.AreaSqKm > 0 && meta.Population != nil:
		d = float64(*meta.Population) / *meta.AreaSqKm
	default:
		return nil
	}
	return &d
}

func countByType(items []domain.Summary) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		if it.Type != nil {
			out[*it.Type]++
		}
	}
	return out
}

// Deactivate - запрещено, пока есть активные потомки; повторный вызов ничего не меняет
func (uc *LocationUseCase[E]) Deactivate(ctx context.Context, code, parentCode, actor string) (*projection.Projection, error) {
	entity, err := uc.lookup(ctx, code, parentCode, domain.LoadOptions{})
	if err != nil {
		return nil, err
	}
	meta := entity.Meta()
	if !meta.IsActive {
		return uc.project(ctx, entity, uc.catalog.Scalars(), projection.SourceOptions{})
	}

	if uc.level.Child() != "" {
		n, err := uc.hierarchy.CountActiveChildren(ctx, uc.level, meta.ID)
		if err != nil {
			uc.logger.Error("Failed to count active children", zap.String("code", meta.Code), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		if n > 0 {
			return nil, errors.ErrOperationDenied.
				WithMessage("Cannot deactivate %s %s: it has %d active %s", uc.level, meta.Code, n, uc.level.Child().Plural()).
				WithDetails(map[string]interface{}{
					"code":           meta.Code,
					"activeChildren": n,
				})
		}
	}

	if err := uc.setActive(ctx, entity, false, actor); err != nil {
		return nil, err
	}
	uc.publish(ctx, domain.EventDeactivated, entity, actor, nil)
	return uc.project(ctx, entity, uc.catalog.Scalars(), projection.SourceOptions{})
}

// Reactivate - запрещено, пока неактивен родитель
func (uc *LocationUseCase[E]) Reactivate(ctx context.Context, code, parentCode, actor string) (*projection.Projection, error) {
	entity, err := uc.lookup(ctx, code, parentCode, domain.LoadOptions{})
	if err != nil {
		return nil, err
	}
	meta := entity.Meta()
	if meta.IsActive {
		return uc.project(ctx, entity, uc.catalog.Scalars(), projection.SourceOptions{})
	}

	if parentLevel := uc.level.Parent(); parentLevel != "" {
		parentID, parentCode := entity.ParentRef()
		parent, err := uc.hierarchy.GetByID(ctx, parentLevel, parentID)
		if err != nil {
			return nil, uc.lookupError(err, parentLevel, parentCode)
		}
		if !parent.IsActive {
			return nil, errors.ErrOperationDenied.
				WithMessage("Cannot reactivate %s %s: parent %s %s is inactive", uc.level, meta.Code, parentLevel, parent.Code).
				WithDetails(map[string]interface{}{
					"code":       meta.Code,
					"parentCode": parent.Code,
				})
		}
	}

	if err := uc.setActive(ctx, entity, true, actor); err != nil {
		return nil, err
	}
	uc.publish(ctx, domain.EventReactivated, entity, actor, nil)
	return uc.project(ctx, entity, uc.catalog.Scalars(), projection.SourceOptions{})
}

func (uc *LocationUseCase[E]) setActive(ctx context.Context, entity E, active bool, actor string) error {
	meta := entity.Meta()
	if err := uc.repo.SetActive(ctx, meta.ID, active, actor); err != nil {
		uc.logger.Error("Failed to toggle active flag",
			zap.String("code", meta.Code),
			zap.Bool("active", active),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	meta.IsActive = active
	meta.UpdatedBy = &actor

	op := "deactivate"
	if active {
		op = "reactivate"
	}
	metrics.MutationsTotal.WithLabelValues(string(uc.level), op).Inc()
	return nil
}

// History - журнал изменений сущности, новые записи первыми
func (uc *LocationUseCase[E]) History(ctx context.Context, code, parentCode string, limit int) ([]domain.AuditEntry, error) {
	entity, err := uc.lookup(ctx, code, parentCode, domain.LoadOptions{})
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultHistoryLimit*2 {
		limit = defaultHistoryLimit
	}

	entries, err := uc.audit.ListByEntity(ctx, uc.level, entity.Meta().ID, limit)
	if err != nil {
		uc.logger.Error("Failed to load audit log", zap.String("code", code), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, nil
}

func (uc *LocationUseCase[E]) lookup(ctx context.Context, code, parentCode string, opts domain.LoadOptions) (E, error) {
	code = dto.NormalizeLevelCode(uc.level, code)
	entity, err := uc.repo.GetByCode(ctx, code, dto.NormalizeCode(parentCode), opts)
	if err != nil {
		var zero E
		return zero, uc.lookupError(err, uc.level, code)
	}
	return entity, nil
}

// lookupError переводит ошибки хранилища в ошибки API с ключом поиска
func (uc *LocationUseCase[E]) lookupError(err error, level domain.Level, code string) error {
	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.NotFound(string(level), code)
	case stderrors.Is(err, repository.ErrAmbiguous):
		return errors.ErrAmbiguousCode.WithDetails(map[string]interface{}{
			"entity": string(level),
			"code":   code,
		})
	default:
		uc.logger.Error("Failed to look up location",
			zap.String("lookup_level", string(level)),
			zap.String("code", code),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
}

func (uc *LocationUseCase[E]) duplicate(entity E) error {
	_, parentCode := entity.ParentRef()
	details := map[string]interface{}{
		"entity": string(uc.level),
		"code":   entity.Meta().Code,
	}
	if parentCode != "" {
		details["parentCode"] = parentCode
	}
	return errors.ErrDuplicateCode.WithDetails(details)
}

func (uc *LocationUseCase[E]) project(ctx context.Context, entity E, fs projection.FieldSet, opts projection.SourceOptions) (*projection.Projection, error) {
	p, err := uc.catalog.Project(ctx, projection.NewSource(entity, uc.hierarchy, opts), fs)
	if err != nil {
		uc.logger.Error("Failed to build projection", zap.String("code", entity.Meta().Code), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return p, nil
}

// publish - события публикуются по возможности; ошибка публикации не отменяет операцию
func (uc *LocationUseCase[E]) publish(ctx context.Context, t domain.EventType, entity E, actor string, changes []string) {
	if uc.publisher == nil {
		return
	}
	_, parentCode := entity.ParentRef()
	event := domain.NewLocationEvent(t, uc.level, entity.Meta(), parentCode, actor, changes)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		metrics.EventsPublishFailedTotal.WithLabelValues(string(uc.level)).Inc()
		uc.logger.Warn("Failed to publish location event",
			zap.String("event_type", string(t)),
			zap.String("code", entity.Meta().Code),
			zap.Error(err))
	}
}
