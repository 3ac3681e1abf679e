package availability

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/DSM-SchedulingService/internal/service/availability/models"
)

// Service сервис чтения недельного расписания доступности инструкторов
type Service struct {
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		logger:           logger,
	}
}

// GetWeek возвращает недельное расписание доступности инструктора.
// Дни без настроенных границ в ответ не включаются.
func (s *Service) GetWeek(ctx context.Context, instructorID int64) (*models.WeekAvailabilityResponse, error) {
	s.logger.Info("GetWeek: fetching availability for instructor=%d", instructorID)

	if _, err := s.catalogRepo.GetInstructor(ctx, instructorID); err != nil {
		if errors.Is(err, catalogRepo.ErrInstructorNotFound) {
			s.logger.Warn("GetWeek: instructor=%d not found", instructorID)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("GetWeek: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	week, err := s.availabilityRepo.GetWeek(ctx, instructorID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeek: successfully fetched %d days for instructor=%d", len(week), instructorID)
	return models.FromDomainWeek(instructorID, week), nil
}
