package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/repo"
	"go.uber.org/zap"
)

const maxTableNoAttempts = 3

type TableService struct {
	tableRepo repo.TableRepository
	logger    *zap.SugaredLogger
}

func NewTableService(tableRepo repo.TableRepository, logger *zap.SugaredLogger) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		logger:    logger,
	}
}

type CreateTableInput struct {
	TableName    string
	SeatCount    int
	IsWindowSeat bool
}

func (s *TableService) CreateTable(ctx context.Context, in CreateTableInput) (*domain.Table, error) {
	for attempt := 1; ; attempt++ {
		tableNo, err := s.tableRepo.NextTableNo(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate table number: %w", err)
		}

		table := &domain.Table{
			TableNo:      tableNo,
			TableName:    in.TableName,
			SeatCount:    in.SeatCount,
			IsWindowSeat: in.IsWindowSeat,
		}

		err = s.tableRepo.Create(ctx, table)
		if err == nil {
			s.logger.Infow("table created", "table_no", table.TableNo, "table_name", table.TableName)
			return table, nil
		}
		if errors.Is(err, domain.ErrConflict) && attempt < maxTableNoAttempts {
			s.logger.Warnw("table number collision, retrying", "table_no", tableNo, "attempt", attempt)
			continue
		}
		return nil, err
	}
}

func (s *TableService) ListTables(ctx context.Context) ([]domain.Table, error) {
	return s.tableRepo.ListActive(ctx)
}
