package reservationrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/paging"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockNotAvailable is raised by PostgreSQL when lock_timeout expires.
const lockNotAvailable = "55P03"

var ErrNoActiveTransaction = errors.New("row lock requires an active transaction")

// GormReservationRepository implements ports.ReservationRepository using GORM.
type GormReservationRepository struct {
	db       *gorm.DB
	lockWait time.Duration
}

// NewGormReservationRepository binds a repository to db. GetForUpdate waits at most
// lockWait for a row lock.
func NewGormReservationRepository(db *gorm.DB, lockWait time.Duration) *GormReservationRepository {
	return &GormReservationRepository{
		db:       db,
		lockWait: lockWait,
	}
}

func (r *GormReservationRepository) Add(ctx context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update overwrites every column, so a cleared driver is written as NULL.
func (r *GormReservationRepository) Update(ctx context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ReservationDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("reservation", aggregate.ID().String())
	}

	return nil
}

func (r *GormReservationRepository) Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReservationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reservation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate reads the row with SELECT ... FOR UPDATE under a transaction-local
// lock_timeout. The lock is held until the surrounding transaction ends.
func (r *GormReservationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if _, ok := r.db.Statement.ConnPool.(gorm.TxCommitter); !ok {
		return nil, ErrNoActiveTransaction
	}

	db := r.db.WithContext(ctx)
	if err := db.Exec(lockTimeoutStatement(r.lockWait)).Error; err != nil {
		return nil, err
	}

	var dto ReservationDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, r.lockError(ctx, id, err)
	}

	return toDomain(dto)
}

// lockTimeoutStatement rounds wait up to whole milliseconds, never below 1ms:
// lock_timeout = 0 disables the timeout in PostgreSQL.
func lockTimeoutStatement(wait time.Duration) string {
	ms := int64((wait + time.Millisecond - 1) / time.Millisecond)
	return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", max(ms, 1))
}

func (r *GormReservationRepository) lockError(ctx context.Context, id kernel.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("reservation", id.String())
	}
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
		return ctxErr
	}

	var pgErr *pgconn.PgError
	if (errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable) ||
		errors.Is(err, context.DeadlineExceeded) {
		return errs.NewLockTimeoutError("reservation", id.String(), r.lockWait, err)
	}
	return err
}

func (r *GormReservationRepository) FindScheduleOfDriver(
	ctx context.Context,
	driverID kernel.UUID,
	from, to time.Time,
) ([]*reservation.Reservation, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReservationDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID.Bytes()).
		Where("service_date BETWEEN ? AND ?", kernel.DateOf(from), kernel.DateOf(to)).
		Where("transport_status <> ?", int(reservation.Cancelled)).
		Order("starts_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormReservationRepository) FindOpen(
	ctx context.Context,
	vehicleID kernel.UUID,
	sort ports.SortKey,
	page paging.Request,
) (paging.Page[*reservation.Reservation], error) {
	column, err := orderColumn(sort)
	if err != nil {
		return paging.Page[*reservation.Reservation]{}, err
	}

	open := r.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("driver_id IS NULL").
		Where("transport_status = ?", int(reservation.Pending)).
		Where("vehicle_id = ?", vehicleID.Bytes())

	var total int64
	if err = open.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return paging.Page[*reservation.Reservation]{}, err
	}

	var dtos []ReservationDTO
	err = open.Session(&gorm.Session{}).
		Order(column + ", id").
		Offset(page.Offset()).
		Limit(page.Size()).
		Find(&dtos).Error
	if err != nil {
		return paging.Page[*reservation.Reservation]{}, err
	}

	items, err := toDomainAll(dtos)
	if err != nil {
		return paging.Page[*reservation.Reservation]{}, err
	}
	return paging.NewPage(items, total, page), nil
}

func (r *GormReservationRepository) FindPendingStartingBefore(
	ctx context.Context,
	t time.Time,
	limit int,
) ([]*reservation.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("transport_status = ?", int(reservation.Pending)).
		Where("starts_at < ?", t).
		Order("starts_at, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []ReservationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func orderColumn(sort ports.SortKey) (string, error) {
	switch sort {
	case ports.SortByFee:
		return "transport_fee", nil
	case ports.SortByDistance:
		return "transport_distance_km", nil
	case ports.SortBySchedule:
		return "starts_at", nil
	default:
		return "", errs.NewUnknownFilterKeyError(sort.String())
	}
}

func toDomainAll(dtos []ReservationDTO) ([]*reservation.Reservation, error) {
	out := make([]*reservation.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		r, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
