package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ScheduleGormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewScheduleGormRepository(db *gorm.DB, log *zap.Logger) *ScheduleGormRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScheduleGormRepository{db: db, log: log}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *ScheduleGormRepository) ResolveWeekSchedule(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*schedule.WeekSchedule, error) {

	var rows []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND (barber_id = ? OR barber_id IS NULL)",
			barbershopID, barberID,
		).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load working hours: %w", err)
	}

	week := schedule.DefaultWeekSchedule()

	// padrão da barbearia primeiro, depois o que o barbeiro sobrescreveu
	for _, row := range rows {
		if row.BarberID == nil {
			r.apply(&week, row)
		}
	}
	for _, row := range rows {
		if row.BarberID != nil {
			r.apply(&week, row)
		}
	}

	return &week, nil
}

func (r *ScheduleGormRepository) GetShopWeek(
	ctx context.Context,
	barbershopID uint,
) (*schedule.WeekSchedule, error) {

	var rows []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id IS NULL", barbershopID).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load shop working hours: %w", err)
	}

	week := schedule.DefaultWeekSchedule()
	for _, row := range rows {
		r.apply(&week, row)
	}
	return &week, nil
}

// apply valida a linha na fronteira: registro malformado vira dia de folga.
func (r *ScheduleGormRepository) apply(week *schedule.WeekSchedule, row models.WorkingHours) {
	if row.Weekday < 0 || row.Weekday > 6 {
		r.log.Warn("working hours with invalid weekday ignored",
			zap.Uint("id", row.ID), zap.Int("weekday", row.Weekday))
		return
	}

	day := toDaySchedule(row)
	if err := day.Validate(); err != nil {
		r.log.Warn("malformed working hours treated as day off",
			zap.Uint("id", row.ID),
			zap.Uint("barbershop_id", row.BarbershopID),
			zap.Int("weekday", row.Weekday),
			zap.Error(err),
		)
		day = schedule.DaySchedule{IsWorking: false, StepMinutes: row.StepMinutes}
	}

	week.Set(time.Weekday(row.Weekday), day)
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *ScheduleGormRepository) SaveBarberWeek(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	week schedule.WeekSchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ? AND barber_id = ?", barbershopID, barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return fmt.Errorf("clear barber working hours: %w", err)
		}

		rows := fromWeek(barbershopID, &barberID, week)
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("save barber working hours: %w", err)
		}
		return nil
	})
}

func (r *ScheduleGormRepository) SaveShopWeek(
	ctx context.Context,
	barbershopID uint,
	week schedule.WeekSchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbershop_id = ? AND barber_id IS NULL", barbershopID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return fmt.Errorf("clear shop working hours: %w", err)
		}

		rows := fromWeek(barbershopID, nil, week)
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("save shop working hours: %w", err)
		}
		return nil
	})
}

func (r *ScheduleGormRepository) DeleteBarberWeek(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) error {

	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id = ?", barbershopID, barberID).
		Delete(&models.WorkingHours{}).Error; err != nil {
		return fmt.Errorf("delete barber working hours: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func toDaySchedule(row models.WorkingHours) schedule.DaySchedule {
	return schedule.DaySchedule{
		IsWorking:   row.Active,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		LunchStart:  row.LunchStart,
		LunchEnd:    row.LunchEnd,
		StepMinutes: row.StepMinutes,
	}
}

func fromWeek(barbershopID uint, barberID *uint, week schedule.WeekSchedule) []models.WorkingHours {
	rows := make([]models.WorkingHours, 0, len(week))
	for i, d := range week {
		rows = append(rows, models.WorkingHours{
			BarbershopID: barbershopID,
			BarberID:     barberID,
			Weekday:      i,
			Active:       d.IsWorking,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			LunchStart:   d.LunchStart,
			LunchEnd:     d.LunchEnd,
			StepMinutes:  d.StepMinutes,
		})
	}
	return rows
}

// Compile-time check
var _ schedule.Store = (*ScheduleGormRepository)(nil)
