package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// AttendanceService records daily attendance and derives monthly salary
// summaries from it. A half day counts as half a present day; payable salary
// is monthly pay prorated over the days marked in the month.
type AttendanceService struct {
	attendance ports.AttendanceRepository
	staff      ports.StaffRepository
	log        zerolog.Logger
}

func NewAttendanceService(attendance ports.AttendanceRepository, staff ports.StaffRepository, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{attendance: attendance, staff: staff, log: log}
}

// Mark records (or replaces) one staff member's attendance for a day.
func (s *AttendanceService) Mark(ctx context.Context, shopID, staffID, date string, mark domain.AttendanceMark) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return &domain.ValidationError{Message: "date must be in YYYY-MM-DD format"}
	}
	switch mark {
	case domain.AttendancePresent, domain.AttendanceAbsent, domain.AttendanceHalfDay:
	default:
		return &domain.ValidationError{Message: "mark must be present, absent or half_day"}
	}

	// The staff member must belong to the shop marking attendance.
	if _, err := s.staff.FindByID(ctx, shopID, staffID); err != nil {
		return err
	}

	return s.attendance.Upsert(ctx, &domain.AttendanceRecord{
		ShopID:    shopID,
		StaffID:   staffID,
		Date:      date,
		Mark:      mark,
		CreatedAt: time.Now().UTC(),
	})
}

// Month returns all attendance marks for a shop in a month ("2006-01").
func (s *AttendanceService) Month(ctx context.Context, shopID, month string) ([]*domain.AttendanceRecord, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return nil, &domain.ValidationError{Message: "month must be in YYYY-MM format"}
	}
	return s.attendance.ListByMonth(ctx, shopID, month)
}

// SalarySummaries computes per-staff payable salaries for a month from the
// recorded attendance.
func (s *AttendanceService) SalarySummaries(ctx context.Context, shopID, month string) ([]*domain.SalarySummary, error) {
	records, err := s.Month(ctx, shopID, month)
	if err != nil {
		return nil, err
	}
	roster, err := s.staff.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	type tally struct {
		present, half, absent int
	}
	counts := make(map[string]*tally)
	for _, rec := range records {
		t := counts[rec.StaffID]
		if t == nil {
			t = &tally{}
			counts[rec.StaffID] = t
		}
		switch rec.Mark {
		case domain.AttendancePresent:
			t.present++
		case domain.AttendanceHalfDay:
			t.half++
		case domain.AttendanceAbsent:
			t.absent++
		}
	}

	summaries := make([]*domain.SalarySummary, 0, len(roster))
	for _, member := range roster {
		t := counts[member.ID]
		if t == nil {
			t = &tally{}
		}
		summary := &domain.SalarySummary{
			StaffID:     member.ID,
			StaffName:   member.Name,
			Month:       month,
			PresentDays: t.present,
			HalfDays:    t.half,
			AbsentDays:  t.absent,
			MonthlyPay:  member.MonthlyPay,
		}
		if marked := t.present + t.half + t.absent; marked > 0 {
			worked := float64(t.present) + 0.5*float64(t.half)
			summary.PayableSalary = member.MonthlyPay * worked / float64(marked)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
