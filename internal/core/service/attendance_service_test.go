package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

type stubAttendanceRepo struct {
	upserted []*domain.AttendanceRecord
	records  []*domain.AttendanceRecord
}

func (s *stubAttendanceRepo) Upsert(ctx context.Context, record *domain.AttendanceRecord) error {
	s.upserted = append(s.upserted, record)
	return nil
}

func (s *stubAttendanceRepo) ListByMonth(ctx context.Context, shopID, month string) ([]*domain.AttendanceRecord, error) {
	return s.records, nil
}

func newAttendanceFixture(repo *stubAttendanceRepo, members ...*domain.StaffRecord) *AttendanceService {
	staff := newStubStaffRepo()
	for _, m := range members {
		staff.byIdentity[m.IdentityID] = m
	}
	return NewAttendanceService(repo, staff, zerolog.Nop())
}

func TestAttendanceMark_RejectsBadDate(t *testing.T) {
	svc := newAttendanceFixture(&stubAttendanceRepo{})

	err := svc.Mark(context.Background(), "shop-1", "staff-1", "03-01-2026", domain.AttendancePresent)

	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAttendanceMark_RejectsUnknownStaff(t *testing.T) {
	svc := newAttendanceFixture(&stubAttendanceRepo{})

	err := svc.Mark(context.Background(), "shop-1", "staff-1", "2026-03-01", domain.AttendancePresent)

	if !errors.Is(err, domain.ErrStaffNotFound) {
		t.Fatalf("expected staff not found, got %v", err)
	}
}

func TestAttendanceMark_UpsertsRecord(t *testing.T) {
	repo := &stubAttendanceRepo{}
	svc := newAttendanceFixture(repo,
		&domain.StaffRecord{ID: "staff-1", IdentityID: "uid-s1", ShopID: "shop-1", Name: "Asad"})

	if err := svc.Mark(context.Background(), "shop-1", "staff-1", "2026-03-01", domain.AttendanceHalfDay); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserted))
	}
	rec := repo.upserted[0]
	if rec.ShopID != "shop-1" || rec.StaffID != "staff-1" || rec.Date != "2026-03-01" || rec.Mark != domain.AttendanceHalfDay {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestSalarySummaries_ProratesOverMarkedDays(t *testing.T) {
	repo := &stubAttendanceRepo{records: []*domain.AttendanceRecord{
		{ShopID: "shop-1", StaffID: "staff-1", Date: "2026-03-01", Mark: domain.AttendancePresent},
		{ShopID: "shop-1", StaffID: "staff-1", Date: "2026-03-02", Mark: domain.AttendancePresent},
		{ShopID: "shop-1", StaffID: "staff-1", Date: "2026-03-03", Mark: domain.AttendanceHalfDay},
		{ShopID: "shop-1", StaffID: "staff-1", Date: "2026-03-04", Mark: domain.AttendanceAbsent},
	}}
	svc := newAttendanceFixture(repo,
		&domain.StaffRecord{ID: "staff-1", IdentityID: "uid-s1", ShopID: "shop-1", Name: "Asad", MonthlyPay: 40000})

	summaries, err := svc.SalarySummaries(context.Background(), "shop-1", "2026-03")
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}

	got := summaries[0]
	if got.PresentDays != 2 || got.HalfDays != 1 || got.AbsentDays != 1 {
		t.Fatalf("unexpected tallies: %+v", got)
	}
	// 2.5 worked days over 4 marked days of a 40000 salary.
	if got.PayableSalary != 25000 {
		t.Fatalf("expected 25000 payable, got %v", got.PayableSalary)
	}
}

func TestSalarySummaries_UnmarkedStaffGetZero(t *testing.T) {
	svc := newAttendanceFixture(&stubAttendanceRepo{},
		&domain.StaffRecord{ID: "staff-1", IdentityID: "uid-s1", ShopID: "shop-1", Name: "Asad", MonthlyPay: 40000})

	summaries, err := svc.SalarySummaries(context.Background(), "shop-1", "2026-03")
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].PayableSalary != 0 {
		t.Fatalf("expected zero payable for unmarked staff, got %+v", summaries)
	}
}
