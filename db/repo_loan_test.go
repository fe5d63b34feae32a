package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"equiptrack/models"

	"gorm.io/gorm"
)

func TestLendTwiceFails(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelActive)
	e := seedEquipment(t, r, m.ID, "NB-01", "", "")
	a1 := seedApplicant(t, r, "chen")
	a2 := seedApplicant(t, r, "lin")

	if _, err := r.Lend(ctx, e.ID, a1.ID, time.Now(), "actor-1"); err != nil {
		t.Fatalf("first lend: %v", err)
	}
	if _, err := r.Lend(ctx, e.ID, a2.ID, time.Now(), "actor-1"); !errors.Is(err, ErrAlreadyOnLoan) {
		t.Fatalf("second lend: want ErrAlreadyOnLoan, got %v", err)
	}
	if n := openLoanCount(t, r, e.ID); n != 1 {
		t.Fatalf("open loans = %d, want 1", n)
	}
}

func TestLendReturnLend(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelActive)
	e := seedEquipment(t, r, m.ID, "NB-01", "", "")
	a := seedApplicant(t, r, "chen")

	l1, err := r.Lend(ctx, e.ID, a.ID, time.Now(), "actor-1")
	if err != nil {
		t.Fatalf("lend: %v", err)
	}
	if _, err := r.Return(ctx, l1.ID, "actor-2"); err != nil {
		t.Fatalf("return: %v", err)
	}
	if n := openLoanCount(t, r, e.ID); n != 0 {
		t.Fatalf("open loans after return = %d, want 0", n)
	}
	if _, err := r.Lend(ctx, e.ID, a.ID, time.Now(), "actor-1"); err != nil {
		t.Fatalf("relend: %v", err)
	}
}

func TestReturnAlreadyClosed(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelActive)
	e := seedEquipment(t, r, m.ID, "NB-01", "", "")
	a := seedApplicant(t, r, "chen")

	l, err := r.Lend(ctx, e.ID, a.ID, time.Now(), "actor-1")
	if err != nil {
		t.Fatalf("lend: %v", err)
	}
	first, err := r.Return(ctx, l.ID, "actor-1")
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if _, err := r.Return(ctx, l.ID, "actor-2"); !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("second return: want ErrAlreadyClosed, got %v", err)
	}

	// 第二次不能覆盖归还日期和登录人
	var got models.LoanLog
	if err := r.DB.First(&got, "id = ?", l.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.RecordedBy != "actor-1" || !got.DateIn.Equal(*first.DateIn) {
		t.Fatalf("closed loan was mutated: %+v", got)
	}
}

func TestReturnNotFound(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.Return(context.Background(), "no-such-loan", "actor-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestLendDisposedModel(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelDisposed)
	e := seedEquipment(t, r, m.ID, "NB-01", "", "")
	a := seedApplicant(t, r, "chen")

	if _, err := r.Lend(ctx, e.ID, a.ID, time.Now(), "actor-1"); !errors.Is(err, ErrModelDisposed) {
		t.Fatalf("want ErrModelDisposed, got %v", err)
	}
	if n := openLoanCount(t, r, e.ID); n != 0 {
		t.Fatalf("open loans = %d, want 0", n)
	}
}

func TestCurrentHolder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelActive)
	e := seedEquipment(t, r, m.ID, "NB-01", "", "")
	a := seedApplicant(t, r, "chen")

	h, err := r.CurrentHolder(ctx, e.ID)
	if err != nil {
		t.Fatalf("holder: %v", err)
	}
	if h != nil {
		t.Fatalf("holder before lend = %+v, want nil", h)
	}

	dateOut := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if _, err := r.Lend(ctx, e.ID, a.ID, dateOut, "actor-1"); err != nil {
		t.Fatalf("lend: %v", err)
	}
	h, err = r.CurrentHolder(ctx, e.ID)
	if err != nil {
		t.Fatalf("holder: %v", err)
	}
	if h == nil || h.ApplicantID != a.ID || h.ApplicantName != "chen" {
		t.Fatalf("holder = %+v", h)
	}
	if !h.DateOut.Equal(dateOut) {
		t.Fatalf("holder dateOut = %v, want %v", h.DateOut, dateOut)
	}
}

func TestOutstandingForOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelActive)
	e1 := seedEquipment(t, r, m.ID, "NB-01", "", "")
	e2 := seedEquipment(t, r, m.ID, "NB-02", "", "")
	a := seedApplicant(t, r, "chen")

	older := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	if _, err := r.Lend(ctx, e1.ID, a.ID, older, "actor-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Lend(ctx, e2.ID, a.ID, newer, "actor-1"); err != nil {
		t.Fatal(err)
	}

	rows, err := r.OutstandingFor(ctx, a.ID)
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("outstanding = %d rows, want 2", len(rows))
	}
	if rows[0].EquipmentID != e2.ID || rows[1].EquipmentID != e1.ID {
		t.Fatalf("order wrong: %+v", rows)
	}
}

func TestAvailableEquipment(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	active := seedModel(t, r, models.ModelActive)
	disposed := seedModel(t, r, models.ModelDisposed)
	free := seedEquipment(t, r, active.ID, "NB-01", "", "")
	lent := seedEquipment(t, r, active.ID, "NB-02", "", "")
	seedEquipment(t, r, disposed.ID, "NB-99", "", "")
	a := seedApplicant(t, r, "chen")

	if _, err := r.Lend(ctx, lent.ID, a.ID, time.Now(), "actor-1"); err != nil {
		t.Fatal(err)
	}

	eqs, err := r.AvailableEquipment(ctx, "")
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(eqs) != 1 || eqs[0].ID != free.ID {
		t.Fatalf("available = %+v, want only %s", eqs, free.Name)
	}
}

func TestUpdateLoanRevalidatesInvariant(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelActive)
	e1 := seedEquipment(t, r, m.ID, "NB-01", "", "")
	e2 := seedEquipment(t, r, m.ID, "NB-02", "", "")
	a := seedApplicant(t, r, "chen")

	dateOut := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if _, err := r.Lend(ctx, e1.ID, a.ID, dateOut, "actor-1"); err != nil {
		t.Fatal(err)
	}
	lb, err := r.Lend(ctx, e2.ID, a.ID, dateOut, "actor-1")
	if err != nil {
		t.Fatal(err)
	}

	// 把 B 改指到 e1 且保持未归还：e1 已有别的未归还台账
	_, err = r.UpdateLoan(ctx, lb.ID, UpdateLoanInput{
		EquipmentID: e1.ID,
		ApplicantID: a.ID,
		DateOut:     dateOut,
	}, "actor-2")
	if !errors.Is(err, ErrAlreadyOnLoan) {
		t.Fatalf("want ErrAlreadyOnLoan, got %v", err)
	}

	// 同样改法但顺手登记归还日期：不再是未归还，可以过
	dateIn := dateOut.AddDate(0, 0, 7)
	got, err := r.UpdateLoan(ctx, lb.ID, UpdateLoanInput{
		EquipmentID: e1.ID,
		ApplicantID: a.ID,
		DateOut:     dateOut,
		DateIn:      &dateIn,
	}, "actor-2")
	if err != nil {
		t.Fatalf("closed edit: %v", err)
	}
	if got.EquipmentID != e1.ID || got.DateIn == nil {
		t.Fatalf("edited loan = %+v", got)
	}
	if n := openLoanCount(t, r, e1.ID); n != 1 {
		t.Fatalf("open loans on e1 = %d, want 1", n)
	}

	// 编辑自己这条不受自己影响
	if _, err := r.UpdateLoan(ctx, lb.ID, UpdateLoanInput{
		EquipmentID: e1.ID,
		ApplicantID: a.ID,
		DateOut:     dateOut,
		DateIn:      &dateIn,
	}, "actor-2"); err != nil {
		t.Fatalf("self edit: %v", err)
	}
}

func TestDeleteLoan(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelActive)
	e := seedEquipment(t, r, m.ID, "NB-01", "", "")
	a := seedApplicant(t, r, "chen")

	l, err := r.Lend(ctx, e.ID, a.ID, time.Now(), "actor-1")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.DeleteLoan(ctx, l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.DeleteLoan(ctx, l.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete: want ErrRecordNotFound, got %v", err)
	}
}

func TestListLoansFilters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedModel(t, r, models.ModelActive)
	e1 := seedEquipment(t, r, m.ID, "NB-01", "", "")
	e2 := seedEquipment(t, r, m.ID, "NB-02", "", "")
	a := seedApplicant(t, r, "chen")

	l1, err := r.Lend(ctx, e1.ID, a.ID, time.Now(), "actor-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Return(ctx, l1.ID, "actor-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Lend(ctx, e2.ID, a.ID, time.Now(), "actor-1"); err != nil {
		t.Fatal(err)
	}

	open, err := r.ListLoans(ctx, "", "", "open")
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].EquipmentID != e2.ID {
		t.Fatalf("open loans = %+v", open)
	}
	returned, err := r.ListLoans(ctx, a.ID, e1.ID, "returned")
	if err != nil {
		t.Fatal(err)
	}
	if len(returned) != 1 || returned[0].ID != l1.ID {
		t.Fatalf("returned loans = %+v", returned)
	}
}
