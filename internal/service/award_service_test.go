package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"goodturn/internal/models"
	"goodturn/internal/points"
)

type fakeStore struct {
	mu        sync.Mutex
	appended  []models.PointTransaction
	appendErr error
	latestErr error
	latest    map[string]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{latest: make(map[string]time.Time)}
}

func (f *fakeStore) Append(tx *models.PointTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	tx.ID = uint(len(f.appended) + 1)
	f.appended = append(f.appended, *tx)
	f.latest[key(tx.UserID, tx.Category)] = tx.CreatedAt
	return nil
}

func (f *fakeStore) LatestActivity(userID uint, category string) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	t, ok := f.latest[key(userID, category)]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func key(userID uint, category string) string {
	return fmt.Sprintf("%d:%s", userID, category)
}

func newAwardService(t *testing.T, store TransactionStore) *AwardService {
	t.Helper()
	engine, err := points.NewEngine(points.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewAwardService(engine, store)
}

func TestAwardAppendsTransaction(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)

	tx, err := svc.Award(1, points.CategoryDonation, "food bank donation", points.Metadata{}, "", 0)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	if tx.Points != 10 {
		t.Errorf("points = %d, want 10", tx.Points)
	}
	if tx.Reference == "" {
		t.Error("reference not set")
	}
	if len(store.appended) != 1 {
		t.Fatalf("appended %d transactions, want 1", len(store.appended))
	}
	if store.appended[0].Category != string(points.CategoryDonation) {
		t.Errorf("category = %q", store.appended[0].Category)
	}
}

func TestAwardUnknownCategory(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)

	_, err := svc.Award(1, points.Category("jaywalking"), "", points.Metadata{}, "", 0)
	if !errors.Is(err, points.ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
	if len(store.appended) != 0 {
		t.Error("transaction appended for unknown category")
	}
}

func TestAwardCooldownRejected(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	if _, err := svc.Award(7, points.CategoryHelpCompleted, "", points.Metadata{}, "", 0); err != nil {
		t.Fatalf("first award: %v", err)
	}

	// 10 minutes later, inside the 30 minute cooldown.
	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	_, err := svc.Award(7, points.CategoryHelpCompleted, "", points.Metadata{}, "", 0)
	if !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("err = %v, want ErrCooldownActive", err)
	}
	if len(store.appended) != 1 {
		t.Errorf("appended %d transactions, want 1", len(store.appended))
	}

	// At exactly the cooldown boundary the award goes through.
	svc.now = func() time.Time { return base.Add(30 * time.Minute) }
	if _, err := svc.Award(7, points.CategoryHelpCompleted, "", points.Metadata{}, "", 0); err != nil {
		t.Fatalf("award at boundary: %v", err)
	}
}

func TestAwardCooldownDoesNotCrossUsersOrCategories(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)

	if _, err := svc.Award(1, points.CategoryHelpCompleted, "", points.Metadata{}, "", 0); err != nil {
		t.Fatalf("user 1: %v", err)
	}
	if _, err := svc.Award(2, points.CategoryHelpCompleted, "", points.Metadata{}, "", 0); err != nil {
		t.Errorf("other user blocked: %v", err)
	}
	if _, err := svc.Award(1, points.CategoryEmergencyHelp, "", points.Metadata{}, "", 0); err != nil {
		t.Errorf("other category blocked: %v", err)
	}
}

func TestAwardPersistenceFailureNotifiesNobody(t *testing.T) {
	store := newFakeStore()
	store.appendErr = errors.New("disk full")
	svc := newAwardService(t, store)

	notified := 0
	svc.Subscribe(func(models.PointTransaction) error {
		notified++
		return nil
	})

	tx, err := svc.Award(1, points.CategoryDonation, "", points.Metadata{}, "", 0)
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	if tx != nil {
		t.Error("transaction returned despite failed append")
	}
	if notified != 0 {
		t.Errorf("observers notified %d times, want 0", notified)
	}
}

func TestObserversNotifiedInOrder(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)

	var order []string
	svc.Subscribe(func(models.PointTransaction) error {
		order = append(order, "first")
		return nil
	})
	svc.Subscribe(func(models.PointTransaction) error {
		order = append(order, "second")
		return nil
	})

	if _, err := svc.Award(1, points.CategoryDonation, "", points.Metadata{}, "", 0); err != nil {
		t.Fatalf("Award: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("notification order = %v", order)
	}
}

func TestObserverFailureIsolated(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)

	called := false
	svc.Subscribe(func(models.PointTransaction) error {
		panic("boom")
	})
	svc.Subscribe(func(models.PointTransaction) error {
		return errors.New("observer error")
	})
	svc.Subscribe(func(models.PointTransaction) error {
		called = true
		return nil
	})

	tx, err := svc.Award(1, points.CategoryDonation, "", points.Metadata{}, "", 0)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	if tx == nil {
		t.Fatal("no transaction returned")
	}
	if !called {
		t.Error("later observer skipped after earlier failure")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)

	count := 0
	unsubscribe := svc.Subscribe(func(models.PointTransaction) error {
		count++
		return nil
	})

	if _, err := svc.Award(1, points.CategoryDonation, "", points.Metadata{}, "", 0); err != nil {
		t.Fatalf("Award: %v", err)
	}
	unsubscribe()
	if _, err := svc.Award(2, points.CategoryDonation, "", points.Metadata{}, "", 0); err != nil {
		t.Fatalf("Award: %v", err)
	}
	if count != 1 {
		t.Errorf("observer called %d times, want 1", count)
	}
}

func TestAwardStreakMultiplierStored(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)

	tx, err := svc.Award(1, points.CategoryRecurringHelp, "", points.Metadata{ConsecutiveDays: 9}, "", 0)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	if tx.BasePoints != 35 {
		t.Errorf("base points = %d, want 35", tx.BasePoints)
	}
	// 1.5 category multiplier and 1.2 streak bonus.
	if tx.Multiplier < 1.79 || tx.Multiplier > 1.81 {
		t.Errorf("multiplier = %v, want 1.8", tx.Multiplier)
	}
	if tx.Points != 63 {
		t.Errorf("points = %d, want 63", tx.Points)
	}
}

func TestConcurrentAwardsSameKeyRespectCooldown(t *testing.T) {
	store := newFakeStore()
	svc := newAwardService(t, store)

	var wg sync.WaitGroup
	var okCount int32
	var mu sync.Mutex
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Award(5, points.CategoryHelpCompleted, "", points.Metadata{}, "", 0); err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if okCount != 1 {
		t.Errorf("%d concurrent awards succeeded, want exactly 1", okCount)
	}
}
