package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"goodturn/internal/models"
	"goodturn/internal/points"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// TransactionStore is the persistence collaborator for the award path. Any
// durable append-only store satisfies it; the gorm TransactionRepository is
// the production implementation.
type TransactionStore interface {
	Append(tx *models.PointTransaction) error
	LatestActivity(userID uint, category string) (*time.Time, error)
}

// Observer receives each transaction exactly once, after it is durable.
// Errors and panics are logged and isolated; they never affect the committed
// transaction, other observers, or the caller of Award.
type Observer func(tx models.PointTransaction) error

// ErrCooldownActive means the user's last award in this category is too
// recent. No transaction is created.
var ErrCooldownActive = errors.New("category cooldown still active")

// PersistenceError wraps a failed interaction with the transaction store.
// When Award returns one, no transaction exists and no observer was notified.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "points persistence failed: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

type registeredObserver struct {
	id int
	fn Observer
}

// AwardService turns qualifying actions into ledger rows. MySQL gives us no
// single atomic "read latest activity then conditionally insert", so awards
// for the same (user, category) pair are serialized here; that is the only
// locking the engine needs.
type AwardService struct {
	engine *points.Engine
	store  TransactionStore
	now    func() time.Time

	obsMu     sync.Mutex
	observers []registeredObserver
	nextObsID int

	keyMu sync.Mutex
	keys  map[string]*sync.Mutex
}

func NewAwardService(engine *points.Engine, store TransactionStore) *AwardService {
	return &AwardService{
		engine: engine,
		store:  store,
		now:    time.Now,
		keys:   make(map[string]*sync.Mutex),
	}
}

// Subscribe registers an observer for committed transactions and returns its
// unsubscribe function. Observers are notified in registration order.
func (s *AwardService) Subscribe(fn Observer) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, registeredObserver{id: id, fn: fn})
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Award scores the action, enforces the category cooldown, appends the
// transaction to the ledger and then notifies observers. On any error no
// transaction exists and no observer has been called.
func (s *AwardService) Award(userID uint, category points.Category, description string, meta points.Metadata, sourceType string, sourceID uint) (*models.PointTransaction, error) {
	calc, err := s.engine.Calculate(category, meta)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(userID, category)
	defer unlock()

	last, err := s.store.LatestActivity(userID, string(category))
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	now := s.now()
	if !s.engine.CanAward(category, last, now) {
		return nil, fmt.Errorf("%w: %s", ErrCooldownActive, category)
	}

	tx := &models.PointTransaction{
		UserID:      userID,
		Category:    string(category),
		Points:      calc.Points,
		BasePoints:  calc.BasePoints,
		Multiplier:  calc.Multiplier,
		Description: description,
		Reference:   uuid.NewString(),
		SourceType:  sourceType,
		SourceID:    sourceID,
		Verified:    true,
		CreatedAt:   now,
	}
	if err := s.store.Append(tx); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	s.notify(*tx)
	return tx, nil
}

func (s *AwardService) lock(userID uint, category points.Category) func() {
	key := fmt.Sprintf("%d:%s", userID, category)
	s.keyMu.Lock()
	l, ok := s.keys[key]
	if !ok {
		l = &sync.Mutex{}
		s.keys[key] = l
	}
	s.keyMu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *AwardService) notify(tx models.PointTransaction) {
	s.obsMu.Lock()
	snapshot := make([]registeredObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.obsMu.Unlock()

	for _, o := range snapshot {
		s.safeNotify(o, tx)
	}
}

func (s *AwardService) safeNotify(o registeredObserver, tx models.PointTransaction) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{"observer": o.id, "reference": tx.Reference}).
				Errorf("points observer panicked: %v", r)
		}
	}()
	if err := o.fn(tx); err != nil {
		log.WithError(err).
			WithFields(log.Fields{"observer": o.id, "reference": tx.Reference}).
			Error("points observer failed")
	}
}
