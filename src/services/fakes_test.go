package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/processors"
)

var (
	testNow   = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	testClock = processors.FixedClock(testNow)
	errStore  = errors.New("store unavailable")
)

type memStore struct {
	mu       sync.Mutex
	txs      map[string][]models.Transaction
	profiles map[string]models.Profile
	listErr  error
	lists    int

	// afterList runs once, outside the lock, after the next successful list.
	afterList func()
}

func newMemStore() *memStore {
	return &memStore{txs: map[string][]models.Transaction{}, profiles: map[string]models.Profile{}}
}

func (s *memStore) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	s.mu.Lock()
	s.lists++
	if s.listErr != nil {
		err := s.listErr
		s.mu.Unlock()
		return nil, err
	}
	out := append([]models.Transaction(nil), s.txs[userID]...)
	hook := s.afterList
	s.afterList = nil
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (s *memStore) SaveTransaction(_ context.Context, userID string, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.UserID = userID
	for i, existing := range s.txs[userID] {
		if existing.ID == tx.ID {
			s.txs[userID][i] = tx
			return tx, nil
		}
	}
	s.txs[userID] = append(s.txs[userID], tx)
	return tx, nil
}

func (s *memStore) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.txs[userID] {
		if existing.ID == id {
			s.txs[userID] = append(s.txs[userID][:i], s.txs[userID][i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (s *memStore) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *memStore) SaveProfile(_ context.Context, userID string, p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = p
	return nil
}

func newTx(id string, overrides ...func(*models.Transaction)) models.Transaction {
	tx := models.Transaction{
		ID:                id,
		TransactionDate:   "2024-03-15",
		ReservationDate:   "2024-03-15",
		ListingDate:       "2024-02-01",
		Address:           "Av. Córdoba 1234",
		Type:              models.TypeSale,
		Status:            models.StatusClosed,
		ReservationValue:  100000,
		BrokerFeePercent:  3,
		AdvisorFeePercent: 50,
		BrokerFeeAmount:   3000,
		AdvisorFeeAmount:  1500,
		PrimaryAdvisorID:  "advisor-1",
	}
	for _, o := range overrides {
		o(&tx)
	}
	return tx
}

// sessionFixture: a 2024 closed sale, a current open deal, an open deal carried
// over from 2023, a 2023 closed sale and a fallen deal.
func sessionFixture() []models.Transaction {
	return []models.Transaction{
		newTx("closed-2024"),
		newTx("open-2024", func(tx *models.Transaction) {
			tx.Status = models.StatusOpen
			tx.TransactionDate = "2024-05-01"
			tx.ReservationValue = 50000
		}),
		newTx("open-2023", func(tx *models.Transaction) {
			tx.Status = models.StatusOpen
			tx.TransactionDate = "2023-11-01"
			tx.ReservationValue = 200000
		}),
		newTx("closed-2023", func(tx *models.Transaction) {
			tx.TransactionDate = "2023-08-10"
			tx.ReservationValue = 400000
		}),
		newTx("fallen", func(tx *models.Transaction) { tx.Status = models.StatusFallen }),
	}
}

func leaderProfile(email string) *models.Profile {
	return &models.Profile{UID: "leader", Email: email, Currency: "USD", Role: models.RoleTeamLeaderBroker}
}
