// Package usecasetest содержит хранилище в памяти для тестов use case.
// Поведение повторяет репозитории из internal/infra/storage, включая их ошибки.
package usecasetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	providerRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/provider"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
)

// Store состояние поставщиков, слотов и бронирований
type Store struct {
	mu           sync.Mutex
	providers    map[int64]*domain.Provider
	slots        map[domain.SlotKey]domain.TimeSlot
	reservations map[int64]domain.Reservation
	nextID       int64

	// Writes число вызовов изменяющих методов
	Writes int
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		providers:    make(map[int64]*domain.Provider),
		slots:        make(map[domain.SlotKey]domain.TimeSlot),
		reservations: make(map[int64]domain.Reservation),
		nextID:       1,
	}
}

// AddProvider регистрирует поставщика
func (s *Store) AddProvider(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[id] = &domain.Provider{ID: id, Name: fmt.Sprintf("provider-%d", id)}
}

// AddFreeSlots добавляет свободные слоты [from, from+n*quantum)
func (s *Store) AddFreeSlots(providerID int64, from time.Time, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		slot := domain.NewTimeSlot(providerID, from.Add(time.Duration(i)*domain.SlotQuantum))
		s.slots[slot.Key()] = slot
	}
}

// Slots возвращает все слоты поставщика по порядку
func (s *Store) Slots(providerID int64) []domain.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(t domain.TimeSlot) bool { return t.ProviderID == providerID })
}

// Slot возвращает слот по ключу
func (s *Store) Slot(providerID int64, start time.Time) (domain.TimeSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[domain.NewSlotKey(providerID, start)]
	return slot, ok
}

// ReservationCount возвращает число бронирований
func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

func (s *Store) filter(keep func(domain.TimeSlot) bool) []domain.TimeSlot {
	out := make([]domain.TimeSlot, 0)
	for _, slot := range s.slots {
		if keep(slot) {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProviderID != out[j].ProviderID {
			return out[i].ProviderID < out[j].ProviderID
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

type snapshot struct {
	slots        map[domain.SlotKey]domain.TimeSlot
	reservations map[int64]domain.Reservation
	nextID       int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		slots:        make(map[domain.SlotKey]domain.TimeSlot, len(s.slots)),
		reservations: make(map[int64]domain.Reservation, len(s.reservations)),
		nextID:       s.nextID,
	}
	for k, v := range s.slots {
		snap.slots[k] = v
	}
	for k, v := range s.reservations {
		snap.reservations[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = snap.slots
	s.reservations = snap.reservations
	s.nextID = snap.nextID
}

// TxManager откатывает изменения Store, если функция вернула ошибку
type TxManager struct {
	Store *Store

	// Calls число начатых транзакций
	Calls int
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	snap := m.Store.snapshot()
	if err := fn(ctx); err != nil {
		m.Store.restore(snap)
		return err
	}
	return nil
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// Publisher запоминает опубликованные события
type Publisher struct {
	mu     sync.Mutex
	Events []events.Event
	Err    error
}

func (p *Publisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

// Providers репозиторий поставщиков поверх Store
func (s *Store) Providers() *ProviderRepo { return &ProviderRepo{s: s} }

// TimeSlots репозиторий слотов поверх Store
func (s *Store) TimeSlots() *SlotRepo { return &SlotRepo{s: s} }

// Reservations репозиторий бронирований поверх Store
func (s *Store) Reservations() *ReservationRepo { return &ReservationRepo{s: s} }

type ProviderRepo struct{ s *Store }

func (r *ProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.providers[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProviderRepo) LockForUpdate(ctx context.Context, id int64) error {
	_, err := r.GetByID(ctx, id)
	return err
}

type SlotRepo struct{ s *Store }

func (r *SlotRepo) FindInRange(_ context.Context, providerID int64, from, until time.Time) ([]domain.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filter(func(t domain.TimeSlot) bool {
		return t.ProviderID == providerID && !t.Start.Before(from) && t.Start.Before(until)
	}), nil
}

func (r *SlotRepo) FindByProvider(_ context.Context, providerID int64) ([]domain.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filter(func(t domain.TimeSlot) bool {
		return t.ProviderID == providerID
	}), nil
}

func (r *SlotRepo) FindFreeInRange(_ context.Context, providerID int64, from, until time.Time) ([]domain.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filter(func(t domain.TimeSlot) bool {
		return t.ProviderID == providerID && t.IsFree() && !t.Start.Before(from) && t.Start.Before(until)
	}), nil
}

func (r *SlotRepo) FindByKey(_ context.Context, key domain.SlotKey) (*domain.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[key]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *SlotRepo) Insert(_ context.Context, slots []domain.TimeSlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Writes++
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: %v", slotRepo.ErrCorruptedSlot, err)
		}
		if _, exists := r.s.slots[slot.Key()]; exists {
			return fmt.Errorf("%w: duplicate slot %s", slotRepo.ErrExecQuery, slot.Key())
		}
		slot.ReservationID = nil
		r.s.slots[slot.Key()] = slot
	}
	return nil
}

func (r *SlotRepo) Delete(_ context.Context, slots []domain.TimeSlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Writes++
	for _, slot := range slots {
		current, ok := r.s.slots[slot.Key()]
		if !ok || !current.IsFree() {
			return fmt.Errorf("%w: %s", slotRepo.ErrSlotReserved, slot.Key())
		}
		delete(r.s.slots, slot.Key())
	}
	return nil
}

func (r *SlotRepo) Bind(_ context.Context, reservationID int64, keys []domain.SlotKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Writes++
	for _, key := range keys {
		slot, ok := r.s.slots[key]
		if !ok || !(slot.IsFree() || slot.IsReservedBy(reservationID)) {
			return fmt.Errorf("%w: %s", slotRepo.ErrSlotsChanged, key)
		}
		id := reservationID
		slot.ReservationID = &id
		r.s.slots[key] = slot
	}
	return nil
}

func (r *SlotRepo) Release(_ context.Context, reservationID int64, keys []domain.SlotKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Writes++
	for _, key := range keys {
		slot, ok := r.s.slots[key]
		if ok && slot.IsReservedBy(reservationID) {
			slot.ReservationID = nil
			r.s.slots[key] = slot
		}
	}
	return nil
}

func (r *SlotRepo) ReleaseAll(_ context.Context, reservationID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Writes++
	var released int64
	for key, slot := range r.s.slots {
		if slot.IsReservedBy(reservationID) {
			slot.ReservationID = nil
			r.s.slots[key] = slot
			released++
		}
	}
	return released, nil
}

type ReservationRepo struct{ s *Store }

func (r *ReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Writes++
	res.ID = r.s.nextID
	r.s.nextID++
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	stored := *res
	stored.Slots = nil
	r.s.reservations[res.ID] = stored
	return res, nil
}

func (r *ReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	res.Slots = make([]domain.SlotKey, 0)
	for _, slot := range r.s.filter(func(t domain.TimeSlot) bool { return t.IsReservedBy(id) }) {
		res.Slots = append(res.Slots, slot.Key())
	}
	return &res, nil
}

func (r *ReservationRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Reservation, 0, len(ids))
	for _, id := range ids {
		if res, ok := r.s.reservations[id]; ok {
			cp := res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ReservationRepo) Update(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Writes++
	prev, ok := r.s.reservations[res.ID]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	res.CreatedAt = prev.CreatedAt
	res.UpdatedAt = time.Now().UTC()
	stored := *res
	stored.Slots = nil
	r.s.reservations[res.ID] = stored
	return res, nil
}

func (r *ReservationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Writes++
	if _, ok := r.s.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(r.s.reservations, id)
	return nil
}
