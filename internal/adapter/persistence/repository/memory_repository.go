package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"
)

// MemoryStore keeps every aggregate in process memory. It backs local runs and
// tests; one mutex per aggregate makes each operation atomic.
type MemoryStore struct {
	Quotes       *QuoteMemoryRepository
	ChangeOrders *ChangeOrderMemoryRepository
	Detailers    *DetailerMemoryRepository
	Payments     *BillingPaymentMemoryRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Quotes:       &QuoteMemoryRepository{byID: map[string]entities.Quote{}, byLink: map[string]string{}},
		ChangeOrders: &ChangeOrderMemoryRepository{byID: map[string]entities.ChangeOrder{}, byToken: map[string]string{}},
		Detailers:    &DetailerMemoryRepository{byID: map[string]entities.Detailer{}},
		Payments:     &BillingPaymentMemoryRepository{byID: map[string]entities.BillingPayment{}},
	}
}

type QuoteMemoryRepository struct {
	mu     sync.Mutex
	byID   map[string]entities.Quote
	byLink map[string]string
}

var _ interfaces.IQuoteRepository = (*QuoteMemoryRepository)(nil)

func (r *QuoteMemoryRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[q.ID]; ok {
		return entities.Quote{}, interfaces.ErrDuplicateKey
	}
	if _, ok := r.byLink[q.ShareLink]; ok {
		return entities.Quote{}, interfaces.ErrDuplicateKey
	}
	r.byID[q.ID] = q
	r.byLink[q.ShareLink] = q.ID
	return q, nil
}

func (r *QuoteMemoryRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *QuoteMemoryRepository) GetByShareLink(_ context.Context, shareLink string) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byLink[shareLink]
	if !ok {
		return entities.Quote{}, nil
	}
	return r.byID[id], nil
}

func (r *QuoteMemoryRepository) ListByDetailerID(_ context.Context, detailerID string) ([]entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []entities.Quote{}
	for _, q := range r.byID {
		if q.DetailerID == detailerID {
			items = append(items, q)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *QuoteMemoryRepository) RecordView(_ context.Context, id string, view entities.QuoteView) (interfaces.RecordViewResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.byID[id]
	if !ok || q.Status.FreezesViewTracking() {
		return interfaces.RecordViewResult{}, nil
	}
	first := q.ViewedAt == nil
	q = applyView(q, view, first)
	r.byID[id] = q
	return interfaces.RecordViewResult{Quote: q, FirstView: first, Applied: true}, nil
}

func (r *QuoteMemoryRepository) TransitionStatus(_ context.Context, id string, from []entities.QuoteStatus, to entities.QuoteStatus, at time.Time) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.byID[id]
	if !ok || !containsStatus(from, q.Status) {
		return entities.Quote{}, nil
	}
	at = at.UTC()
	q.Status = to
	q.UpdatedAt = at
	switch to {
	case entities.QuoteStatusSent:
		q.SentAt = &at
	case entities.QuoteStatusApproved:
		q.ApprovedAt = &at
	case entities.QuoteStatusPaid:
		q.PaidAt = &at
	}
	r.byID[id] = q
	return q, nil
}

func containsStatus(list []entities.QuoteStatus, s entities.QuoteStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type ChangeOrderMemoryRepository struct {
	mu      sync.Mutex
	byID    map[string]entities.ChangeOrder
	byToken map[string]string
}

var _ interfaces.IChangeOrderRepository = (*ChangeOrderMemoryRepository)(nil)

func (r *ChangeOrderMemoryRepository) Create(_ context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[co.ID]; ok {
		return entities.ChangeOrder{}, interfaces.ErrDuplicateKey
	}
	if _, ok := r.byToken[co.ApprovalToken]; ok {
		return entities.ChangeOrder{}, interfaces.ErrDuplicateKey
	}
	r.byID[co.ID] = co
	r.byToken[co.ApprovalToken] = co.ID
	return co, nil
}

func (r *ChangeOrderMemoryRepository) GetByApprovalToken(_ context.Context, token string) (entities.ChangeOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byToken[token]
	if !ok {
		return entities.ChangeOrder{}, nil
	}
	return r.byID[id], nil
}

func (r *ChangeOrderMemoryRepository) ListByQuoteID(_ context.Context, quoteID string) ([]entities.ChangeOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []entities.ChangeOrder{}
	for _, co := range r.byID {
		if co.QuoteID == quoteID {
			items = append(items, co)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (r *ChangeOrderMemoryRepository) Decide(_ context.Context, id string, status entities.ChangeOrderStatus, at time.Time) (entities.ChangeOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	co, ok := r.byID[id]
	if !ok || co.Status != entities.ChangeOrderStatusPending {
		return entities.ChangeOrder{}, nil
	}
	at = at.UTC()
	co.Status = status
	co.DecidedAt = &at
	co.UpdatedAt = at
	r.byID[id] = co
	return co, nil
}

type DetailerMemoryRepository struct {
	mu   sync.Mutex
	byID map[string]entities.Detailer
}

var _ interfaces.IDetailerRepository = (*DetailerMemoryRepository)(nil)

// Seed stores d as-is, replacing any detailer with the same id.
func (r *DetailerMemoryRepository) Seed(d entities.Detailer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[d.ID] = d
}

func (r *DetailerMemoryRepository) GetByID(_ context.Context, id string) (entities.Detailer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *DetailerMemoryRepository) SaveExternalAccount(_ context.Context, detailerID, accountID string, linkedAt time.Time) (entities.Detailer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[detailerID]
	if !ok {
		return entities.Detailer{}, nil
	}
	linkedAt = linkedAt.UTC()
	d.ExternalAccountID = accountID
	d.ExternalAccountLinkedAt = &linkedAt
	d.UpdatedAt = linkedAt
	r.byID[detailerID] = d
	return d, nil
}

type BillingPaymentMemoryRepository struct {
	mu   sync.Mutex
	byID map[string]entities.BillingPayment
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentMemoryRepository)(nil)

func (r *BillingPaymentMemoryRepository) Create(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; ok {
		return entities.BillingPayment{}, interfaces.ErrDuplicateKey
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *BillingPaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.BillingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *BillingPaymentMemoryRepository) ListByQuoteID(_ context.Context, quoteID string) ([]entities.BillingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []entities.BillingPayment{}
	for _, p := range r.byID {
		if p.QuoteID == quoteID {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}
