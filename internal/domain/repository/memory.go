package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
)

// In-memory implementations of every repository, guarded by a single RWMutex.
// They back the service tests and the storage-free demo mode; callers always
// receive copies so a held pointer never aliases store state.

type memSubmissionKey struct {
	activityID int
	studentID  string
}

type MemorySubmissionRepository struct {
	mu   sync.RWMutex
	subs map[memSubmissionKey]model.Submission
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{subs: map[memSubmissionKey]model.Submission{}}
}

func (r *MemorySubmissionRepository) Upsert(_ context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[memSubmissionKey{sub.ActivityID, sub.StudentID}] = *sub
	return nil
}

func (r *MemorySubmissionRepository) Find(_ context.Context, activityID int, studentID string) (*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[memSubmissionKey{activityID, studentID}]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := sub
	return &out, nil
}

func (r *MemorySubmissionRepository) ListPending(_ context.Context) ([]model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Submission
	for _, sub := range r.subs {
		if sub.Status == model.StatusPending {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out, nil
}

func (r *MemorySubmissionRepository) ListByStudent(_ context.Context, studentID string) ([]model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Submission
	for _, sub := range r.subs {
		if sub.StudentID == studentID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (r *MemorySubmissionRepository) SetStatus(_ context.Context, activityID int, studentID string, from, to model.SubmissionStatus, reviewedAt *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memSubmissionKey{activityID, studentID}
	sub, ok := r.subs[key]
	if !ok || sub.Status != from {
		return false, nil
	}
	sub.Status = to
	if reviewedAt != nil {
		sub.ReviewedAt = reviewedAt
	}
	r.subs[key] = sub
	return true, nil
}

func (r *MemorySubmissionRepository) Delete(_ context.Context, activityID int, studentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memSubmissionKey{activityID, studentID}
	if _, ok := r.subs[key]; !ok {
		return false, nil
	}
	delete(r.subs, key)
	return true, nil
}

type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]model.UserProfile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: map[string]model.UserProfile{}}
}

func (r *MemoryProfileRepository) Create(_ context.Context, p *model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; ok {
		return common.ErrConflict
	}
	r.profiles[p.ID] = *p
	return nil
}

func (r *MemoryProfileRepository) Find(_ context.Context, id string) (*model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *MemoryProfileRepository) Credit(_ context.Context, id string, amount int) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	p.Tokens += amount
	p.TotalEarned += amount
	r.profiles[id] = p
	out := p
	return &out, nil
}

func (r *MemoryProfileRepository) Debit(_ context.Context, id string, amount int) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if p.Tokens < amount {
		return nil, common.ErrInsufficientBalance
	}
	p.Tokens -= amount
	r.profiles[id] = p
	out := p
	return &out, nil
}

type MemoryTransactionRepository struct {
	mu  sync.RWMutex
	txs []model.Transaction
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{}
}

func (r *MemoryTransactionRepository) Append(_ context.Context, tx *model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *MemoryTransactionRepository) List(_ context.Context, limit, offset int) ([]model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Newest first, matching the pg ordering.
	out := make([]model.Transaction, 0, len(r.txs))
	for i := len(r.txs) - 1; i >= 0; i-- {
		out = append(out, r.txs[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryTransactionRepository) ListByAccount(_ context.Context, account string) ([]model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Transaction
	for i := len(r.txs) - 1; i >= 0; i-- {
		if r.txs[i].From == account || r.txs[i].To == account {
			out = append(out, r.txs[i])
		}
	}
	return out, nil
}

type MemoryCertificateRepository struct {
	mu    sync.RWMutex
	certs map[string]model.Certificate
	order []string
}

func NewMemoryCertificateRepository() *MemoryCertificateRepository {
	return &MemoryCertificateRepository{certs: map[string]model.Certificate{}}
}

func (r *MemoryCertificateRepository) Create(_ context.Context, c *model.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.certs[c.ID] = *c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemoryCertificateRepository) Find(_ context.Context, id string) (*model.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.certs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := c
	return &out, nil
}

func (r *MemoryCertificateRepository) ListByStudent(_ context.Context, studentID string) ([]model.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Certificate
	for i := len(r.order) - 1; i >= 0; i-- {
		if c := r.certs[r.order[i]]; c.StudentID == studentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryCertificateRepository) SetStatus(_ context.Context, id string, from, to model.CertificateStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.certs[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	r.certs[id] = c
	return true, nil
}

type MemoryActivityRepository struct {
	mu         sync.RWMutex
	activities map[int]model.Activity
}

func NewMemoryActivityRepository(activities []model.Activity) *MemoryActivityRepository {
	m := map[int]model.Activity{}
	for _, a := range activities {
		m[a.ID] = a
	}
	return &MemoryActivityRepository{activities: m}
}

func (r *MemoryActivityRepository) Find(_ context.Context, id int) (*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.activities[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := a
	return &out, nil
}

func (r *MemoryActivityRepository) FindBySlug(_ context.Context, s string) (*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.activities {
		if a.Slug == s {
			out := a
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryActivityRepository) List(_ context.Context) ([]model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Activity, 0, len(r.activities))
	for _, a := range r.activities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type MemorySettingsRepository struct {
	mu       sync.RWMutex
	settings *model.AdminSettings
}

func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{}
}

func (r *MemorySettingsRepository) Get(_ context.Context) (*model.AdminSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return nil, common.ErrNotFound
	}
	out := *r.settings
	return &out, nil
}

func (r *MemorySettingsRepository) Save(_ context.Context, s *model.AdminSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.settings = &copied
	return nil
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]model.User{}}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return common.ErrConflict
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := u
	return &out, nil
}

var (
	_ SubmissionRepository  = (*MemorySubmissionRepository)(nil)
	_ ProfileRepository     = (*MemoryProfileRepository)(nil)
	_ TransactionRepository = (*MemoryTransactionRepository)(nil)
	_ CertificateRepository = (*MemoryCertificateRepository)(nil)
	_ ActivityRepository    = (*MemoryActivityRepository)(nil)
	_ SettingsRepository    = (*MemorySettingsRepository)(nil)
	_ UserRepository        = (*MemoryUserRepository)(nil)
)
