package lead

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Page selects a window of a newest-first listing.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Repository persists lead submissions. Rows are insert-only.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&ContactSubmission{}, &MovingRequest{}); err != nil {
		return fmt.Errorf("migrate lead tables: %w", err)
	}
	return nil
}

func (r *Repository) CreateContact(ctx context.Context, s *ContactSubmission) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

func (r *Repository) CreateMovingRequest(ctx context.Context, m *MovingRequest) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert moving request: %w", err)
	}
	return nil
}

// ListContacts returns one page of contact submissions, newest first, and the total count.
func (r *Repository) ListContacts(ctx context.Context, p Page) ([]ContactSubmission, int64, error) {
	p = p.normalized()
	var (
		rows  []ContactSubmission
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&ContactSubmission{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count contact submissions: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list contact submissions: %w", err)
	}
	return rows, total, nil
}

// ListMovingRequests returns one page of moving requests, newest first, and the total count.
func (r *Repository) ListMovingRequests(ctx context.Context, p Page) ([]MovingRequest, int64, error) {
	p = p.normalized()
	var (
		rows  []MovingRequest
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&MovingRequest{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count moving requests: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list moving requests: %w", err)
	}
	return rows, total, nil
}

// RecentHits returns the client IP and time of every submission of either kind since the
// given instant.
func (r *Repository) RecentHits(ctx context.Context, since time.Time) ([]IPHit, error) {
	var hits []IPHit
	for _, model := range []any{&ContactSubmission{}, &MovingRequest{}} {
		var batch []IPHit
		err := r.db.WithContext(ctx).Model(model).
			Select("ip_address", "created_at").
			Where("created_at > ? AND ip_address <> ''", since).
			Find(&batch).Error
		if err != nil {
			return nil, fmt.Errorf("load recent submissions: %w", err)
		}
		hits = append(hits, batch...)
	}
	return hits, nil
}
