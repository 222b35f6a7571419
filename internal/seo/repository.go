package seo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("page metadata not found")
	ErrInvalidPageName = errors.New("page name is required")
)

// SeedResult reports how a bulk seed touched the table.
type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Repository is the only writer of the page_metadata table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the page_metadata table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&PageMetadata{}); err != nil {
		return fmt.Errorf("migrate page_metadata: %w", err)
	}
	return nil
}

// GetByPageName returns ErrNotFound when no record exists for name.
func (r *Repository) GetByPageName(ctx context.Context, name string) (*PageMetadata, error) {
	var meta PageMetadata
	err := r.db.WithContext(ctx).Where("page_name = ?", name).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load page metadata %q: %w", name, err)
	}
	return &meta, nil
}

// CreateOrGet returns the record for name, inserting one seeded from defaults when none exists.
// When two first requests race, the unique index rejects the second insert and that caller
// re-reads the winner's row.
func (r *Repository) CreateOrGet(ctx context.Context, name string, defaults Bundle) (*PageMetadata, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidPageName
	}

	existing, err := r.GetByPageName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	meta := &PageMetadata{PageName: name}
	defaults.applyTo(meta)
	if err := r.db.WithContext(ctx).Create(meta).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetByPageName(ctx, name)
		}
		return nil, fmt.Errorf("create page metadata %q: %w", name, err)
	}
	return meta, nil
}

// UpsertMany creates or overwrites each named page in a single transaction.
func (r *Repository) UpsertMany(ctx context.Context, entries []Bundle) (SeedResult, error) {
	var result SeedResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			name := strings.TrimSpace(entry.PageName)
			if name == "" {
				return ErrInvalidPageName
			}

			var meta PageMetadata
			err := tx.Where("page_name = ?", name).First(&meta).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				meta = PageMetadata{PageName: name}
				entry.applyTo(&meta)
				if err := tx.Create(&meta).Error; err != nil {
					return fmt.Errorf("create page metadata %q: %w", name, err)
				}
				result.Created++
			case err != nil:
				return fmt.Errorf("load page metadata %q: %w", name, err)
			default:
				entry.applyTo(&meta)
				if err := tx.Save(&meta).Error; err != nil {
					return fmt.Errorf("update page metadata %q: %w", name, err)
				}
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return result, nil
}

// List returns every record ordered by page name.
func (r *Repository) List(ctx context.Context) ([]PageMetadata, error) {
	var metas []PageMetadata
	if err := r.db.WithContext(ctx).Order("page_name asc").Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("list page metadata: %w", err)
	}
	return metas, nil
}

// Update overwrites the writable fields of an existing record.
func (r *Repository) Update(ctx context.Context, name string, bundle Bundle) (*PageMetadata, error) {
	meta, err := r.GetByPageName(ctx, name)
	if err != nil {
		return nil, err
	}
	bundle.applyTo(meta)
	if err := r.db.WithContext(ctx).Save(meta).Error; err != nil {
		return nil, fmt.Errorf("update page metadata %q: %w", name, err)
	}
	return meta, nil
}
