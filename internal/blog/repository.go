package blog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("blog post not found")
	ErrSlugTaken = errors.New("blog slug already in use")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Post{}); err != nil {
		return fmt.Errorf("migrate blog_posts: %w", err)
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, p *Post) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return fmt.Errorf("insert blog post %q: %w", p.Slug, err)
	}
	return nil
}

func (r *Repository) Save(ctx context.Context, p *Post) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return fmt.Errorf("update blog post %q: %w", p.Slug, err)
	}
	return nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var p Post
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load blog post %q: %w", slug, err)
	}
	return &p, nil
}

// ListPublished returns published posts, most recently published first.
func (r *Repository) ListPublished(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at desc, id desc").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

// ListAll returns every post, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
