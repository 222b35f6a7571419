package blog

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput wraps validator failures on operator input.
var ErrInvalidInput = errors.New("invalid blog post")

type Service struct {
	repo     *Repository
	renderer *Renderer
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo *Repository) *Service {
	return &Service{
		repo:     repo,
		renderer: NewRenderer(),
		validate: validator.New(),
		now:      time.Now,
	}
}

// Article is a published post with its rendered body.
type Article struct {
	Post
	BodyHTML template.HTML
}

func (s *Service) Create(ctx context.Context, in Input) (*Post, error) {
	in, err := s.clean(in)
	if err != nil {
		return nil, err
	}
	p := &Post{}
	s.apply(p, in)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update overwrites the post at slug. The first publication stamps PublishedAt.
func (s *Service) Update(ctx context.Context, slug string, in Input) (*Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = p.Slug
	}
	in, err = s.clean(in)
	if err != nil {
		return nil, err
	}
	s.apply(p, in)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Published returns the rendered article at slug; drafts are ErrNotFound.
func (s *Service) Published(ctx context.Context, slug string) (*Article, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, ErrNotFound
	}
	body, err := s.renderer.HTML(p.BodyMarkdown)
	if err != nil {
		return nil, err
	}
	return &Article{Post: *p, BodyHTML: body}, nil
}

func (s *Service) ListPublished(ctx context.Context) ([]Post, error) {
	return s.repo.ListPublished(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) clean(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	in.ImageRef = strings.TrimSpace(in.ImageRef)
	if err := s.validate.Struct(in); err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	in.Slug = Slugify(firstNonBlank(in.Slug, in.Title))
	if in.Slug == "" {
		return in, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
	}
	return in, nil
}

func (s *Service) apply(p *Post, in Input) {
	p.Slug = in.Slug
	p.Title = in.Title
	p.Summary = in.Summary
	p.BodyMarkdown = in.BodyMarkdown
	p.ImageRef = in.ImageRef
	if in.Published && p.PublishedAt == nil {
		at := s.now().UTC()
		p.PublishedAt = &at
	}
	p.Published = in.Published
}

// Slugify lowercases s and joins its letter and digit runs with single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
