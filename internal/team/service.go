package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/expertgati/movers-web/internal/media"
)

var (
	ErrNotFound     = errors.New("team member not found")
	ErrInvalidInput = errors.New("invalid team member")
)

// Service stores team members and their validated photos.
type Service struct {
	db       *gorm.DB
	store    *media.Store
	validate *validator.Validate
	log      *zap.Logger
}

func NewService(db *gorm.DB, store *media.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, store: store, validate: validator.New(), log: log}
}

func (s *Service) Migrate() error {
	if err := s.db.AutoMigrate(&Member{}); err != nil {
		return fmt.Errorf("migrate team_members: %w", err)
	}
	return nil
}

// List returns members in display order.
func (s *Service) List(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := s.db.WithContext(ctx).Order("position asc, id asc").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return members, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Member, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	in.Bio = strings.TrimSpace(in.Bio)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	m := &Member{Name: in.Name, Role: in.Role, Bio: in.Bio, Position: in.Position}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("insert team member: %w", err)
	}
	return m, nil
}

// SetPhoto validates data as a square portrait and stores it. Constraint failures are
// returned as *media.ConstraintError.
func (s *Service) SetPhoto(ctx context.Context, id uint, data []byte) (*Member, error) {
	var m Member
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load team member %d: %w", id, err)
	}

	info, err := media.ValidateSquarePhoto(data)
	if err != nil {
		return nil, err
	}
	ref, err := s.store.Save("team", media.Extension(info.Format), data)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&m).Update("photo_ref", ref).Error; err != nil {
		if rerr := s.store.Remove(ref); rerr != nil {
			s.log.Warn("remove orphaned team photo", zap.String("ref", ref), zap.Error(rerr))
		}
		return nil, fmt.Errorf("update team member %d photo: %w", id, err)
	}
	m.PhotoRef = ref
	s.log.Info("team photo stored", zap.Uint("member", id), zap.String("ref", ref),
		zap.Int("width", info.Width), zap.Int("bytes", info.Size))
	return &m, nil
}
