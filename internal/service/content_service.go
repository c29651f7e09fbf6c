package service

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"alcyxob/gym-admin/internal/storage"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrStorageDisabled = errors.New("object storage is not configured")

const thumbnailPrefix = "thumbnails"

type ContentInput struct {
	Title        string
	Type         domain.ContentType
	Description  string
	ThumbnailURL string // Absolute URL or object key from RequestThumbnailUpload
}

// ThumbnailUpload tells the client where to PUT the image and which key to
// send back when creating the content item.
type ThumbnailUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ContentService interface {
	// ListContent returns the library newest upload first.
	ListContent(ctx context.Context) ([]domain.FitnessContent, error)
	GetContent(ctx context.Context, id string) (*domain.FitnessContent, error)
	CreateContent(ctx context.Context, in ContentInput) (*domain.FitnessContent, error)
	DeleteContent(ctx context.Context, id string) error
	RequestThumbnailUpload(ctx context.Context, contentType string) (*ThumbnailUpload, error)
	// ThumbnailURL resolves the stored reference into a loadable URL.
	ThumbnailURL(ctx context.Context, item *domain.FitnessContent) (string, error)
}

type contentService struct {
	content     repository.ContentRepository
	fileStorage storage.FileStorage
	logger      zerolog.Logger
	now         func() time.Time
}

// NewContentService creates the library service. fileStorage may be nil, in
// which case thumbnails must be absolute URLs.
func NewContentService(content repository.ContentRepository, fileStorage storage.FileStorage, logger zerolog.Logger) ContentService {
	return &contentService{
		content:     content,
		fileStorage: fileStorage,
		logger:      logger.With().Str("component", "content").Logger(),
		now:         time.Now,
	}
}

func (s *contentService) ListContent(ctx context.Context) ([]domain.FitnessContent, error) {
	items, err := s.content.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.FitnessContent{}
	}
	return items, nil
}

func (s *contentService) GetContent(ctx context.Context, id string) (*domain.FitnessContent, error) {
	item, err := s.content.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrContentNotFound)
	}
	return item, nil
}

func (s *contentService) CreateContent(ctx context.Context, in ContentInput) (*domain.FitnessContent, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationError("title is required")
	}
	if !in.Type.Valid() {
		return nil, validationError("content type must be Video or Image, got %q", in.Type)
	}

	item := &domain.FitnessContent{
		Title:        title,
		Type:         in.Type,
		Description:  in.Description,
		ThumbnailURL: strings.TrimSpace(in.ThumbnailURL),
		UploadDate:   s.now().UTC(),
	}
	if _, err := s.content.Create(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Str("content_id", item.ID).Str("type", string(item.Type)).Msg("content added")
	return item, nil
}

// DeleteContent removes the item and, best effort, its stored thumbnail.
func (s *contentService) DeleteContent(ctx context.Context, id string) error {
	item, err := s.GetContent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.content.Delete(ctx, id); err != nil {
		return mapRepoErr(err, ErrContentNotFound)
	}

	if s.fileStorage != nil && storage.IsObjectKey(item.ThumbnailURL) {
		if err := s.fileStorage.DeleteObject(ctx, item.ThumbnailURL); err != nil {
			s.logger.Warn().Err(err).Str("key", item.ThumbnailURL).Msg("failed to delete thumbnail object")
		}
	}
	return nil
}

func (s *contentService) RequestThumbnailUpload(ctx context.Context, contentType string) (*ThumbnailUpload, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageDisabled
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") || contentType == "image/" {
		return nil, validationError("thumbnail must be an image, got %q", contentType)
	}

	key := storage.NewObjectKey(thumbnailPrefix, contentType)
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ThumbnailUpload{
		UploadURL: url,
		ObjectKey: key,
		ExpiresAt: s.now().UTC().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

func (s *contentService) ThumbnailURL(ctx context.Context, item *domain.FitnessContent) (string, error) {
	return storage.ResolveReference(ctx, s.fileStorage, item.ThumbnailURL)
}
