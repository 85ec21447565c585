package services

import (
	"context"
	"time"

	"photoshare-api/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PhotoStore interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) error
	PhotoByID(ctx context.Context, id string) (*models.Photo, error)
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	UpdatePhotoDescription(ctx context.Context, id, description string) error
	DeletePhoto(ctx context.Context, id string) error
	HasLike(ctx context.Context, photoID string, userID int) (bool, error)
	AddLike(ctx context.Context, photoID string, userID int) error
	RemoveLike(ctx context.Context, photoID string, userID int) error
	CountLikes(ctx context.Context, photoID string) (int, error)
}

type PhotoService struct {
	store PhotoStore
	log   *logrus.Logger
}

func NewPhotoService(store PhotoStore, log *logrus.Logger) *PhotoService {
	return &PhotoService{store: store, log: log}
}

// Create records an already-uploaded photo. The caller identity becomes the
// owner and is fixed for the photo's lifetime.
func (s *PhotoService) Create(ctx context.Context, ownerID int, url, description string) (*models.Photo, error) {
	photo := &models.Photo{
		ID:          uuid.NewString(),
		URL:         url,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"photoId": photo.ID, "ownerId": ownerID}).Info("photo created")

	// Re-read so the response carries the resolved owner username.
	return s.store.PhotoByID(ctx, photo.ID)
}

func (s *PhotoService) List(ctx context.Context) ([]models.Photo, error) {
	return s.store.ListPhotos(ctx)
}

func (s *PhotoService) Get(ctx context.Context, id string) (*models.Photo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.PhotoByID(ctx, id)
}

func (s *PhotoService) UpdateDescription(ctx context.Context, photoID string, callerID int, description string) (*models.Photo, error) {
	if err := validateID(photoID); err != nil {
		return nil, err
	}

	photo, err := s.store.PhotoByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	if err := authorizeOwner(photo.OwnerID, callerID); err != nil {
		return nil, err
	}

	if err := s.store.UpdatePhotoDescription(ctx, photoID, description); err != nil {
		return nil, err
	}

	photo.Description = description
	return photo, nil
}

// ToggleLike adds the caller to the photo's like set, or removes them if
// already present. Returns the resulting like count.
func (s *PhotoService) ToggleLike(ctx context.Context, photoID string, callerID int) (int, error) {
	if err := validateID(photoID); err != nil {
		return 0, err
	}

	if _, err := s.store.PhotoByID(ctx, photoID); err != nil {
		return 0, err
	}

	liked, err := s.store.HasLike(ctx, photoID, callerID)
	if err != nil {
		return 0, err
	}

	if liked {
		err = s.store.RemoveLike(ctx, photoID, callerID)
	} else {
		err = s.store.AddLike(ctx, photoID, callerID)
	}
	if err != nil {
		return 0, err
	}

	return s.store.CountLikes(ctx, photoID)
}

// Delete removes the photo; embedded comments and likes cascade with it.
func (s *PhotoService) Delete(ctx context.Context, photoID string, callerID int) error {
	if err := validateID(photoID); err != nil {
		return err
	}

	photo, err := s.store.PhotoByID(ctx, photoID)
	if err != nil {
		return err
	}

	if err := authorizeOwner(photo.OwnerID, callerID); err != nil {
		return err
	}

	if err := s.store.DeletePhoto(ctx, photoID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"photoId": photoID, "ownerId": callerID}).Info("photo deleted")
	return nil
}
