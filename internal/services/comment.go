package services

import (
	"context"
	"time"

	"photoshare-api/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CommentStore interface {
	PhotoByID(ctx context.Context, id string) (*models.Photo, error)
	AddComment(ctx context.Context, photoID string, comment *models.Comment) error
	CommentsByPhoto(ctx context.Context, photoID string) ([]models.Comment, error)
	CommentByID(ctx context.Context, photoID, commentID string) (*models.Comment, error)
	DeleteComment(ctx context.Context, photoID, commentID string) error
}

type CommentService struct {
	store CommentStore
	log   *logrus.Logger
}

func NewCommentService(store CommentStore, log *logrus.Logger) *CommentService {
	return &CommentService{store: store, log: log}
}

// Add appends a comment to the photo and returns the full comment sequence
// in insertion order.
func (s *CommentService) Add(ctx context.Context, photoID string, authorID int, text string) ([]models.Comment, error) {
	if err := validateID(photoID); err != nil {
		return nil, err
	}

	if _, err := s.store.PhotoByID(ctx, photoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.AddComment(ctx, photoID, comment); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"photoId": photoID, "commentId": comment.ID}).Info("comment added")
	return s.store.CommentsByPhoto(ctx, photoID)
}

// Remove deletes a comment; only its author may do so. A missing photo and a
// missing comment are indistinguishable to the caller.
func (s *CommentService) Remove(ctx context.Context, photoID, commentID string, callerID int) error {
	if err := validateID(photoID, commentID); err != nil {
		return err
	}

	comment, err := s.store.CommentByID(ctx, photoID, commentID)
	if err != nil {
		return err
	}

	if err := authorizeOwner(comment.AuthorID, callerID); err != nil {
		return err
	}

	return s.store.DeleteComment(ctx, photoID, commentID)
}
