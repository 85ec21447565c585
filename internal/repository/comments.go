package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"photoshare-api/internal/models"

	"github.com/lib/pq"
)

func (r *Repository) AddComment(ctx context.Context, photoID string, comment *models.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, photo_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, comment.ID, photoID, comment.AuthorID, comment.Text, comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// CommentsByPhoto returns a photo's comments in insertion order with author
// usernames resolved.
func (r *Repository) CommentsByPhoto(ctx context.Context, photoID string) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.text, c.author_id, u.username, c.created_at
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.photo_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`, photoID)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.Text, &comment.AuthorID, &comment.Author, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

func (r *Repository) commentsByPhotos(ctx context.Context, photoIDs []string) (map[string][]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.photo_id, c.id, c.text, c.author_id, u.username, c.created_at
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.photo_id = ANY($1::uuid[])
		ORDER BY c.created_at ASC, c.id ASC
	`, pq.Array(photoIDs))
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer rows.Close()

	comments := make(map[string][]models.Comment)
	for rows.Next() {
		var photoID string
		var comment models.Comment
		if err := rows.Scan(&photoID, &comment.ID, &comment.Text, &comment.AuthorID, &comment.Author, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments[photoID] = append(comments[photoID], comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

func (r *Repository) CommentByID(ctx context.Context, photoID, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.QueryRowContext(ctx, `
		SELECT c.id, c.text, c.author_id, u.username, c.created_at
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.photo_id = $1 AND c.id = $2
	`, photoID, commentID).Scan(&comment.ID, &comment.Text, &comment.AuthorID, &comment.Author, &comment.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select comment: %w", err)
	}

	return &comment, nil
}

func (r *Repository) DeleteComment(ctx context.Context, photoID, commentID string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM comments WHERE photo_id = $1 AND id = $2
	`, photoID, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
