package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"photoshare-api/internal/models"

	"github.com/lib/pq"
)

func (r *Repository) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO photos (id, owner_id, url, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, photo.ID, photo.OwnerID, photo.URL, photo.Description, photo.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}

	return nil
}

// PhotoByID returns the photo enriched with its owner username, liker IDs
// and comments (author usernames resolved, insertion order).
func (r *Repository) PhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.url, p.description, p.owner_id, u.username, p.created_at
		FROM photos p
		JOIN users u ON p.owner_id = u.id
		WHERE p.id = $1
	`, id).Scan(&photo.ID, &photo.URL, &photo.Description, &photo.OwnerID, &photo.Owner, &photo.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select photo: %w", err)
	}

	likes, err := r.likesByPhoto(ctx, []string{photo.ID})
	if err != nil {
		return nil, err
	}
	photo.Likes = likes[photo.ID]
	if photo.Likes == nil {
		photo.Likes = []int{}
	}

	comments, err := r.CommentsByPhoto(ctx, photo.ID)
	if err != nil {
		return nil, err
	}
	photo.Comments = comments

	return &photo, nil
}

// ListPhotos returns all photos newest-first with the same enrichment as
// PhotoByID. Likes and comments are fetched in one batch query each.
func (r *Repository) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.url, p.description, p.owner_id, u.username, p.created_at
		FROM photos p
		JOIN users u ON p.owner_id = u.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select photos: %w", err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	ids := []string{}
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(&photo.ID, &photo.URL, &photo.Description, &photo.OwnerID, &photo.Owner, &photo.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photo.Likes = []int{}
		photo.Comments = []models.Comment{}
		photos = append(photos, photo)
		ids = append(ids, photo.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	if len(photos) == 0 {
		return photos, nil
	}

	likes, err := r.likesByPhoto(ctx, ids)
	if err != nil {
		return nil, err
	}

	comments, err := r.commentsByPhotos(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range photos {
		if l, ok := likes[photos[i].ID]; ok {
			photos[i].Likes = l
		}
		if c, ok := comments[photos[i].ID]; ok {
			photos[i].Comments = c
		}
	}

	return photos, nil
}

func (r *Repository) UpdatePhotoDescription(ctx context.Context, id, description string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE photos SET description = $1 WHERE id = $2
	`, description, id)
	if err != nil {
		return fmt.Errorf("update photo description: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update photo description: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeletePhoto removes the photo; its likes and comments go with it via the
// ON DELETE CASCADE foreign keys.
func (r *Repository) DeletePhoto(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) HasLike(ctx context.Context, photoID string, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM photo_likes WHERE photo_id = $1 AND user_id = $2)
	`, photoID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("select like: %w", err)
	}
	return exists, nil
}

func (r *Repository) AddLike(ctx context.Context, photoID string, userID int) error {
	// The composite primary key keeps the like set free of duplicates even
	// if two toggles race.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO photo_likes (photo_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, photoID, userID)
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *Repository) RemoveLike(ctx context.Context, photoID string, userID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM photo_likes WHERE photo_id = $1 AND user_id = $2
	`, photoID, userID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

func (r *Repository) CountLikes(ctx context.Context, photoID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM photo_likes WHERE photo_id = $1
	`, photoID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (r *Repository) likesByPhoto(ctx context.Context, photoIDs []string) (map[string][]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT photo_id, user_id FROM photo_likes WHERE photo_id = ANY($1::uuid[])
	`, pq.Array(photoIDs))
	if err != nil {
		return nil, fmt.Errorf("select likes: %w", err)
	}
	defer rows.Close()

	likes := make(map[string][]int)
	for rows.Next() {
		var photoID string
		var userID int
		if err := rows.Scan(&photoID, &userID); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes[photoID] = append(likes[photoID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate likes: %w", err)
	}

	return likes, nil
}
