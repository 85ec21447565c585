package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sort"
	"time"

	"photoshare-api/internal/models"
	"photoshare-api/internal/repository"
	"photoshare-api/internal/services"
	"photoshare-api/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fakeStore backs the real services in handler tests, with the same
// semantics the repository provides over Postgres.
type fakeStore struct {
	users      map[string]*models.User
	nextUserID int
	photos     map[string]*models.Photo
	likes      map[string]map[int]bool
	comments   map[string][]models.Comment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[string]*models.User),
		nextUserID: 1,
		photos:     make(map[string]*models.Photo),
		likes:      make(map[string]map[int]bool),
		comments:   make(map[string][]models.Comment),
	}
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	user.ID = f.nextUserID
	f.nextUserID++
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) UserByID(ctx context.Context, id int) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) usernameByID(id int) string {
	for _, user := range f.users {
		if user.ID == id {
			return user.Username
		}
	}
	return ""
}

func (f *fakeStore) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	stored := *photo
	f.photos[photo.ID] = &stored
	f.likes[photo.ID] = make(map[int]bool)
	return nil
}

func (f *fakeStore) PhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	// A uuid column rejects malformed input outright; it never reads as an
	// absent row.
	if uuid.Validate(id) != nil {
		return nil, errors.New("invalid input syntax for type uuid")
	}
	photo, ok := f.photos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *photo
	copied.Owner = f.usernameByID(photo.OwnerID)
	copied.Likes = []int{}
	for userID := range f.likes[id] {
		copied.Likes = append(copied.Likes, userID)
	}
	copied.Comments = append([]models.Comment{}, f.comments[id]...)
	return &copied, nil
}

func (f *fakeStore) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	list := []models.Photo{}
	for id := range f.photos {
		photo, _ := f.PhotoByID(ctx, id)
		list = append(list, *photo)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (f *fakeStore) UpdatePhotoDescription(ctx context.Context, id, description string) error {
	photo, ok := f.photos[id]
	if !ok {
		return repository.ErrNotFound
	}
	photo.Description = description
	return nil
}

func (f *fakeStore) DeletePhoto(ctx context.Context, id string) error {
	if _, ok := f.photos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.photos, id)
	delete(f.likes, id)
	delete(f.comments, id)
	return nil
}

func (f *fakeStore) HasLike(ctx context.Context, photoID string, userID int) (bool, error) {
	return f.likes[photoID][userID], nil
}

func (f *fakeStore) AddLike(ctx context.Context, photoID string, userID int) error {
	f.likes[photoID][userID] = true
	return nil
}

func (f *fakeStore) RemoveLike(ctx context.Context, photoID string, userID int) error {
	delete(f.likes[photoID], userID)
	return nil
}

func (f *fakeStore) CountLikes(ctx context.Context, photoID string) (int, error) {
	return len(f.likes[photoID]), nil
}

func (f *fakeStore) AddComment(ctx context.Context, photoID string, comment *models.Comment) error {
	if _, ok := f.photos[photoID]; !ok {
		return repository.ErrNotFound
	}
	stored := *comment
	stored.Author = f.usernameByID(comment.AuthorID)
	f.comments[photoID] = append(f.comments[photoID], stored)
	return nil
}

func (f *fakeStore) CommentsByPhoto(ctx context.Context, photoID string) ([]models.Comment, error) {
	return append([]models.Comment{}, f.comments[photoID]...), nil
}

func (f *fakeStore) CommentByID(ctx context.Context, photoID, commentID string) (*models.Comment, error) {
	if uuid.Validate(photoID) != nil || uuid.Validate(commentID) != nil {
		return nil, errors.New("invalid input syntax for type uuid")
	}
	for _, comment := range f.comments[photoID] {
		if comment.ID == commentID {
			copied := comment
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) DeleteComment(ctx context.Context, photoID, commentID string) error {
	list := f.comments[photoID]
	for i, comment := range list {
		if comment.ID == commentID {
			f.comments[photoID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeRelay struct {
	url string
	err error
}

func (f *fakeRelay) Store(ctx context.Context, body io.Reader, filename, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testJWTUtil() *utils.JWTUtil {
	return utils.NewJWTUtil("test-secret", 2*time.Hour)
}

type testEnv struct {
	store    *fakeStore
	users    *services.UserService
	photos   *services.PhotoService
	comments *services.CommentService
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	logger := testLogger()
	return &testEnv{
		store:    store,
		users:    services.NewUserService(store, testJWTUtil(), logger),
		photos:   services.NewPhotoService(store, logger),
		comments: services.NewCommentService(store, logger),
	}
}

// seedUser registers a user directly through the store, skipping bcrypt to
// keep tests fast where the password is irrelevant.
func (e *testEnv) seedUser(username, email string) *models.User {
	user := &models.User{Username: username, Email: email, Password: "x", CreatedAt: time.Now().UTC()}
	_ = e.store.CreateUser(context.Background(), user)
	return user
}

// asCaller attaches verified claims the way JWTMiddleware would.
func asCaller(r *http.Request, user *models.User) *http.Request {
	claims := &utils.Claims{UserID: user.ID, Username: user.Username}
	return r.WithContext(context.WithValue(r.Context(), userClaimsKey, claims))
}
