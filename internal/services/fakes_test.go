package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alphazero-wd/devzone/internal/domain"
	"github.com/alphazero-wd/devzone/internal/interfaces"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ---- fake user repository ----

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*domain.User
	files  *fakeFileRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*domain.User{}}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.NewEmail != nil {
		v := *u.NewEmail
		c.NewEmail = &v
	}
	if u.OldEmailToken != nil {
		v := *u.OldEmailToken
		c.OldEmailToken = &v
	}
	if u.NewEmailToken != nil {
		v := *u.NewEmailToken
		c.NewEmailToken = &v
	}
	if u.ConfirmedAt != nil {
		v := *u.ConfirmedAt
		c.ConfirmedAt = &v
	}
	if u.AvatarID != nil {
		v := *u.AvatarID
		c.AvatarID = &v
	}
	if u.Avatar != nil {
		a := *u.Avatar
		c.Avatar = &a
	}
	return &c
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, userID uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(userID)
}

func (r *fakeUserRepo) findLocked(userID uint) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	c := cloneUser(u)
	if c.AvatarID != nil && r.files != nil {
		if f, ok := r.files.files[*c.AvatarID]; ok {
			fc := *f
			c.Avatar = &fc
		}
	}
	return c, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, userID uint, patch map[string]interface{}) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	for column, value := range patch {
		switch column {
		case "name":
			u.Name = value.(string)
		case "email":
			u.Email = value.(string)
		case "password":
			u.Password = value.(string)
		case "new_email":
			u.NewEmail = toStrPtr(value)
		case "old_email_token":
			u.OldEmailToken = toStrPtr(value)
		case "new_email_token":
			u.NewEmailToken = toStrPtr(value)
		case "confirmed_at":
			t := value.(time.Time)
			u.ConfirmedAt = &t
		case "avatar_id":
			if value == nil {
				u.AvatarID = nil
			} else {
				id := value.(uint)
				u.AvatarID = &id
			}
		default:
			return nil, fmt.Errorf("unexpected column %q", column)
		}
	}

	return r.findLocked(userID)
}

func toStrPtr(value interface{}) *string {
	if value == nil {
		return nil
	}
	s := value.(string)
	return &s
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, userID)
	return nil
}

// ---- fake token store ----

type storedToken struct {
	userID    uint
	createdAt time.Time
	ttl       time.Duration
}

// fakeTokenStore keeps tokens in a map and expires them against an
// adjustable clock so TTL behavior is testable without sleeping.
type fakeTokenStore struct {
	mu     sync.Mutex
	now    time.Time
	tokens map[string]storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{now: time.Now(), tokens: map[string]storedToken{}}
}

func (s *fakeTokenStore) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *fakeTokenStore) Set(ctx context.Context, key string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key] = storedToken{userID: userID, createdAt: s.now, ttl: ttl}
	return nil
}

func (s *fakeTokenStore) Get(ctx context.Context, key string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[key]
	if !ok {
		return 0, errTokenNotFound
	}
	if t.ttl > 0 && s.now.After(t.createdAt.Add(t.ttl)) {
		delete(s.tokens, key)
		return 0, errTokenNotFound
	}
	return t.userID, nil
}

func (s *fakeTokenStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, key)
	return nil
}

func (s *fakeTokenStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// ---- fake notifier ----

type sentMail struct {
	template string
	to       string
	name     string
	token    string
	side     domain.EmailSide
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *fakeNotifier) SendConfirmationEmail(ctx context.Context, user *domain.User, token string) error {
	return n.record(sentMail{template: "confirm-email", to: user.Email, name: user.Name, token: token})
}

func (n *fakeNotifier) SendPasswordReset(ctx context.Context, user *domain.User, token string) error {
	return n.record(sentMail{template: "reset-password", to: user.Email, name: user.Name, token: token})
}

func (n *fakeNotifier) SendEmailChangeConfirmation(ctx context.Context, to, name, token string, side domain.EmailSide) error {
	return n.record(sentMail{template: "change-email", to: to, name: name, token: token, side: side})
}

func (n *fakeNotifier) record(m sentMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, m)
	return nil
}

func (n *fakeNotifier) byTemplate(template string) []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []sentMail
	for _, m := range n.sent {
		if m.template == template {
			out = append(out, m)
		}
	}
	return out
}

// ---- fake uploader ----

type fakeUploader struct {
	uploads []string
	deletes []string
}

func (u *fakeUploader) UploadBytes(ctx context.Context, publicID string, b []byte) (string, error) {
	u.uploads = append(u.uploads, publicID)
	return "https://cdn.test/" + publicID, nil
}

func (u *fakeUploader) DeleteFile(ctx context.Context, publicID string) error {
	u.deletes = append(u.deletes, publicID)
	return nil
}

// ---- fake file repository ----

type fakeFileRepo struct {
	nextID uint
	files  map[uint]*domain.File
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{nextID: 1, files: map[uint]*domain.File{}}
}

func (r *fakeFileRepo) CreateFile(ctx context.Context, file *domain.File) (*domain.File, error) {
	file.ID = r.nextID
	r.nextID++
	c := *file
	r.files[file.ID] = &c
	return file, nil
}

func (r *fakeFileRepo) DeleteFile(ctx context.Context, fileID uint) error {
	if _, ok := r.files[fileID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.files, fileID)
	return nil
}

// the fake must return the same sentinel the real stores use so the
// services can match it with errors.Is
var errTokenNotFound = interfaces.ErrTokenNotFound
