package usecase

import (
	"context"
	"sync"
	"time"

	"trackjobs/internal/data/entity"
	"trackjobs/internal/mailer"
	"trackjobs/pkg/oauth"

	"github.com/google/uuid"
)

// In-memory store fakes. The maps stand in for the per-key atomicity the
// real store provides.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByProvider(ctx context.Context, provider, providerID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.OAuthProvider != nil && *user.OAuthProvider == provider &&
			user.OAuthProviderID != nil && *user.OAuthProviderID == providerID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

type fakeOTPRepo struct {
	mu    sync.Mutex
	codes map[uuid.UUID]*entity.OneTimeCode
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: make(map[uuid.UUID]*entity.OneTimeCode)}
}

func (f *fakeOTPRepo) Upsert(ctx context.Context, otp *entity.OneTimeCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *otp
	f.codes[otp.UserID] = &clone
	return nil
}

func (f *fakeOTPRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.OneTimeCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.codes[userID]
	if !ok {
		return nil, nil
	}
	clone := *otp
	return &clone, nil
}

func (f *fakeOTPRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.codes, userID)
	return nil
}

// code returns the currently stored code for a user, bypassing email
// delivery.
func (f *fakeOTPRepo) code(userID uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.codes[userID]
	if !ok {
		return ""
	}
	return otp.Code
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *session
	f.sessions[session.ID] = &clone
	return nil
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

// fakeSender drops messages; flows must not depend on delivery.
type fakeSender struct{}

func (fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	return nil
}

// fakeProvider returns a canned profile instead of talking to Google.
type fakeProvider struct {
	profile oauth.Profile
}

func (f *fakeProvider) Name() string {
	return "google"
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeProvider) Exchange(ctx context.Context, code string) (*oauth.Profile, error) {
	profile := f.profile
	return &profile, nil
}

// fakeClock steps time manually in tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
