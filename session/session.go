// Package session keeps the logged-in operator and persists it to durable
// storage so the register survives a restart.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/apiclient"
	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/storage"
)

const (
	tokenKey   = "userToken"
	profileKey = "userData"
)

type EventKind int

const (
	Established EventKind = iota + 1
	Updated
	Cleared
)

func (k EventKind) String() string {
	switch k {
	case Established:
		return "established"
	case Updated:
		return "updated"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind    EventKind
	Session models.Session
}

type API interface {
	Login(ctx context.Context, username, password string) (*apiclient.LoginResult, string, error)
	UpdateProfile(ctx context.Context, token string, form models.ProfileForm) (*models.User, error)
	RemoveProfilePicture(ctx context.Context, token string) (string, error)
}

type Store struct {
	api     API
	storage storage.Storage
	now     func() time.Time

	mu      sync.Mutex
	current models.Session
	subs    map[int]func(Event)
	nextSub int
}

func NewStore(api API, st storage.Storage) *Store {
	return &Store{
		api:     api,
		storage: st,
		now:     time.Now,
		subs:    make(map[int]func(Event)),
	}
}

func (s *Store) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Store) Token() string {
	return s.Current().Token
}

// Subscribe registers fn for session events. The returned function removes it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) set(kind EventKind, sess models.Session) {
	s.mu.Lock()
	s.current = sess
	subs := make([]func(Event), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	ev := Event{Kind: kind, Session: sess}
	for _, fn := range subs {
		fn(ev)
	}
}

// Restore loads a previous session from storage. An expired JWT is dropped
// together with its profile. A stored profile that does not parse is
// ignored; the token alone still authenticates.
func (s *Store) Restore() (models.Session, error) {
	token, ok, err := s.storage.GetItem(tokenKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("restore session: %w", err)
	}
	if !ok || token == "" {
		return models.Session{}, nil
	}

	if s.expired(token) {
		logrus.Info("stored session token has expired, logging out")
		if err := s.clearStorage(); err != nil {
			return models.Session{}, err
		}
		return models.Session{}, nil
	}

	sess := models.Session{Token: token}
	if blob, ok, err := s.storage.GetItem(profileKey); err != nil {
		return models.Session{}, fmt.Errorf("restore session: %w", err)
	} else if ok {
		var p models.Profile
		if err := json.Unmarshal([]byte(blob), &p); err != nil {
			logrus.WithError(err).Warn("could not parse stored profile")
		} else {
			sess = withProfile(sess, p)
		}
	}

	s.set(Established, sess)
	return sess, nil
}

func withProfile(sess models.Session, p models.Profile) models.Session {
	sess.Role = p.Role
	sess.Username = p.Username
	sess.Email = p.Email
	sess.UserID = p.UserID
	sess.Picture = p.Picture
	return sess
}

// expired reports whether token is a JWT whose exp claim has passed. Tokens
// that are not JWTs are left for the backend to judge.
func (s *Store) expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(s.now())
}

// Login authenticates and persists the session. The backend's greeting is
// returned for display.
func (s *Store) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", models.Invalid("username", "is required")
	}
	if password == "" {
		return "", models.Invalid("password", "is required")
	}

	res, msg, err := s.api.Login(ctx, username, password)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Error("login failed")
		return "", err
	}

	sess := res.Session()
	if err := s.persist(sess); err != nil {
		return "", err
	}
	s.set(Established, sess)
	return msg, nil
}

// Logout forgets the session in memory and in storage.
func (s *Store) Logout() error {
	if err := s.clearStorage(); err != nil {
		return err
	}
	s.set(Cleared, models.Session{})
	return nil
}

// UpdateProfile edits the operator's own profile and merges the backend's
// canonical values into the session.
func (s *Store) UpdateProfile(ctx context.Context, form models.ProfileForm) (models.Session, error) {
	sess, err := s.Require()
	if err != nil {
		return sess, err
	}
	if form.Username == "" && form.Email == "" && form.Password == "" && form.Picture == nil {
		return sess, models.Invalid("", "nothing to update")
	}
	if form.Password != "" && len(form.Password) < 6 {
		return sess, models.Invalid("password", "must be at least 6 characters")
	}

	user, err := s.api.UpdateProfile(ctx, sess.Token, form)
	if err != nil {
		logrus.WithError(err).Error("failed to update profile")
		return sess, err
	}

	if user.Username != "" {
		sess.Username = user.Username
	}
	if user.Email != "" {
		sess.Email = user.Email
	}
	if user.Picture != "" {
		sess.Picture = user.Picture
	}
	if err := s.persist(sess); err != nil {
		return sess, err
	}
	s.set(Updated, sess)
	return sess, nil
}

func (s *Store) RemoveProfilePicture(ctx context.Context) (string, error) {
	sess, err := s.Require()
	if err != nil {
		return "", err
	}

	msg, err := s.api.RemoveProfilePicture(ctx, sess.Token)
	if err != nil {
		logrus.WithError(err).Error("failed to remove profile picture")
		return "", err
	}

	sess.Picture = ""
	if err := s.persist(sess); err != nil {
		return "", err
	}
	s.set(Updated, sess)
	return msg, nil
}

// Require guards an operation: it fails with ErrUnauthenticated when nobody
// is logged in and ErrForbidden when roles is non-empty and the operator's
// role is not among them.
func (s *Store) Require(roles ...models.Role) (models.Session, error) {
	sess := s.Current()
	if !sess.IsAuthenticated() {
		return sess, models.ErrUnauthenticated
	}
	if len(roles) > 0 && !slices.Contains(roles, sess.Role) {
		return sess, models.ErrForbidden
	}
	return sess, nil
}

func (s *Store) persist(sess models.Session) error {
	blob, err := json.Marshal(sess.Profile())
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(tokenKey, sess.Token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := s.storage.SetItem(profileKey, string(blob)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) clearStorage() error {
	if err := s.storage.RemoveItem(tokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := s.storage.RemoveItem(profileKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
