package session

import (
	"encoding/json"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/aulaedu/aula/core"
	"github.com/aulaedu/aula/core/nav"
	"github.com/aulaedu/aula/core/user"
	"github.com/aulaedu/aula/storage/localstore"
)

// local store keys; both present or both absent.
const (
	userKey  = "user"
	tokenKey = "token"
)

var (
	// errors
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Auth is the result of a successful authentication: the identity with its
// credential stripped, the opaque session token and the navigation intent.
type Auth struct {
	User     user.User
	Token    string
	Redirect string
}

// Manager owns the current authenticated identity and mirrors it to the local
// store. One Manager exists per running application (or per test case).
type Manager struct {
	users *user.Service
	store localstore.Store
	mail  core.EmailService
	log   core.Logger

	current *user.User
	token   string
}

func NewManager(users *user.Service, store localstore.Store, mailSvc core.EmailService, logger core.Logger) *Manager {
	return &Manager{
		users: users,
		store: store,
		mail:  mailSvc,
		log:   logger,
	}
}

// Current returns the authenticated identity, if any. The credential field is
// always empty on it.
func (m *Manager) Current() (user.User, bool) {
	if m.current == nil {
		return user.User{}, false
	}
	return *m.current, true
}

func (m *Manager) Token() string { return m.token }

// Restore repopulates the in-memory session from the local store. A missing
// key means "not authenticated"; there is no partial-state recovery. It must
// run before the route guard evaluates the first navigation.
func (m *Manager) Restore() {
	usrData, ok := m.store.Get(userKey)
	if !ok {
		return
	}
	tokenData, ok := m.store.Get(tokenKey)
	if !ok {
		return
	}

	var usr user.User
	if err := json.Unmarshal(usrData, &usr); err != nil {
		m.log.Warn(fmt.Sprintf("restoring session: %v", err), err)
		return
	}
	m.current = &usr
	m.token = string(tokenData)
}

// Authenticate scans identities for an exact email+secret match. On success it
// sets the current identity (credential stripped), mints a session token and
// mirrors both to the local store. Failure reports a generic error and leaves
// all state untouched.
func (m *Manager) Authenticate(email, secret string) (Auth, error) {
	usr, err := m.users.GetByEmail(email)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return Auth{}, ErrAuthenticationFailed
		}
		return Auth{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckSecret(secret); err != nil {
		return Auth{}, ErrAuthenticationFailed
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return Auth{}, errors.Wrap(err, "generating token")
	}

	sanitized := usr.Sanitized()
	m.current = &sanitized
	m.token = token
	m.persist()

	return Auth{
		User:     sanitized,
		Token:    token,
		Redirect: nav.HomePath(usr.Role),
	}, nil
}

// Register appends a new identity (default role student) and immediately
// authenticates it. A duplicate email fails validation and mutates nothing.
func (m *Manager) Register(nu user.NewUser) (Auth, error) {
	secret := nu.Secret
	if err := nu.Validate(m.users); err != nil {
		return Auth{}, err
	}
	if _, err := m.users.Create(nu); err != nil {
		return Auth{}, errors.Wrap(err, "creating user")
	}
	return m.Authenticate(nu.Email, secret)
}

// Deauthenticate clears the session in memory and in the local store, and
// returns the navigation intent for the root route.
func (m *Manager) Deauthenticate() string {
	m.current = nil
	m.token = ""
	if err := m.store.Delete(userKey); err != nil {
		m.log.Warn(fmt.Sprintf("clearing session user: %v", err), err)
	}
	if err := m.store.Delete(tokenKey); err != nil {
		m.log.Warn(fmt.Sprintf("clearing session token: %v", err), err)
	}
	return "/"
}

// RequestPasswordReset succeeds iff an identity with that email exists. It
// never mutates credentials; it only dispatches the notification mail.
func (m *Manager) RequestPasswordReset(email string) error {
	usr, err := m.users.GetByEmail(email)
	if err != nil {
		return err
	}

	if m.mail != nil {
		m.mail.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject: "Password Reset",
			TextContent: fmt.Sprintf(
				"Hi %s,\n\nVisit %s/forgot-password to choose a new password.\n",
				usr.Name, core.Conf.GetString("frontendBaseURL"),
			),
		})
	}
	return nil
}

// persist mirrors the session to the local store. Push-style and
// fire-and-forget: write failures are logged, never rolled back.
func (m *Manager) persist() {
	data, err := json.Marshal(m.current)
	if err != nil {
		m.log.Warn(fmt.Sprintf("encoding session user: %v", err), err)
		return
	}
	if err = m.store.Set(userKey, data); err != nil {
		m.log.Warn(fmt.Sprintf("persisting session user: %v", err), err)
	}
	if err = m.store.Set(tokenKey, []byte(m.token)); err != nil {
		m.log.Warn(fmt.Sprintf("persisting session token: %v", err), err)
	}
}
