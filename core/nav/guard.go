package nav

import (
	"github.com/aulaedu/aula/core/user"
)

// Decision is the terminal outcome of one navigation attempt.
type Decision struct {
	Allow    bool
	Redirect string
}

func Allowed() Decision { return Decision{Allow: true} }

func RedirectTo(path string) Decision { return Decision{Redirect: path} }

// SessionState supplies the current authenticated identity, if any.
type SessionState interface {
	Current() (user.User, bool)
}

// Guard enforces authentication and role requirements before a view is
// entered. Evaluation is synchronous and single-step; there are no retries.
type Guard struct {
	session SessionState
}

func NewGuard(session SessionState) *Guard {
	return &Guard{session: session}
}

func (g *Guard) Evaluate(path string) Decision {
	route, ok := Match(path)
	if !ok || !route.RequiresAuth {
		return Allowed()
	}

	usr, ok := g.session.Current()
	if !ok {
		return RedirectTo("/login")
	}
	if route.Role != "" && usr.Role != route.Role {
		return RedirectTo(HomePath(usr.Role))
	}
	return Allowed()
}
