package main

import (
	"bytes"
	"io/ioutil"
	"log"
	"strings"
	"testing"

	"github.com/aulaedu/aula/core/course"
	"github.com/aulaedu/aula/core/nav"
	"github.com/aulaedu/aula/core/session"
	"github.com/aulaedu/aula/core/user"
	emailsvc "github.com/aulaedu/aula/services/email"
	logsvc "github.com/aulaedu/aula/services/logger"
	inmemdb "github.com/aulaedu/aula/storage/database/inmem"
	"github.com/aulaedu/aula/storage/localstore"
	testutil "github.com/aulaedu/aula/tests"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	db := testutil.NewSeededDB(t)
	logger := logsvc.NewStdLogger(log.New(ioutil.Discard, "", 0))
	sess := session.NewManager(
		user.NewService(inmemdb.NewUserRepository(db)),
		localstore.NewMemoryStore(),
		emailsvc.NewConsoleServiceMock(),
		logger,
	)

	out := new(bytes.Buffer)
	return &commandLine{
		session: sess,
		catalog: course.NewService(inmemdb.NewCourseRepository(db)),
		guard:   nav.NewGuard(sess),
		out:     out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	secret     string   // fed to the password prompt
	wantErr    error
	wantOutput []string // substrings expected in out
}

func runCliTests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()

	for _, tt := range tests {
		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.secret), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()

			args := append([]string{"aula"}, tt.args...)
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantOutput {
				if !strings.Contains(out.String(), want) {
					t.Errorf("cli.run() output = %q, missing %q", out.String(), want)
				}
			}
		})
	}
}

func Test_commandLine_help(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "no subcommand", wantErr: errHelp, wantOutput: []string{"Usage:"}},
		{name: "unknown subcommand", args: []string{"lol"}, wantErr: errHelp, wantOutput: []string{"Usage:"}},
	})
}

func Test_commandLine_session(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "whoami: anonymous", args: []string{"whoami"}, wantOutput: []string{"not authenticated"}},
		{name: "login: no email", args: []string{"login"}, wantErr: errHelp},
		{
			name:    "login: unknown email",
			args:    []string{"login", "-email", "ghost@example.com"},
			secret:  "password",
			wantErr: session.ErrAuthenticationFailed,
		},
		{
			name:    "login: wrong secret",
			args:    []string{"login", "-email", "student@example.com"},
			secret:  "nope",
			wantErr: session.ErrAuthenticationFailed,
		},
		{
			name:       "login: student",
			args:       []string{"login", "-email", "student@example.com"},
			secret:     "password",
			wantOutput: []string{`"email": "student@example.com"`, "navigate: /student"},
		},
		{
			name:       "whoami: authenticated",
			args:       []string{"whoami"},
			wantOutput: []string{`"name": "Juan Estudiante"`, `"role": "student"`},
		},
		{name: "logout", args: []string{"logout"}, wantOutput: []string{"navigate: /"}},
		{name: "whoami: after logout", args: []string{"whoami"}, wantOutput: []string{"not authenticated"}},
		{
			name:       "register",
			args:       []string{"register", "-name", "Lucia Nueva", "-email", "lucia@example.com"},
			secret:     "g0b3ldyg00k",
			wantOutput: []string{`"role": "student"`, "navigate: /student"},
		},
		{name: "register: missing name", args: []string{"register", "-email", "x@example.com"}, wantErr: errHelp},
		{name: "resetpassword: no email", args: []string{"resetpassword"}, wantErr: errHelp},
		{
			name:    "resetpassword: unknown email",
			args:    []string{"resetpassword", "-email", "ghost@example.com"},
			wantErr: user.ErrNotFound,
		},
		{
			name:       "resetpassword",
			args:       []string{"resetpassword", "-email", "trainer@example.com"},
			wantOutput: []string{"reset instructions sent"},
		},
	})
}

func Test_commandLine_navigation(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{name: "no path", args: []string{"nav"}, wantErr: errHelp},
		{name: "public path", args: []string{"nav", "-path", "/login"}, wantOutput: []string{"allow: /login"}},
		{name: "anonymous on student home", args: []string{"nav", "-path", "/student"}, wantOutput: []string{"redirect: /login"}},
		{
			name:       "login as trainer",
			args:       []string{"login", "-email", "trainer@example.com"},
			secret:     "password",
			wantOutput: []string{"navigate: /trainer"},
		},
		{name: "trainer on own home", args: []string{"nav", "-path", "/trainer"}, wantOutput: []string{"allow: /trainer"}},
		{name: "trainer on admin home", args: []string{"nav", "-path", "/admin"}, wantOutput: []string{"redirect: /trainer"}},
	})
}

func Test_commandLine_catalog(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{
			name:       "courses: all",
			args:       []string{"courses"},
			wantOutput: []string{"Fundamentos de Pedagogía Moderna", "Neurociencia Aplicada al Aprendizaje"},
		},
		{
			name:       "courses: by level",
			args:       []string{"courses", "-level", "Principiante"},
			wantOutput: []string{"Fundamentos de Pedagogía Moderna"},
		},
		{
			name:       "course: with module tree",
			args:       []string{"course", "-id", "1"},
			wantOutput: []string{"Introducción a la Pedagogía Moderna", `"modules"`, `"lessons"`},
		},
		{name: "course: no id", args: []string{"course"}, wantErr: errHelp},
		{name: "course: not found", args: []string{"course", "-id", "99"}, wantErr: course.ErrNotFound},
		{name: "mycourses: anonymous", args: []string{"mycourses"}, wantOutput: []string{"redirected to /login"}},
		{name: "enroll: anonymous", args: []string{"enroll", "-course", "3"}, wantErr: course.ErrNoIdentity},
		{
			name:       "login as student",
			args:       []string{"login", "-email", "student@example.com"},
			secret:     "password",
			wantOutput: []string{"navigate: /student"},
		},
		{
			name:       "mycourses",
			args:       []string{"mycourses"},
			wantOutput: []string{"Fundamentos de Pedagogía Moderna", `"progress": 30`},
		},
		{name: "teaching: as student", args: []string{"teaching"}, wantOutput: []string{"redirected to /student"}},
		{name: "enroll", args: []string{"enroll", "-course", "3"}, wantOutput: []string{`"progress": 0`}},
		{name: "enroll: already enrolled", args: []string{"enroll", "-course", "1"}, wantErr: course.ErrAlreadyEnrolled},
		{
			name:       "progress",
			args:       []string{"progress", "-course", "1", "-lesson", "1"},
			wantOutput: []string{`"progress": 40`},
		},
		{name: "progress: missing lesson flag", args: []string{"progress", "-course", "1"}, wantErr: errHelp},
		{name: "addcourse: as student", args: []string{"addcourse"}, wantOutput: []string{"redirected to /student"}},
	})
}

func Test_commandLine_adminCatalog(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{
			name:       "login as admin",
			args:       []string{"login", "-email", "admin@example.com"},
			secret:     "password",
			wantOutput: []string{"navigate: /admin"},
		},
		{
			name: "addcourse",
			args: []string{
				"addcourse", "-trainer", "2", "-title", "Curso Nuevo",
				"-subject", "Pedagogía", "-level", "Principiante", "-objectives", "uno;dos",
			},
			wantOutput: []string{`"id": 7`, "placehold.co"},
		},
		{
			name:       "addmodule",
			args:       []string{"addmodule", "-course", "7", "-title", "Módulo Uno", "-order", "1"},
			wantOutput: []string{`"id": 7`, `"course_id": 7`},
		},
		{
			name: "addlesson",
			args: []string{
				"addlesson", "-module", "7", "-title", "Lección Uno",
				"-kind", "video", "-content", "https://example.com/v.mp4", "-duration", "12",
			},
			wantOutput: []string{`"id": 7`, `"kind": "video"`},
		},
	})
}

func Test_commandLine_addCourseValidation(t *testing.T) {
	cli, out := setup(t)

	runCliTests(t, cli, out, []cliTest{
		{
			name:       "login as admin",
			args:       []string{"login", "-email", "admin@example.com"},
			secret:     "password",
			wantOutput: []string{"navigate: /admin"},
		},
	})

	out.Reset()
	err := cli.run([]string{"aula", "addcourse", "-title", "Sin Entrenador"})
	if err == nil {
		t.Fatal("cli.run() accepted a course without trainer, subject and level")
	}
	cli.renderError(err)
	for _, want := range []string{"trainer_id", "subject", "level"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("renderError() output = %q, missing %q", out.String(), want)
		}
	}
}
