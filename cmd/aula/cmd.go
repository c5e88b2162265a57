package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/aulaedu/aula/core"
	"github.com/aulaedu/aula/core/course"
	"github.com/aulaedu/aula/core/nav"
	"github.com/aulaedu/aula/core/session"
	"github.com/aulaedu/aula/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	session *session.Manager
	catalog *course.Service
	guard   *nav.Guard
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                      - authenticate; the secret will be prompted next")
	fmt.Fprintln(cli.out, "  register -name NAME -email EMAIL        - register a new identity (role defaults to student)")
	fmt.Fprintln(cli.out, "  logout                                  - clear the current session")
	fmt.Fprintln(cli.out, "  whoami                                  - show the current identity")
	fmt.Fprintln(cli.out, "  resetpassword -email EMAIL              - request a password reset")
	fmt.Fprintln(cli.out, "  nav -path PATH                          - evaluate the route guard for a path")
	fmt.Fprintln(cli.out, "  courses [-level LEVEL] [-subject SUBJ]  - list the course catalog")
	fmt.Fprintln(cli.out, "  mycourses                               - list enrolled courses (student)")
	fmt.Fprintln(cli.out, "  teaching                                - list owned courses (trainer)")
	fmt.Fprintln(cli.out, "  course -id ID                           - show a course with its modules and lessons")
	fmt.Fprintln(cli.out, "  lesson -id ID                           - show a lesson")
	fmt.Fprintln(cli.out, "  students -course ID                     - list a course's enrollments (trainer)")
	fmt.Fprintln(cli.out, "  enroll -course ID                       - enroll in a course (student)")
	fmt.Fprintln(cli.out, "  progress -course ID -lesson ID          - record lesson completion (student)")
	fmt.Fprintln(cli.out, "  addcourse ... / addmodule ... / addlesson ... - extend the catalog (admin)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		return cli.login(args[2:])
	case "register":
		return cli.register(args[2:])
	case "logout":
		fmt.Fprintf(cli.out, "navigate: %s\n", cli.session.Deauthenticate())
		return nil
	case "whoami":
		return cli.whoami()
	case "resetpassword":
		return cli.resetPassword(args[2:])
	case "nav":
		return cli.navigate(args[2:])
	case "courses":
		return cli.courses(args[2:])
	case "mycourses":
		return cli.myCourses()
	case "teaching":
		return cli.teaching()
	case "course":
		return cli.courseDetails(args[2:])
	case "lesson":
		return cli.lessonView(args[2:])
	case "students":
		return cli.students(args[2:])
	case "enroll":
		return cli.enroll(args[2:])
	case "progress":
		return cli.progress(args[2:])
	case "addcourse":
		return cli.addCourse(args[2:])
	case "addmodule":
		return cli.addModule(args[2:])
	case "addlesson":
		return cli.addLesson(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// enterView runs the guard for the view's route; a redirect ends the attempt.
func (cli *commandLine) enterView(path string) bool {
	if d := cli.guard.Evaluate(path); !d.Allow {
		fmt.Fprintf(cli.out, "redirected to %s\n", d.Redirect)
		return false
	}
	return true
}

func (cli *commandLine) login(args []string) error {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := cmd.String("email", "", "The identity's email. The secret will be prompted next.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter secret:")
	secret, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}

	auth, err := cli.session.Authenticate(*email, string(secret))
	if err != nil {
		return err
	}
	cli.renderJSON(auth.User)
	fmt.Fprintf(cli.out, "navigate: %s\n", auth.Redirect)
	return nil
}

func (cli *commandLine) register(args []string) error {
	cmd := flag.NewFlagSet("register", flag.ExitOnError)
	name := cmd.String("name", "", "The identity's display name.")
	email := cmd.String("email", "", "The identity's email.")
	role := cmd.String("role", string(user.RoleStudent), "One of student|trainer|admin.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		cmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter secret:")
	secret, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}

	auth, err := cli.session.Register(user.NewUser{
		Name:   *name,
		Email:  *email,
		Secret: string(secret),
		Role:   user.Role(*role),
	})
	if err != nil {
		return err
	}
	cli.renderJSON(auth.User)
	fmt.Fprintf(cli.out, "navigate: %s\n", auth.Redirect)
	return nil
}

func (cli *commandLine) whoami() error {
	usr, ok := cli.session.Current()
	if !ok {
		fmt.Fprintln(cli.out, "not authenticated")
		return nil
	}
	cli.renderJSON(usr)
	return nil
}

func (cli *commandLine) resetPassword(args []string) error {
	cmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	email := cmd.String("email", "", "The identity's email.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	if err := cli.session.RequestPasswordReset(*email); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "reset instructions sent")
	return nil
}

func (cli *commandLine) navigate(args []string) error {
	cmd := flag.NewFlagSet("nav", flag.ExitOnError)
	path := cmd.String("path", "", "The logical path to navigate to.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		cmd.Usage()
		return errHelp
	}

	if d := cli.guard.Evaluate(*path); d.Allow {
		fmt.Fprintf(cli.out, "allow: %s\n", *path)
	} else {
		fmt.Fprintf(cli.out, "redirect: %s\n", d.Redirect)
	}
	return nil
}

func (cli *commandLine) courses(args []string) error {
	cmd := flag.NewFlagSet("courses", flag.ExitOnError)
	level := cmd.String("level", "", "Filter by level (exact match).")
	subject := cmd.String("subject", "", "Filter by subject (exact match).")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	courses, err := cli.catalog.Filter(course.QueryFilter{Level: *level, Subject: *subject})
	if err != nil {
		return err
	}
	cli.renderJSON(courses)
	return nil
}

func (cli *commandLine) myCourses() error {
	if !cli.enterView("/student/courses") {
		return nil
	}
	usr, _ := cli.session.Current()
	enrolled, err := cli.catalog.EnrolledCourses(usr.ID)
	if err != nil {
		return err
	}
	cli.renderJSON(enrolled)
	return nil
}

func (cli *commandLine) teaching() error {
	if !cli.enterView("/trainer/courses") {
		return nil
	}
	usr, _ := cli.session.Current()
	courses, err := cli.catalog.TrainerCourses(usr.ID)
	if err != nil {
		return err
	}
	cli.renderJSON(courses)
	return nil
}

func (cli *commandLine) courseDetails(args []string) error {
	cmd := flag.NewFlagSet("course", flag.ExitOnError)
	id := cmd.Int("id", 0, "The course id.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		cmd.Usage()
		return errHelp
	}

	crs, err := cli.catalog.GetCourse(*id)
	if err != nil {
		return err
	}

	mods, err := cli.catalog.CourseModules(crs.ID)
	if err != nil {
		return err
	}
	course.SortModulesByOrder(mods)

	type moduleView struct {
		course.Module
		Lessons []course.Lesson `json:"lessons"`
	}
	views := make([]moduleView, 0, len(mods))
	for _, mod := range mods {
		lsns, err := cli.catalog.ModuleLessons(mod.ID)
		if err != nil {
			return err
		}
		course.SortLessonsByOrder(lsns)
		views = append(views, moduleView{Module: mod, Lessons: lsns})
	}

	cli.renderJSON(struct {
		course.Course
		Modules []moduleView `json:"modules"`
	}{Course: crs, Modules: views})
	return nil
}

func (cli *commandLine) lessonView(args []string) error {
	cmd := flag.NewFlagSet("lesson", flag.ExitOnError)
	id := cmd.Int("id", 0, "The lesson id.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		cmd.Usage()
		return errHelp
	}
	if !cli.enterView(fmt.Sprintf("/student/lessons/%d", *id)) {
		return nil
	}

	lsn, err := cli.catalog.GetLesson(*id)
	if err != nil {
		return err
	}
	cli.renderJSON(lsn)
	return nil
}

func (cli *commandLine) students(args []string) error {
	cmd := flag.NewFlagSet("students", flag.ExitOnError)
	courseID := cmd.Int("course", 0, "The course id.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 {
		cmd.Usage()
		return errHelp
	}
	if !cli.enterView(fmt.Sprintf("/trainer/courses/%d", *courseID)) {
		return nil
	}

	students, err := cli.catalog.CourseStudents(*courseID)
	if err != nil {
		return err
	}
	cli.renderJSON(students)
	return nil
}

func (cli *commandLine) enroll(args []string) error {
	cmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	courseID := cmd.Int("course", 0, "The course id.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 {
		cmd.Usage()
		return errHelp
	}

	usr, _ := cli.session.Current()
	enr, err := cli.catalog.Enroll(usr.ID, *courseID)
	if err != nil {
		return err
	}
	cli.renderJSON(enr)
	return nil
}

func (cli *commandLine) progress(args []string) error {
	cmd := flag.NewFlagSet("progress", flag.ExitOnError)
	courseID := cmd.Int("course", 0, "The course id.")
	lessonID := cmd.Int("lesson", 0, "The completed lesson id.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *courseID == 0 || *lessonID == 0 {
		cmd.Usage()
		return errHelp
	}

	usr, _ := cli.session.Current()
	enr, err := cli.catalog.RecordProgress(usr.ID, *courseID, *lessonID, true)
	if err != nil {
		return err
	}
	cli.renderJSON(enr)
	return nil
}

func (cli *commandLine) addCourse(args []string) error {
	cmd := flag.NewFlagSet("addcourse", flag.ExitOnError)
	trainerID := cmd.Int("trainer", 0, "The owning trainer id.")
	title := cmd.String("title", "", "The course title.")
	description := cmd.String("description", "", "The course description.")
	objectives := cmd.String("objectives", "", "Semicolon-separated objectives.")
	subject := cmd.String("subject", "", "The course subject.")
	level := cmd.String("level", "", "The course level.")
	thumbnail := cmd.String("thumbnail", "", "The thumbnail URL (optional).")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if !cli.enterView("/admin/courses/new") {
		return nil
	}

	nc := course.NewCourse{
		TrainerID:   *trainerID,
		Title:       *title,
		Description: *description,
		Subject:     *subject,
		Level:       *level,
		Thumbnail:   *thumbnail,
	}
	if *objectives != "" {
		nc.Objectives = strings.Split(*objectives, ";")
	}
	if err := nc.Validate(); err != nil {
		return err
	}

	crs, err := cli.catalog.AddCourse(nc)
	if err != nil {
		return err
	}
	cli.renderJSON(crs)
	return nil
}

func (cli *commandLine) addModule(args []string) error {
	cmd := flag.NewFlagSet("addmodule", flag.ExitOnError)
	courseID := cmd.Int("course", 0, "The parent course id.")
	title := cmd.String("title", "", "The module title.")
	description := cmd.String("description", "", "The module description.")
	order := cmd.Int("order", 1, "The display order index.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if !cli.enterView("/admin/courses/new") {
		return nil
	}

	nm := course.NewModule{
		CourseID:    *courseID,
		Title:       *title,
		Description: *description,
		Order:       *order,
	}
	if err := nm.Validate(); err != nil {
		return err
	}

	mod, err := cli.catalog.AddModule(nm)
	if err != nil {
		return err
	}
	cli.renderJSON(mod)
	return nil
}

func (cli *commandLine) addLesson(args []string) error {
	cmd := flag.NewFlagSet("addlesson", flag.ExitOnError)
	moduleID := cmd.Int("module", 0, "The parent module id.")
	title := cmd.String("title", "", "The lesson title.")
	kind := cmd.String("kind", "", "One of video|text|pdf.")
	content := cmd.String("content", "", "The content payload (URL or markup).")
	duration := cmd.Int("duration", 0, "The duration in minutes.")
	order := cmd.Int("order", 1, "The display order index.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if !cli.enterView("/admin/courses/new") {
		return nil
	}

	nl := course.NewLesson{
		ModuleID: *moduleID,
		Title:    *title,
		Kind:     course.ContentKind(*kind),
		Content:  *content,
		Duration: *duration,
		Order:    *order,
	}
	if err := nl.Validate(); err != nil {
		return err
	}

	lsn, err := cli.catalog.AddLesson(nl)
	if err != nil {
		return err
	}
	cli.renderJSON(lsn)
	return nil
}

func (cli *commandLine) renderJSON(obj interface{}) {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		fmt.Fprintf(cli.out, "rendering: %v\n", err)
		return
	}
	fmt.Fprintln(cli.out, string(data))
}

func (cli *commandLine) renderError(err error) {
	switch origErr := pkgerrors.Cause(err).(type) {
	case validator.ValidationErrors:
		for _, vErr := range origErr {
			fmt.Fprintf(cli.out, "%s: %s\n", vErr.Field(), vErr.Translate(core.Translator))
		}
	case *core.ValidationError:
		if origErr.Fields != nil {
			for _, fErr := range origErr.Fields {
				fmt.Fprintf(cli.out, "%s: %s\n", fErr.Field, fErr.Error)
			}
		} else {
			fmt.Fprintln(cli.out, origErr.Error())
		}
	default:
		fmt.Fprintf(cli.out, "error: %v\n", err)
	}
}
