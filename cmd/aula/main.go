package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aulaedu/aula/core"
	"github.com/aulaedu/aula/core/course"
	"github.com/aulaedu/aula/core/nav"
	"github.com/aulaedu/aula/core/session"
	"github.com/aulaedu/aula/core/user"
	emailsvc "github.com/aulaedu/aula/services/email"
	logsvc "github.com/aulaedu/aula/services/logger"
	inmemdb "github.com/aulaedu/aula/storage/database/inmem"
	"github.com/aulaedu/aula/storage/localstore"
)

func main() {
	debug := core.Conf.GetBool("debug")

	// set up logger
	std := log.New(os.Stdout, "AULA : ", log.LstdFlags)
	var logger core.Logger
	if debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		rb := logsvc.NewRollbarLogger(std)
		rb.Enable(true)
		logger = rb
	}

	// set up data store & seed fixtures
	db := inmemdb.NewDB()
	if err := inmemdb.Seed(db); err != nil {
		logger.Fatal(fmt.Sprintf("seeding data store: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(inmemdb.NewUserRepository(db))
	catalog := course.NewService(inmemdb.NewCourseRepository(db))

	// session mirror; falls back to memory if the file store cannot open
	store := openLocalStore(logger)
	sess := session.NewManager(usrSvc, store, mailSvc, logger)

	// session restoration must complete before the guard sees any navigation
	sess.Restore()
	guard := nav.NewGuard(sess)

	cli := &commandLine{
		session: sess,
		catalog: catalog,
		guard:   guard,
		out:     os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err == errHelp {
			os.Exit(2)
		}
		cli.renderError(err)
		os.Exit(1)
	}
}

func openLocalStore(logger core.Logger) localstore.Store {
	path := core.Conf.GetString("localStorePath")
	if path == "" {
		confDir, err := os.UserConfigDir()
		if err != nil {
			logger.Warn(fmt.Sprintf("resolving config dir: %v", err), err)
			return localstore.NewMemoryStore()
		}
		path = filepath.Join(confDir, "aula", "localstore.json")
	}

	store, err := localstore.NewFileStore(path)
	if err != nil {
		logger.Warn(fmt.Sprintf("opening local store: %v", err), err)
		return localstore.NewMemoryStore()
	}
	return store
}
