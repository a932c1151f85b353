package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
	logsvc "github.com/trezcool/unirecords/services/logger"
	"github.com/trezcool/unirecords/storage/database"
	sqlxrepos "github.com/trezcool/unirecords/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(false)

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:     db,
		engine: conf.Database.Engine,
		courseSvc: university.NewCourseService(
			sqlxrepos.NewUnitOfWork(db),
			university.NewValidator(validate, translator, logger),
			logger,
		),
		out: os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err))
		}
		os.Exit(1)
	}
}
