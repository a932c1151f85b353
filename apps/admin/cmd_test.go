package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/unirecords/core"
	"github.com/trezcool/unirecords/core/university"
	"github.com/trezcool/unirecords/storage/database"
	"github.com/trezcool/unirecords/storage/database/sqlx"
	"github.com/trezcool/unirecords/tests"
)

func setup(t *testing.T) *commandLine {
	// set up DB & services
	db := testutil.OpenSQLite(t)
	uow := sqlxrepos.NewUnitOfWork(db)

	// start CLI
	return &commandLine{
		db:        db,
		engine:    database.EngineSQLite,
		courseSvc: university.NewCourseService(uow, testutil.NewValidator(), core.NewNopLogger()),
		out:       new(bytes.Buffer),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if !errors.Is(err, tt.wantErr) {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			} else if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() error = nil, wantErr %v%s", tt.wantErr, tt.wantErrStr)
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	})
	assert.Contains(t, cli.out.(*bytes.Buffer).String(), "Usage:")
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var gotDir string
	defer func(run func(string, *sql.DB, string, ...string) error) { gooseRunFunc = run }(gooseRunFunc)
	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		gotDir = dir
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runCLITests(t, cli, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	})
	assert.Equal(t, "migrations/sqlite", gotDir)
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "existing course", args: []string{"addcourse", "-name", "Data Science"}},
		{name: "seed", args: []string{"seed"}},
		{name: "seed again", args: []string{"seed"}},
	})

	courses, err := cli.courseSvc.GetAll(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}
	wantNames := make([]string, 0, len(university.DefaultCourses))
	for _, c := range university.DefaultCourses {
		wantNames = append(wantNames, c.Name)
	}
	assert.ElementsMatch(t, wantNames, names)

	out := cli.out.(*bytes.Buffer).String()
	assert.Contains(t, out, "4 course(s) created.")
	assert.Contains(t, out, "0 course(s) created.")
}

func Test_commandLine_addCourse(t *testing.T) {
	cli := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no name", args: []string{"addcourse"}, wantErr: errHelp},
		{name: "blank name", args: []string{"addcourse", "-name", "  "}, wantErr: core.ErrValidation},
		{name: "add", args: []string{"addcourse", "-name", " Robotics "}},
		{name: "add same name", args: []string{"addcourse", "-name", "Robotics"}},
	})

	courses, err := cli.courseSvc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []university.CourseDto{{ID: 1, Name: "Robotics"}, {ID: 2, Name: "Robotics"}}, courses)
}

func Test_commandLine_hashPassword(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no password", args: []string{"hashpassword"}, wantErr: errHelp},
		{name: "hash", args: []string{"hashpassword"}, extra: extra{pwd: "s3cret"}},
	}
	defer func(read func(int) ([]byte, error)) { readPasswordFunc = read }(readPasswordFunc)
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			buf := cli.out.(*bytes.Buffer)
			buf.Reset()

			err := cli.run(args)
			if err != tt.wantErr {
				t.Fatalf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			hash := lines[len(lines)-1]
			staff := core.StaffConfig{Username: "admin", PasswordHash: hash}
			if _, err := staff.Authenticate("admin", tt.extra.(extra).pwd); err != nil {
				t.Errorf("Authenticate() error = %v, with hash %q", err, hash)
			}
		})
	}
}
