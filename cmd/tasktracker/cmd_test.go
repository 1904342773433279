package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/testutil"
)

var today = models.NewDate(2026, time.October, 17)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()

	store := testutil.PrepareStore(t)
	out := &bytes.Buffer{}
	cli := newCommandLine(store, zap.NewNop(), out)
	cli.authSvc.WithHashCost(bcrypt.MinCost)
	cli.taskSvc.WithClock(func() models.Date { return today })

	orig := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte("secret1"), nil
	}
	t.Cleanup(func() {
		readPasswordFunc = orig
	})
	return cli, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()

	for _, tt := range tests {
		args := append([]string{"tasktracker"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrStr != "":
				assert.EqualError(t, err, tt.wantErrStr)
			default:
				require.NoError(t, err)
			}
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, out := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "no args", wantErr: errHelp, wantOut: "Usage:"},
		{name: "no user", args: []string{"dashboard"}, wantErr: errHelp},
		{name: "no command", args: []string{"-user", "alice"}, wantErr: errHelp},
		{name: "unknown command", args: []string{"-user", "alice", "lol"}, wantErr: errHelp},
		{name: "course without subcommand", args: []string{"-user", "alice", "course"}, wantErr: errHelp},
	})
}

func Test_commandLine_workflow(t *testing.T) {
	cli, out := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "register", args: []string{"-user", "alice", "register"}, wantOut: "Registered alice"},
		{name: "register twice", args: []string{"-user", "alice", "register"}, wantErrStr: "username already exists"},
		{name: "unknown user", args: []string{"-user", "bob", "course", "list"}, wantErrStr: "invalid username or password"},
		{name: "no courses yet", args: []string{"-user", "alice", "course", "list"}, wantOut: models.NoCourseName},
		{name: "add course", args: []string{"-user", "alice", "course", "add", "-name", "Algorithms"}, wantOut: "Added course 1: Algorithms"},
		{name: "add academic task", args: []string{"-user", "alice", "task", "add-academic", "-title", "HW1", "-course", "1", "-deadline", "19/10/2026"}, wantOut: "Added academic task 1: HW1 (19/10/2026)"},
		{name: "add academic task to placeholder", args: []string{"-user", "alice", "task", "add-academic", "-title", "HW2", "-course", "0"}, wantErrStr: "please select a course"},
		{name: "add personal task with default deadline", args: []string{"-user", "alice", "task", "add-personal", "-title", "Gym", "-category", "Health"}, wantOut: "Added personal task 1: Gym (24/10/2026)"},
		{name: "bad deadline", args: []string{"-user", "alice", "task", "add-personal", "-title", "Gym", "-category", "Health", "-deadline", "2026/10/24"}, wantErrStr: `invalid date "2026/10/24": use dd/mm/yyyy`},
		{name: "list", args: []string{"-user", "alice", "task", "list"}, wantOut: "Algorithms"},
		{name: "upcoming", args: []string{"-user", "alice", "task", "upcoming", "-days", "3"}, wantOut: "HW1"},
		{name: "set status", args: []string{"-user", "alice", "task", "status", "-kind", "academic", "-id", "1", "-status", "DONE"}, wantOut: "Task 1 is now Done"},
		{name: "set status of missing task", args: []string{"-user", "alice", "task", "status", "-kind", "personal", "-id", "9", "-status", "Done"}, wantErrStr: "personal task 9 not found"},
		{name: "dashboard", args: []string{"-user", "alice", "dashboard"}, wantOut: "HW1 (19/10/2026)"},
		{name: "delete task", args: []string{"-user", "alice", "task", "delete", "-kind", "personal", "-id", "1"}, wantOut: "Deleted task 1"},
		{name: "delete course", args: []string{"-user", "alice", "course", "delete", "-id", "1"}, wantOut: "Deleted course 1"},
		{name: "delete course again", args: []string{"-user", "alice", "course", "delete", "-id", "1"}, wantErrStr: "course 1 not found"},
		{name: "empty dashboard", args: []string{"-user", "alice", "dashboard"}, wantOut: "nothing due"},
	})
}

func Test_commandLine_registerMismatch(t *testing.T) {
	cli, out := setup(t)

	calls := 0
	readPasswordFunc = func(fd int) ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte("secret1"), nil
		}
		return []byte("secret2"), nil
	}

	runCLITests(t, cli, out, []cliTest{
		{name: "mismatched confirmation", args: []string{"-user", "alice", "register"}, wantErrStr: "password confirmation does not match"},
	})
}
