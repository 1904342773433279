package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out          io.Writer
	authSvc      *services.AuthService
	courseSvc    *services.CourseService
	taskSvc      *services.TaskService
	dashboardSvc *services.DashboardService
}

func (cli *commandLine) withWindows(dashboardDays, reminderDays int) *commandLine {
	cli.dashboardSvc.WithWindows(dashboardDays, reminderDays)
	return cli
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: tasktracker -user NAME COMMAND [ARGS]")
	fmt.Fprintln(cli.out, "  register                                  - create the account; the password is prompted")
	fmt.Fprintln(cli.out, "  course add -name NAME                     - add a course")
	fmt.Fprintln(cli.out, "  course list                               - list courses")
	fmt.Fprintln(cli.out, "  course delete -id ID                      - delete a course and its academic tasks")
	fmt.Fprintln(cli.out, "  task add-academic -title T -course ID     - add an academic task (-desc, -deadline dd/mm/yyyy, -status)")
	fmt.Fprintln(cli.out, "  task add-personal -title T -category C    - add a personal task (-desc, -deadline dd/mm/yyyy, -status)")
	fmt.Fprintln(cli.out, "  task list                                 - list all tasks")
	fmt.Fprintln(cli.out, "  task upcoming [-days N]                   - list tasks due within N days")
	fmt.Fprintln(cli.out, "  task status -kind K -id ID -status S      - set a task's status")
	fmt.Fprintln(cli.out, "  task delete -kind K -id ID                - delete a task")
	fmt.Fprintln(cli.out, "  dashboard                                 - upcoming deadlines and reminders")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	globalCmd := flag.NewFlagSet(args[0], flag.ContinueOnError)
	globalCmd.SetOutput(cli.out)
	userName := globalCmd.String("user", "", "The account name. Its password will be prompted.")
	if err := globalCmd.Parse(args[1:]); err != nil {
		return err
	}
	rest := globalCmd.Args()
	if *userName == "" || len(rest) == 0 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()
	switch rest[0] {
	case "register":
		return cli.register(ctx, *userName)
	case "course", "task", "dashboard":
	default:
		cli.printUsage()
		return errHelp
	}

	if rest[0] != "dashboard" && len(rest) < 2 {
		cli.printUsage()
		return errHelp
	}

	user, err := cli.login(ctx, *userName)
	if err != nil {
		return err
	}

	switch rest[0] {
	case "course":
		return cli.runCourse(ctx, user, rest[1], rest[2:])
	case "task":
		return cli.runTask(ctx, user, rest[1], rest[2:])
	default:
		return cli.dashboard(ctx, user)
	}
}

func (cli *commandLine) prompt(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) register(ctx context.Context, name string) error {
	pwd, err := cli.prompt("Enter password:")
	if err != nil {
		return err
	}
	confirm, err := cli.prompt("Confirm password:")
	if err != nil {
		return err
	}

	user, err := cli.authSvc.Register(ctx, services.RegisterInput{Name: name, Password: pwd, ConfirmPassword: confirm})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Registered %s\n", user.Name)
	return nil
}

func (cli *commandLine) login(ctx context.Context, name string) (*models.User, error) {
	pwd, err := cli.prompt("Enter password:")
	if err != nil {
		return nil, err
	}
	if pwd == "" {
		cli.printUsage()
		return nil, errHelp
	}
	return cli.authSvc.Login(ctx, services.LoginInput{Name: name, Password: pwd})
}

// subcommand builds a flag set that reports errors instead of exiting.
func (cli *commandLine) subcommand(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}
