package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/yukikurage/student-task-tracker/internal/constants"
	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

// taskFields are the flags shared by both add commands.
type taskFields struct {
	title    *string
	desc     *string
	deadline *string
	status   *string
}

func bindTaskFields(fs *flag.FlagSet) taskFields {
	return taskFields{
		title:    fs.String("title", "", "The task title."),
		desc:     fs.String("desc", "", "An optional description."),
		deadline: fs.String("deadline", "", "The deadline as dd/mm/yyyy. Defaults to a week from today."),
		status:   fs.String("status", "", "Not Started, In Progress or Done. Defaults to Not Started."),
	}
}

// parse resolves the deadline and status flags.
func (f taskFields) parse(defaultDeadline models.Date) (models.Date, models.TaskStatus, error) {
	deadline := defaultDeadline
	if *f.deadline != "" {
		d, err := models.ParseDate(*f.deadline)
		if err != nil {
			return models.Date{}, "", err
		}
		deadline = d
	}

	var status models.TaskStatus
	if *f.status != "" {
		s, err := models.ParseTaskStatus(*f.status)
		if err != nil {
			return models.Date{}, "", err
		}
		status = s
	}
	return deadline, status, nil
}

func (cli *commandLine) runTask(ctx context.Context, user *models.User, sub string, args []string) error {
	switch sub {
	case "add-academic":
		addCmd := cli.subcommand("task add-academic")
		fields := bindTaskFields(addCmd)
		courseID := addCmd.Uint64("course", 0, "The course ID.")
		if err := addCmd.Parse(args); err != nil {
			return err
		}
		deadline, status, err := fields.parse(cli.dashboardSvc.DefaultDeadline())
		if err != nil {
			return err
		}
		task, err := cli.taskSvc.AddAcademicTask(ctx, services.AddAcademicTaskInput{
			Title:       *fields.title,
			Description: *fields.desc,
			Deadline:    deadline,
			Status:      status,
			CourseID:    *courseID,
			UserID:      user.ID,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Added academic task %d: %s (%s)\n", task.ID, task.Title, task.Deadline.Display())
		return nil

	case "add-personal":
		addCmd := cli.subcommand("task add-personal")
		fields := bindTaskFields(addCmd)
		category := addCmd.String("category", "", "The task category.")
		if err := addCmd.Parse(args); err != nil {
			return err
		}
		deadline, status, err := fields.parse(cli.dashboardSvc.DefaultDeadline())
		if err != nil {
			return err
		}
		task, err := cli.taskSvc.AddPersonalTask(ctx, services.AddPersonalTaskInput{
			Title:       *fields.title,
			Description: *fields.desc,
			Category:    *category,
			Deadline:    deadline,
			Status:      status,
			UserID:      user.ID,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Added personal task %d: %s (%s)\n", task.ID, task.Title, task.Deadline.Display())
		return nil

	case "list":
		tasks, err := cli.taskSvc.ListTasks(ctx, user.ID)
		if err != nil {
			return err
		}
		return cli.printTasks(ctx, tasks)

	case "upcoming":
		upcomingCmd := cli.subcommand("task upcoming")
		days := upcomingCmd.Int("days", constants.DashboardWindowDays, "The window in days.")
		if err := upcomingCmd.Parse(args); err != nil {
			return err
		}
		tasks, err := cli.taskSvc.UpcomingDeadlines(ctx, user.ID, *days)
		if err != nil {
			return err
		}
		return cli.printTasks(ctx, tasks)

	case "status":
		statusCmd := cli.subcommand("task status")
		kind, id := bindTaskRef(statusCmd)
		status := statusCmd.String("status", "", "Not Started, In Progress or Done.")
		if err := statusCmd.Parse(args); err != nil {
			return err
		}
		taskKind, err := cli.ownedTask(ctx, user, *kind, *id)
		if err != nil {
			return err
		}
		newStatus, err := models.ParseTaskStatus(*status)
		if err != nil {
			return err
		}
		if _, err := cli.taskSvc.UpdateTaskStatus(ctx, taskKind, *id, newStatus); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Task %d is now %s\n", *id, newStatus)
		return nil

	case "delete":
		deleteCmd := cli.subcommand("task delete")
		kind, id := bindTaskRef(deleteCmd)
		if err := deleteCmd.Parse(args); err != nil {
			return err
		}
		taskKind, err := cli.ownedTask(ctx, user, *kind, *id)
		if err != nil {
			return err
		}
		if _, err := cli.taskSvc.DeleteTask(ctx, taskKind, *id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted task %d\n", *id)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func bindTaskRef(fs *flag.FlagSet) (*string, *uint64) {
	kind := fs.String("kind", "", "academic or personal.")
	id := fs.Uint64("id", 0, "The task ID.")
	return kind, id
}

// ownedTask checks that the referenced task exists and belongs to user.
func (cli *commandLine) ownedTask(ctx context.Context, user *models.User, kind string, id uint64) (models.TaskKind, error) {
	taskKind, err := models.ParseTaskKind(kind)
	if err != nil {
		return "", err
	}
	task, err := cli.taskSvc.GetTask(ctx, taskKind, id)
	if err != nil {
		return "", err
	}
	if task == nil || task.OwnerUserID != user.ID {
		return "", fmt.Errorf("%s task %d not found", kind, id)
	}
	return taskKind, nil
}

func (cli *commandLine) printTasks(ctx context.Context, tasks []models.Task) error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tID\tTITLE\tCOURSE/CATEGORY\tDEADLINE\tSTATUS")
	for _, task := range tasks {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			kindLabel(task.Kind), task.ID, task.Title, cli.courseOrCategory(ctx, task), task.Deadline.Display(), task.Status)
	}
	return w.Flush()
}

func (cli *commandLine) courseOrCategory(ctx context.Context, task models.Task) string {
	if task.Kind == models.KindPersonal {
		return task.Category
	}
	return cli.courseSvc.CourseName(ctx, task.CourseID)
}

func kindLabel(kind models.TaskKind) string {
	if kind == models.KindAcademic {
		return "academic"
	}
	return "personal"
}

func (cli *commandLine) dashboard(ctx context.Context, user *models.User) error {
	dashboard, err := cli.dashboardSvc.Dashboard(ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "Upcoming deadlines (next %d days from %s)\n", dashboard.WindowDays, dashboard.Today.Display())
	if len(dashboard.Days) == 0 {
		fmt.Fprintln(cli.out, "  nothing due")
	}
	for _, day := range dashboard.Days {
		fmt.Fprintf(cli.out, "%s\n", day.Deadline.Display())
		for _, entry := range day.Entries {
			fmt.Fprintf(cli.out, "  [%s] %s (%s)\n", entry.Label, entry.Task.Title, entry.Task.Status)
		}
	}

	if len(dashboard.Reminders) > 0 {
		fmt.Fprintln(cli.out)
		fmt.Fprintln(cli.out, "Reminder: due soon")
		writeIndented(cli.out, services.ReminderMessage(dashboard.Reminders))
	}
	return nil
}

func writeIndented(w io.Writer, text string) {
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
