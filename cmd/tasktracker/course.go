package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

func (cli *commandLine) runCourse(ctx context.Context, user *models.User, sub string, args []string) error {
	switch sub {
	case "add":
		addCmd := cli.subcommand("course add")
		name := addCmd.String("name", "", "The course name.")
		if err := addCmd.Parse(args); err != nil {
			return err
		}
		course, err := cli.courseSvc.AddCourse(ctx, services.AddCourseInput{Name: *name, UserID: user.ID})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Added course %d: %s\n", course.ID, course.Name)
		return nil

	case "list":
		courses, err := cli.courseSvc.CourseOptions(ctx, user.ID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, course := range courses {
			fmt.Fprintf(w, "%d\t%s\n", course.ID, course.Name)
		}
		return w.Flush()

	case "delete":
		deleteCmd := cli.subcommand("course delete")
		id := deleteCmd.Uint64("id", 0, "The course ID.")
		if err := deleteCmd.Parse(args); err != nil {
			return err
		}
		if *id == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		deleted, err := cli.courseSvc.DeleteCourse(ctx, user.ID, *id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("course %d not found", *id)
		}
		fmt.Fprintf(cli.out, "Deleted course %d\n", *id)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
