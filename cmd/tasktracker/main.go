package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/yukikurage/student-task-tracker/internal/config"
	"github.com/yukikurage/student-task-tracker/internal/database"
	"github.com/yukikurage/student-task-tracker/internal/logger"
	"github.com/yukikurage/student-task-tracker/internal/repository"
	"github.com/yukikurage/student-task-tracker/internal/services"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg := config.Load()

	zlog, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer logger.Sync(zlog)

	store, err := database.Open(cfg, zlog)
	if err != nil {
		zlog.Error("failed to open database", zap.Error(err))
		return 1
	}
	defer store.Close()

	cli := newCommandLine(store, zlog, os.Stdout).withWindows(cfg.DashboardWindowDays, cfg.ReminderWindowDays)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		return 1
	}
	return 0
}

func newCommandLine(store *database.Store, zlog *zap.Logger, out io.Writer) *commandLine {
	userRepo := repository.NewUserRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	taskRepo := repository.NewTaskRepository(store)

	courseSvc := services.NewCourseService(courseRepo, zlog)
	taskSvc := services.NewTaskService(taskRepo, courseRepo, zlog)

	return &commandLine{
		out:          out,
		authSvc:      services.NewAuthService(userRepo, zlog),
		courseSvc:    courseSvc,
		taskSvc:      taskSvc,
		dashboardSvc: services.NewDashboardService(taskSvc, courseSvc),
	}
}
