package services

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/student-task-tracker/internal/constants"
	"github.com/yukikurage/student-task-tracker/internal/database"
	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/repository"
	"github.com/yukikurage/student-task-tracker/internal/testutil"
)

type TaskServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *database.Store
	service *TaskService
	today   models.Date
	user    *models.User
	course  *models.Course
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = testutil.PrepareStore(suite.T())
	suite.today = models.NewDate(2026, time.October, 17)
	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.store),
		repository.NewCourseRepository(suite.store),
		zap.NewNop(),
	).WithClock(func() models.Date { return suite.today })

	suite.user = testutil.CreateUser(suite.T(), suite.store, "alice", "secret1")
	suite.course = testutil.CreateCourse(suite.T(), suite.store, "Algorithms", suite.user.ID)
}

func (suite *TaskServiceTestSuite) addAcademic(title string, offset int) *models.Task {
	task, err := suite.service.AddAcademicTask(suite.ctx, AddAcademicTaskInput{
		Title:    title,
		Deadline: suite.today.AddDays(offset),
		CourseID: suite.course.ID,
		UserID:   suite.user.ID,
	})
	require.NoError(suite.T(), err)
	return task
}

func (suite *TaskServiceTestSuite) addPersonal(title string, offset int, status models.TaskStatus) *models.Task {
	task, err := suite.service.AddPersonalTask(suite.ctx, AddPersonalTaskInput{
		Title:    title,
		Category: "Health",
		Deadline: suite.today.AddDays(offset),
		Status:   status,
		UserID:   suite.user.ID,
	})
	require.NoError(suite.T(), err)
	return task
}

func titles(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func (suite *TaskServiceTestSuite) TestAddAcademicTask_Defaults() {
	task := suite.addAcademic("HW1", 2)

	assert.Equal(suite.T(), models.KindAcademic, task.Kind)
	assert.NotZero(suite.T(), task.ID)
	assert.Equal(suite.T(), models.TaskStatusNotStarted, task.Status)
	assert.Equal(suite.T(), suite.user.ID, task.OwnerUserID)
}

func (suite *TaskServiceTestSuite) TestAddAcademicTask_Validation() {
	bob := testutil.CreateUser(suite.T(), suite.store, "bob", "secret1")
	deadline := suite.today.AddDays(1)

	tests := []struct {
		name    string
		input   AddAcademicTaskInput
		message string
	}{
		{"empty title", AddAcademicTaskInput{Title: " ", Deadline: deadline, CourseID: suite.course.ID}, "title must not be empty"},
		{"no deadline", AddAcademicTaskInput{Title: "HW1", CourseID: suite.course.ID}, "deadline must not be empty"},
		{"no course", AddAcademicTaskInput{Title: "HW1", Deadline: deadline, CourseID: models.NoCourse.ID}, "please select a course"},
		{"bad status", AddAcademicTaskInput{Title: "HW1", Deadline: deadline, CourseID: suite.course.ID, Status: "Later"}, "status must be one of Not Started, In Progress, Done"},
		{"foreign course", AddAcademicTaskInput{Title: "HW1", Deadline: deadline, CourseID: suite.course.ID, UserID: bob.ID}, "course does not belong to user"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.AddAcademicTask(suite.ctx, tt.input)
			require.Error(suite.T(), err)
			assert.True(suite.T(), apierrors.IsValidation(err))
			assert.EqualError(suite.T(), err, tt.message)
		})
	}

	tasks, err := suite.service.ListTasks(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), tasks)
}

func (suite *TaskServiceTestSuite) TestAddAcademicTask_UnknownCourse() {
	_, err := suite.service.AddAcademicTask(suite.ctx, AddAcademicTaskInput{
		Title:    "HW1",
		Deadline: suite.today,
		CourseID: suite.course.ID + 100,
	})
	assert.ErrorIs(suite.T(), err, ErrPersistence)

	var count int64
	suite.store.DB(suite.ctx).Model(&models.AcademicTask{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *TaskServiceTestSuite) TestAddPersonalTask_Validation() {
	_, err := suite.service.AddPersonalTask(suite.ctx, AddPersonalTaskInput{
		Title:    "Gym",
		Deadline: suite.today,
		UserID:   suite.user.ID,
	})
	assert.EqualError(suite.T(), err, "category must not be empty")
}

func (suite *TaskServiceTestSuite) TestGetTask() {
	academic := suite.addAcademic("HW1", 2)
	personal := suite.addPersonal("Gym", 1, models.TaskStatusInProgress)

	found, err := suite.service.GetTask(suite.ctx, models.KindAcademic, academic.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), *academic, *found)

	found, err = suite.service.GetTask(suite.ctx, models.KindPersonal, personal.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Health", found.Category)

	found, err = suite.service.GetTask(suite.ctx, models.KindPersonal, personal.ID+100)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), found)

	_, err = suite.service.GetTask(suite.ctx, models.TaskKind("OTHER"), 1)
	assert.True(suite.T(), apierrors.IsValidation(err))
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_AnyTransition() {
	task := suite.addPersonal("Gym", 1, models.TaskStatusDone)

	for _, status := range []models.TaskStatus{
		models.TaskStatusDone,
		models.TaskStatusNotStarted,
		models.TaskStatusInProgress,
		models.TaskStatusInProgress,
		models.TaskStatusDone,
	} {
		ok, err := suite.service.UpdateTaskStatus(suite.ctx, models.KindPersonal, task.ID, status)
		require.NoError(suite.T(), err)
		assert.True(suite.T(), ok)

		found, err := suite.service.GetTask(suite.ctx, models.KindPersonal, task.ID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), status, found.Status)
	}

	ok, err := suite.service.UpdateTaskStatus(suite.ctx, models.KindAcademic, 999, models.TaskStatusDone)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)

	_, err = suite.service.UpdateTaskStatus(suite.ctx, models.KindPersonal, task.ID, "Blocked")
	assert.True(suite.T(), apierrors.IsValidation(err))
}

func (suite *TaskServiceTestSuite) TestUpdateTask() {
	task := suite.addAcademic("HW1", 2)
	other := testutil.CreateCourse(suite.T(), suite.store, "Databases", suite.user.ID)

	title := "HW1 (revised)"
	deadline := suite.today.AddDays(5)
	status := models.TaskStatusInProgress
	updated, err := suite.service.UpdateTask(suite.ctx, models.KindAcademic, task.ID, UpdateTaskInput{
		Title:    &title,
		Deadline: &deadline,
		Status:   &status,
		CourseID: &other.ID,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), title, updated.Title)
	assert.True(suite.T(), deadline.Equal(updated.Deadline))
	assert.Equal(suite.T(), status, updated.Status)
	assert.Equal(suite.T(), other.ID, updated.CourseID)

	empty := ""
	_, err = suite.service.UpdateTask(suite.ctx, models.KindAcademic, task.ID, UpdateTaskInput{Title: &empty})
	assert.True(suite.T(), apierrors.IsValidation(err))

	category := "Work"
	_, err = suite.service.UpdateTask(suite.ctx, models.KindAcademic, task.ID, UpdateTaskInput{Category: &category})
	assert.True(suite.T(), apierrors.IsValidation(err))

	_, err = suite.service.UpdateTask(suite.ctx, models.KindAcademic, task.ID+100, UpdateTaskInput{Title: &title})
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_Missing() {
	kept := suite.addAcademic("HW1", 2)
	suite.addPersonal("Gym", 1, models.TaskStatusNotStarted)

	ok, err := suite.service.DeleteTask(suite.ctx, models.KindAcademic, kept.ID+100)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)

	tasks, err := suite.service.ListTasks(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), tasks, 2)

	ok, err = suite.service.DeleteTask(suite.ctx, models.KindAcademic, kept.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)

	found, err := suite.service.GetTask(suite.ctx, models.KindAcademic, kept.ID)
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), found)
}

func (suite *TaskServiceTestSuite) TestListTasks_Union() {
	bob := testutil.CreateUser(suite.T(), suite.store, "bob", "secret1")
	bobCourse := testutil.CreateCourse(suite.T(), suite.store, "Physics", bob.ID)
	testutil.CreateAcademicTask(suite.T(), suite.store, "Bob HW", suite.today, models.TaskStatusNotStarted, bobCourse.ID)
	testutil.CreatePersonalTask(suite.T(), suite.store, "Bob run", "Health", suite.today, models.TaskStatusNotStarted, bob.ID)

	suite.addPersonal("Gym", 1, models.TaskStatusNotStarted)
	suite.addAcademic("HW1", 2)
	suite.addAcademic("HW2", 0)

	tasks, err := suite.service.ListTasks(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"HW1", "HW2", "Gym"}, titles(tasks))
	for _, task := range tasks {
		assert.Equal(suite.T(), suite.user.ID, task.OwnerUserID)
	}
}

func (suite *TaskServiceTestSuite) TestUpcomingDeadlines_Window() {
	suite.addAcademic("Yesterday", -1)
	suite.addAcademic("Today", 0)
	suite.addPersonal("Done soon", 2, models.TaskStatusDone)
	suite.addAcademic("Edge", 3)
	suite.addPersonal("Later", 4, models.TaskStatusNotStarted)

	tasks, err := suite.service.UpcomingDeadlines(suite.ctx, suite.user.ID, 3)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Today", "Done soon", "Edge"}, titles(tasks))

	tasks, err = suite.service.UpcomingDeadlines(suite.ctx, suite.user.ID, 0)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Today"}, titles(tasks))

	_, err = suite.service.UpcomingDeadlines(suite.ctx, suite.user.ID, -1)
	assert.True(suite.T(), apierrors.IsValidation(err))
}

func (suite *TaskServiceTestSuite) TestUpcomingDeadlines_HugeWindow() {
	suite.addPersonal("Tomorrow", 1, models.TaskStatusNotStarted)

	tasks, err := suite.service.UpcomingDeadlines(suite.ctx, suite.user.ID, constants.MaxWindowDays)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Tomorrow"}, titles(tasks))

	for _, window := range []int{constants.MaxWindowDays + 1, math.MaxInt32, math.MaxInt} {
		tasks, err = suite.service.UpcomingDeadlines(suite.ctx, suite.user.ID, window)
		assert.EqualError(suite.T(), err, "window must be at most 36500 days", "window %d", window)
		assert.True(suite.T(), apierrors.IsValidation(err))
		assert.Nil(suite.T(), tasks)
	}
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

// Register, add a course and one task, then look ahead three days and one day.
func TestTaskService_AliceScenario(t *testing.T) {
	ctx := context.Background()
	store := testutil.PrepareStore(t)
	today := models.NewDate(2026, time.October, 17)

	auth := NewAuthService(repository.NewUserRepository(store), zap.NewNop()).WithHashCost(bcrypt.MinCost)
	courses := NewCourseService(repository.NewCourseRepository(store), zap.NewNop())
	tasks := NewTaskService(repository.NewTaskRepository(store), repository.NewCourseRepository(store), zap.NewNop()).
		WithClock(func() models.Date { return today })

	alice, err := auth.Register(ctx, RegisterInput{Name: "alice", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)

	course, err := courses.AddCourse(ctx, AddCourseInput{Name: "Algorithms", UserID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), course.ID)

	_, err = tasks.AddAcademicTask(ctx, AddAcademicTaskInput{Title: "HW1", Deadline: today.AddDays(2), CourseID: course.ID})
	require.NoError(t, err)

	upcoming, err := tasks.UpcomingDeadlines(ctx, alice.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"HW1"}, titles(upcoming))

	upcoming, err = tasks.UpcomingDeadlines(ctx, alice.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestTaskService_PersistenceFailure(t *testing.T) {
	store, mock := testutil.PrepareMockStore(t)
	service := NewTaskService(repository.NewTaskRepository(store), repository.NewCourseRepository(store), zap.NewNop())
	ctx := context.Background()
	connErr := errors.New("connection lost")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "AcademicTasks"`)).WillReturnError(connErr)

	tasks, err := service.ListTasks(ctx, 1)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, connErr)
	assert.Nil(t, tasks)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "PersonalTasks"`)).WillReturnError(connErr)
	mock.ExpectRollback()

	ok, err := service.UpdateTaskStatus(ctx, models.KindPersonal, 1, models.TaskStatusDone)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
