package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/yukikurage/student-task-tracker/internal/database"
	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
	"github.com/yukikurage/student-task-tracker/internal/models"
	"github.com/yukikurage/student-task-tracker/internal/repository"
	"github.com/yukikurage/student-task-tracker/internal/testutil"
)

type CourseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *database.Store
	service *CourseService
	user    *models.User
}

func (suite *CourseServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = testutil.PrepareStore(suite.T())
	suite.service = NewCourseService(repository.NewCourseRepository(suite.store), zap.NewNop())
	suite.user = testutil.CreateUser(suite.T(), suite.store, "alice", "secret1")
}

func (suite *CourseServiceTestSuite) TestAddCourse() {
	course, err := suite.service.AddCourse(suite.ctx, AddCourseInput{Name: " Algorithms ", UserID: suite.user.ID})
	require.NoError(suite.T(), err)
	assert.NotZero(suite.T(), course.ID)
	assert.Equal(suite.T(), "Algorithms", course.Name)

	_, err = suite.service.AddCourse(suite.ctx, AddCourseInput{Name: "  ", UserID: suite.user.ID})
	assert.True(suite.T(), apierrors.IsValidation(err))
	assert.EqualError(suite.T(), err, "course name must not be empty")
}

func (suite *CourseServiceTestSuite) TestCourseOptions_NoCourses() {
	options, err := suite.service.CourseOptions(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), options, 1)
	assert.True(suite.T(), options[0].IsSentinel())
	assert.Equal(suite.T(), models.NoCourseName, options[0].Name)
}

func (suite *CourseServiceTestSuite) TestCourseOptions_WithCourses() {
	testutil.CreateCourse(suite.T(), suite.store, "Algorithms", suite.user.ID)
	testutil.CreateCourse(suite.T(), suite.store, "Databases", suite.user.ID)

	options, err := suite.service.CourseOptions(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), options, 2)
	assert.Equal(suite.T(), "Algorithms", options[0].Name)
	assert.Equal(suite.T(), "Databases", options[1].Name)
}

func (suite *CourseServiceTestSuite) TestCourseName() {
	course := testutil.CreateCourse(suite.T(), suite.store, "Algorithms", suite.user.ID)

	assert.Equal(suite.T(), "Algorithms", suite.service.CourseName(suite.ctx, course.ID))
	assert.Equal(suite.T(), "", suite.service.CourseName(suite.ctx, course.ID+1))
}

func (suite *CourseServiceTestSuite) TestDeleteCourse_CascadesTasks() {
	course := testutil.CreateCourse(suite.T(), suite.store, "Algorithms", suite.user.ID)
	other := testutil.CreateCourse(suite.T(), suite.store, "Databases", suite.user.ID)
	day := models.NewDate(2026, time.May, 1)
	testutil.CreateAcademicTask(suite.T(), suite.store, "HW1", day, models.TaskStatusNotStarted, course.ID)
	kept := testutil.CreateAcademicTask(suite.T(), suite.store, "Lab", day, models.TaskStatusNotStarted, other.ID)

	deleted, err := suite.service.DeleteCourse(suite.ctx, suite.user.ID, course.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), deleted)
	assert.Equal(suite.T(), "", suite.service.CourseName(suite.ctx, course.ID))

	var remaining []models.AcademicTask
	require.NoError(suite.T(), suite.store.DB(suite.ctx).Find(&remaining).Error)
	require.Len(suite.T(), remaining, 1)
	assert.Equal(suite.T(), kept.ID, remaining[0].ID)
}

func (suite *CourseServiceTestSuite) TestDeleteCourse_NotOwned() {
	bob := testutil.CreateUser(suite.T(), suite.store, "bob", "secret1")
	course := testutil.CreateCourse(suite.T(), suite.store, "Algorithms", suite.user.ID)

	deleted, err := suite.service.DeleteCourse(suite.ctx, bob.ID, course.ID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)

	deleted, err = suite.service.DeleteCourse(suite.ctx, suite.user.ID, course.ID+10)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
}

func TestCourseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CourseServiceTestSuite))
}

func TestCourseService_PersistenceFailure(t *testing.T) {
	store, mock := testutil.PrepareMockStore(t)
	service := NewCourseService(repository.NewCourseRepository(store), zap.NewNop())
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "Courses"`)).WillReturnError(errors.New("disk I/O error"))

	_, err := service.ListCourses(ctx, 1)
	assert.ErrorIs(t, err, ErrPersistence)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "Courses"`)).WillReturnError(errors.New("disk I/O error"))
	assert.Equal(t, "", service.CourseName(ctx, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "Courses"`)).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "course_name", "user_id"}).AddRow(1, "Algorithms", 1))
	assert.Equal(t, "Algorithms", service.CourseName(ctx, 1))

	assert.NoError(t, mock.ExpectationsWereMet())
}
