package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boardhub/boardhub/internal/constants"
	"github.com/boardhub/boardhub/internal/dto"
	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/boardhub/boardhub/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// BoardHandlerTestSuite defines the test suite for BoardHandler
type BoardHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *BoardHandler
}

// SetupTest runs before each test
func (suite *BoardHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Board{},
		&models.Column{},
		&models.Task{},
		&models.Label{},
		&models.TaskLabel{},
		&models.ChecklistItem{},
		&models.Comment{},
	)
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	workspaceRepo := repository.NewWorkspaceRepository(suite.db)
	boardRepo := repository.NewBoardRepository(suite.db)
	columnRepo := repository.NewColumnRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	labelRepo := repository.NewLabelRepository(suite.db)
	checklistRepo := repository.NewChecklistItemRepository(suite.db)
	commentRepo := repository.NewCommentRepository(suite.db)

	guard := services.NewGuard(workspaceRepo, boardRepo, columnRepo, taskRepo, labelRepo, commentRepo, checklistRepo, userRepo)
	taskService := services.NewTaskService(guard, taskRepo, columnRepo, labelRepo, checklistRepo, commentRepo, workspaceRepo)
	columnService := services.NewColumnService(guard, columnRepo, taskRepo, taskService)
	boardService := services.NewBoardService(guard, boardRepo, columnRepo, taskRepo, labelRepo, checklistRepo, commentRepo, userRepo, columnService)

	suite.handler = NewBoardHandler(boardService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *BoardHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *BoardHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		Name:         email,
		Color:        "#90a4ae",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *BoardHandlerTestSuite) createTestWorkspace(name string, owner *models.User) *models.Workspace {
	workspace := &models.Workspace{
		Name:       name,
		InviteCode: name + "-CODE",
	}
	suite.db.Create(workspace)
	suite.db.Create(&models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      owner.ID,
		Role:        models.RoleOwner,
		JoinedAt:    time.Now(),
	})
	return workspace
}

func (suite *BoardHandlerTestSuite) createTestBoard(workspace *models.Workspace, name string) *models.Board {
	board := &models.Board{WorkspaceID: workspace.ID, Name: name}
	suite.db.Create(board)
	return board
}

// Helper function to create authenticated context
func (suite *BoardHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *BoardHandlerTestSuite) TestCreateBoard_Success() {
	owner := suite.createTestUser("owner@example.com")
	workspace := suite.createTestWorkspace("Acme", owner)

	body, _ := json.Marshal(map[string]interface{}{
		"workspace_id": workspace.ID,
		"name":         "Roadmap",
	})
	c, w := suite.createAuthContext("POST", "/api/boards", body, owner.ID)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.BoardSummaryDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Roadmap", response.Name)
	assert.Equal(suite.T(), workspace.ID, response.WorkspaceID)
}

func (suite *BoardHandlerTestSuite) TestCreateBoard_MemberForbidden() {
	owner := suite.createTestUser("owner@example.com")
	member := suite.createTestUser("member@example.com")
	workspace := suite.createTestWorkspace("Acme", owner)
	suite.db.Create(&models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      member.ID,
		Role:        models.RoleMember,
		JoinedAt:    time.Now(),
	})

	body, _ := json.Marshal(map[string]interface{}{
		"workspace_id": workspace.ID,
		"name":         "Roadmap",
	})
	c, w := suite.createAuthContext("POST", "/api/boards", body, member.ID)

	suite.handler.CreateBoard(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *BoardHandlerTestSuite) TestGetBoard_FullView() {
	owner := suite.createTestUser("owner@example.com")
	workspace := suite.createTestWorkspace("Acme", owner)
	board := suite.createTestBoard(workspace, "Roadmap")

	todo := &models.Column{BoardID: board.ID, WorkspaceID: workspace.ID, Name: "To Do", Position: 1}
	suite.db.Create(todo)
	task := &models.Task{ColumnID: todo.ID, WorkspaceID: workspace.ID, Name: "Ship it", Position: 1, CreatedBy: owner.ID}
	suite.db.Create(task)
	suite.db.Create(&models.Comment{TaskID: task.ID, Text: "hi", AuthorID: owner.ID})

	c, w := suite.createAuthContext("GET", "/api/boards/"+board.ID.String(), nil, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: board.ID.String()}}

	suite.handler.GetBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.BoardDetailDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response.Columns, 1)
	assert.Len(suite.T(), response.Columns[0].Tasks, 1)
	assert.True(suite.T(), response.Columns[0].Tasks[0].HasComments)
}

func (suite *BoardHandlerTestSuite) TestGetBoard_NonMemberForbidden() {
	owner := suite.createTestUser("owner@example.com")
	outsider := suite.createTestUser("outsider@example.com")
	workspace := suite.createTestWorkspace("Acme", owner)
	board := suite.createTestBoard(workspace, "Roadmap")

	c, w := suite.createAuthContext("GET", "/api/boards/"+board.ID.String(), nil, outsider.ID)
	c.Params = gin.Params{{Key: "id", Value: board.ID.String()}}

	suite.handler.GetBoard(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *BoardHandlerTestSuite) TestGetBoard_UnknownID() {
	owner := suite.createTestUser("owner@example.com")
	suite.createTestWorkspace("Acme", owner)

	missing := uuid.New()
	c, w := suite.createAuthContext("GET", "/api/boards/"+missing.String(), nil, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: missing.String()}}

	suite.handler.GetBoard(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *BoardHandlerTestSuite) TestDeleteBoard_Cascades() {
	owner := suite.createTestUser("owner@example.com")
	workspace := suite.createTestWorkspace("Acme", owner)
	board := suite.createTestBoard(workspace, "Roadmap")
	column := &models.Column{BoardID: board.ID, WorkspaceID: workspace.ID, Name: "To Do", Position: 1}
	suite.db.Create(column)
	task := &models.Task{ColumnID: column.ID, WorkspaceID: workspace.ID, Name: "Ship it", Position: 1, CreatedBy: owner.ID}
	suite.db.Create(task)

	c, w := suite.createAuthContext("DELETE", "/api/boards/"+board.ID.String(), nil, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: board.ID.String()}}

	suite.handler.DeleteBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var boards int64
	suite.db.Model(&models.Board{}).Count(&boards)
	assert.Zero(suite.T(), boards)
	var tasks int64
	suite.db.Model(&models.Task{}).Count(&tasks)
	assert.Zero(suite.T(), tasks)
}

func TestBoardHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BoardHandlerTestSuite))
}
