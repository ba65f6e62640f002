package services

import (
	"errors"
	"fmt"

	"github.com/boardhub/boardhub/internal/dto"
	"github.com/boardhub/boardhub/internal/models"
	"github.com/boardhub/boardhub/internal/repository"
	"github.com/google/uuid"
)

var ErrInvalidBoardName = errors.New("board name must be between 1 and 50 characters")

// BoardService provides business logic for board operations, including
// the denormalized board view the clients render from.
type BoardService struct {
	guard         *Guard
	boardRepo     repository.BoardRepository
	columnRepo    repository.ColumnRepository
	taskRepo      repository.TaskRepository
	labelRepo     repository.LabelRepository
	checklistRepo repository.ChecklistItemRepository
	commentRepo   repository.CommentRepository
	userRepo      repository.UserRepository
	columnService *ColumnService
}

// NewBoardService creates a new BoardService.
func NewBoardService(
	guard *Guard,
	boardRepo repository.BoardRepository,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	labelRepo repository.LabelRepository,
	checklistRepo repository.ChecklistItemRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	columnService *ColumnService,
) *BoardService {
	return &BoardService{
		guard:         guard,
		boardRepo:     boardRepo,
		columnRepo:    columnRepo,
		taskRepo:      taskRepo,
		labelRepo:     labelRepo,
		checklistRepo: checklistRepo,
		commentRepo:   commentRepo,
		userRepo:      userRepo,
		columnService: columnService,
	}
}

// CreateBoardInput represents parameters to create a board.
type CreateBoardInput struct {
	WorkspaceID uuid.UUID
	Name        string
	Description string
	Color       string
	ActorID     uuid.UUID
}

// CreateBoard creates a board in a workspace. Owner only.
func (s *BoardService) CreateBoard(input CreateBoardInput) (*models.Board, error) {
	if !nameValid(input.Name) {
		return nil, ErrInvalidBoardName
	}
	if !descriptionValid(input.Description) {
		return nil, ErrDescriptionTooLong
	}

	if _, _, err := s.guard.RequireOwner(input.ActorID, input.WorkspaceID); err != nil {
		return nil, err
	}

	board := &models.Board{
		WorkspaceID: input.WorkspaceID,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
	}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// UpdateBoardInput represents a partial board update.
type UpdateBoardInput struct {
	Name        *string
	Description *string
	Color       *string
}

// UpdateBoard patches the supplied fields of a board. Owner only.
func (s *BoardService) UpdateBoard(actorID, boardID uuid.UUID, input UpdateBoardInput) (*models.Board, error) {
	workspaceID, err := s.guard.WorkspaceFromBoard(boardID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if input.Name != nil {
		if !nameValid(*input.Name) {
			return nil, ErrInvalidBoardName
		}
		board.Name = *input.Name
	}
	if input.Description != nil {
		if !descriptionValid(*input.Description) {
			return nil, ErrDescriptionTooLong
		}
		board.Description = *input.Description
	}
	if input.Color != nil {
		board.Color = *input.Color
	}

	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return board, nil
}

// DeleteBoard deletes a board and everything on it. Columns go one at a
// time through the column cascade, so no task, comment, checklist item
// or label link survives the board. Owner only.
func (s *BoardService) DeleteBoard(actorID, boardID uuid.UUID) error {
	workspaceID, err := s.guard.WorkspaceFromBoard(boardID)
	if err != nil {
		return err
	}
	if _, _, err := s.guard.RequireOwner(actorID, workspaceID); err != nil {
		return err
	}

	columns, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return fmt.Errorf("failed to list columns: %w", err)
	}
	for _, column := range columns {
		if err := s.columnService.DeleteColumn(actorID, column.ID); err != nil {
			return err
		}
	}

	if err := s.boardRepo.Delete(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	return nil
}

// GetBoardDetail assembles the full board view for a member: columns in
// position order, each with its tasks in position order, every task
// carrying its resolved assignee, labels, checklist items and a
// has-comments flag.
func (s *BoardService) GetBoardDetail(actorID, boardID uuid.UUID) (*dto.BoardDetailDTO, error) {
	workspaceID, err := s.guard.WorkspaceFromBoard(boardID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.guard.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	columns, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	// Assignees repeat across tasks; resolve each user once.
	assignees := make(map[uuid.UUID]*dto.UserDTO)

	columnDTOs := make([]dto.ColumnWithTasksDTO, 0, len(columns))
	for _, column := range columns {
		tasks, err := s.taskRepo.ListByColumn(column.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}

		taskDTOs := make([]dto.TaskDetailDTO, 0, len(tasks))
		for _, task := range tasks {
			detail, err := s.taskDetail(task, assignees)
			if err != nil {
				return nil, err
			}
			taskDTOs = append(taskDTOs, *detail)
		}

		columnDTOs = append(columnDTOs, dto.ColumnWithTasksDTO{
			ID:       column.ID,
			BoardID:  column.BoardID,
			Name:     column.Name,
			Position: column.Position,
			Tasks:    taskDTOs,
		})
	}

	return &dto.BoardDetailDTO{
		ID:          board.ID,
		WorkspaceID: board.WorkspaceID,
		Name:        board.Name,
		Description: board.Description,
		Color:       board.Color,
		Columns:     columnDTOs,
	}, nil
}

func (s *BoardService) taskDetail(task models.Task, assignees map[uuid.UUID]*dto.UserDTO) (*dto.TaskDetailDTO, error) {
	labels, err := s.labelRepo.ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task labels: %w", err)
	}
	labelDTOs := make([]dto.LabelDTO, 0, len(labels))
	for _, label := range labels {
		labelDTOs = append(labelDTOs, dto.ToLabelDTO(label))
	}

	items, err := s.checklistRepo.ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	itemDTOs := make([]dto.ChecklistItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, dto.ToChecklistItemDTO(item))
	}

	hasComments, err := s.commentRepo.HasComments(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check comments: %w", err)
	}

	var assignee *dto.UserDTO
	if task.AssignedTo != nil {
		var ok bool
		if assignee, ok = assignees[*task.AssignedTo]; !ok {
			user, err := s.userRepo.FindByID(*task.AssignedTo)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve assignee: %w", err)
			}
			resolved := dto.ToUserDTO(*user)
			assignee = &resolved
			assignees[*task.AssignedTo] = assignee
		}
	}

	return &dto.TaskDetailDTO{
		ID:             task.ID,
		ColumnID:       task.ColumnID,
		Name:           task.Name,
		Position:       task.Position,
		Priority:       task.Priority,
		Estimate:       task.Estimate,
		DueDate:        task.DueDate,
		Description:    task.Description,
		CreatedBy:      task.CreatedBy,
		Assignee:       assignee,
		Labels:         labelDTOs,
		ChecklistItems: itemDTOs,
		HasComments:    hasComments,
	}, nil
}
