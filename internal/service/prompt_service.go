package service

import (
	"context"
	"errors"
	"time"

	"webhook-chat-be/internal/dto"
	"webhook-chat-be/internal/entity"
	"webhook-chat-be/internal/repository/contract"

	"github.com/google/uuid"
)

var ErrPromptNotFound = errors.New("prompt not found")

type IPromptService interface {
	List(ctx context.Context, userId uuid.UUID) ([]dto.PromptItem, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePromptRequest) (*dto.PromptItem, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePromptRequest) (*dto.PromptItem, error)
	Move(ctx context.Context, userId uuid.UUID, req *dto.MovePromptRequest) ([]dto.PromptItem, error)
	Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderPromptsRequest) ([]dto.PromptItem, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]dto.PromptItem, error)
}

// promptService keeps the display_order column dense and 0-based: every
// delete and move renumbers in the store, never only in memory.
type promptService struct {
	promptRepo contract.ExamplePromptRepository
}

func NewPromptService(promptRepo contract.ExamplePromptRepository) IPromptService {
	return &promptService{
		promptRepo: promptRepo,
	}
}

func (s *promptService) List(ctx context.Context, userId uuid.UUID) ([]dto.PromptItem, error) {
	prompts, err := s.promptRepo.FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	return toPromptItems(prompts), nil
}

func (s *promptService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePromptRequest) (*dto.PromptItem, error) {
	existing, err := s.promptRepo.FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	prompt := &entity.ExamplePrompt{
		Id:           uuid.New(),
		UserId:       userId,
		PromptText:   req.PromptText,
		DisplayOrder: len(existing), // append to the end
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	item := toPromptItem(prompt)
	return &item, nil
}

func (s *promptService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePromptRequest) (*dto.PromptItem, error) {
	prompts, err := s.promptRepo.FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	target := findPrompt(prompts, req.Id)
	if target == nil {
		return nil, ErrPromptNotFound
	}

	if err := s.promptRepo.UpdateText(ctx, target.Id, req.PromptText); err != nil {
		return nil, err
	}

	target.PromptText = req.PromptText
	target.UpdatedAt = time.Now()
	item := toPromptItem(target)
	return &item, nil
}

// Move shifts the prompt one step up or down. At either edge it is a no-op;
// the current list is returned either way.
func (s *promptService) Move(ctx context.Context, userId uuid.UUID, req *dto.MovePromptRequest) ([]dto.PromptItem, error) {
	prompts, err := s.promptRepo.FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, prompt := range prompts {
		if prompt.Id == req.Id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrPromptNotFound
	}

	swap := idx - 1
	if req.Direction == "down" {
		swap = idx + 1
	}
	if swap < 0 || swap >= len(prompts) {
		return toPromptItems(prompts), nil
	}

	prompts[idx], prompts[swap] = prompts[swap], prompts[idx]
	if err := s.renumber(ctx, prompts); err != nil {
		return nil, err
	}
	return toPromptItems(prompts), nil
}

// Reorder applies a full permutation of the caller's prompts and persists the
// resulting dense 0-based ranks.
func (s *promptService) Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderPromptsRequest) ([]dto.PromptItem, error) {
	prompts, err := s.promptRepo.FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(req.Ids) != len(prompts) {
		return nil, ErrPromptNotFound
	}

	byId := make(map[uuid.UUID]*entity.ExamplePrompt, len(prompts))
	for _, prompt := range prompts {
		byId[prompt.Id] = prompt
	}

	reordered := make([]*entity.ExamplePrompt, 0, len(req.Ids))
	for _, id := range req.Ids {
		prompt, ok := byId[id]
		if !ok {
			return nil, ErrPromptNotFound
		}
		delete(byId, id) // reject duplicate ids
		reordered = append(reordered, prompt)
	}

	if err := s.renumber(ctx, reordered); err != nil {
		return nil, err
	}
	return toPromptItems(reordered), nil
}

// Delete removes the prompt and closes the gap so display_order stays dense.
func (s *promptService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]dto.PromptItem, error) {
	prompts, err := s.promptRepo.FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	target := findPrompt(prompts, id)
	if target == nil {
		return nil, ErrPromptNotFound
	}

	if err := s.promptRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	remaining := make([]*entity.ExamplePrompt, 0, len(prompts)-1)
	for _, prompt := range prompts {
		if prompt.Id != id {
			remaining = append(remaining, prompt)
		}
	}
	if err := s.renumber(ctx, remaining); err != nil {
		return nil, err
	}
	return toPromptItems(remaining), nil
}

// renumber persists list position as display_order, writing only rows whose
// position actually changed.
func (s *promptService) renumber(ctx context.Context, prompts []*entity.ExamplePrompt) error {
	for i, prompt := range prompts {
		if prompt.DisplayOrder == i {
			continue
		}
		if err := s.promptRepo.UpdateDisplayOrder(ctx, prompt.Id, i); err != nil {
			return err
		}
		prompt.DisplayOrder = i
	}
	return nil
}

func findPrompt(prompts []*entity.ExamplePrompt, id uuid.UUID) *entity.ExamplePrompt {
	for _, prompt := range prompts {
		if prompt.Id == id {
			return prompt
		}
	}
	return nil
}

func toPromptItem(prompt *entity.ExamplePrompt) dto.PromptItem {
	return dto.PromptItem{
		Id:           prompt.Id,
		PromptText:   prompt.PromptText,
		DisplayOrder: prompt.DisplayOrder,
		CreatedAt:    prompt.CreatedAt,
		UpdatedAt:    prompt.UpdatedAt,
	}
}

func toPromptItems(prompts []*entity.ExamplePrompt) []dto.PromptItem {
	items := make([]dto.PromptItem, 0, len(prompts))
	for _, prompt := range prompts {
		items = append(items, toPromptItem(prompt))
	}
	return items
}
