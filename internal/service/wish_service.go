package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
	"github.com/ourlittleplanet/planet-service/pkg/pagination"
)

type WishService struct {
	wishRepo repository.WishRepository
}

func NewWishService(wishRepo repository.WishRepository) *WishService {
	return &WishService{wishRepo: wishRepo}
}

// WishDTO is a wish as handed to clients, with the derived target-date
// fields attached.
type WishDTO struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description"`
	Type            domain.WishType `json:"type"`
	TargetDate      *string         `json:"targetDate"`
	Completed       bool            `json:"completed"`
	CompletedAt     *time.Time      `json:"completedAt"`
	CreatedBy       *string         `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DaysUntilTarget *int            `json:"daysUntilTarget"`
	IsOverdue       bool            `json:"isOverdue"`
}

type ListWishesRequest struct {
	Page   int
	Limit  int
	Status string
	Type   string
	Sort   string
	Search string
}

type ListFilters struct {
	Status string `json:"status"`
	Type   string `json:"type"`
	Search string `json:"search"`
	Sort   string `json:"sort"`
}

type ListStatistics struct {
	Total         int               `json:"total"`
	TypeBreakdown []domain.TypeStat `json:"typeBreakdown"`
}

type ListWishesResponse struct {
	Wishes     []WishDTO             `json:"wishes"`
	Pagination pagination.Pagination `json:"pagination"`
	Filters    ListFilters           `json:"filters"`
	Statistics ListStatistics        `json:"statistics"`
}

// validStatuses and validSorts are the closed allow-lists for the
// enum-like listing options; anything outside them falls back to the
// default rather than reaching the query layer.
var validStatuses = map[string]domain.WishStatus{
	"":          domain.WishStatusAll,
	"all":       domain.WishStatusAll,
	"completed": domain.WishStatusCompleted,
	"pending":   domain.WishStatusPending,
}

var validSorts = map[string]domain.WishSort{
	"":                 domain.WishSortCreatedDesc,
	"created_desc":     domain.WishSortCreatedDesc,
	"created_asc":      domain.WishSortCreatedAsc,
	"title_asc":        domain.WishSortTitleAsc,
	"title_desc":       domain.WishSortTitleDesc,
	"target_date_asc":  domain.WishSortTargetDateAsc,
	"target_date_desc": domain.WishSortTargetDateDesc,
}

// List returns one filtered, sorted page of the couple's wishes plus
// the whole-collection type breakdown.
func (s *WishService) List(ctx context.Context, coupleCode string, req ListWishesRequest) (*ListWishesResponse, error) {
	status, ok := validStatuses[req.Status]
	if !ok {
		status = domain.WishStatusAll
	}
	sort, ok := validSorts[req.Sort]
	if !ok {
		sort = domain.WishSortCreatedDesc
	}

	wishType := strings.TrimSpace(req.Type)
	if wishType == "" {
		wishType = "all"
	}
	if wishType != "all" && !domain.ValidWishType(wishType) {
		return nil, domain.ErrInvalidWishType
	}

	// Clamp page/limit before querying so the offset is well-formed.
	norm := pagination.New(req.Page, req.Limit, 0)

	opts := domain.WishListOptions{
		CoupleCode: coupleCode,
		Page:       norm.CurrentPage,
		PageSize:   norm.PageSize,
		Status:     status,
		Type:       wishType,
		Sort:       sort,
		Search:     strings.TrimSpace(req.Search),
	}

	wishes, total, err := s.wishRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.wishRepo.TypeBreakdown(ctx, coupleCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dtos := make([]WishDTO, 0, len(wishes))
	for i := range wishes {
		dtos = append(dtos, wishDTO(&wishes[i], now))
	}

	return &ListWishesResponse{
		Wishes:     dtos,
		Pagination: pagination.New(opts.Page, opts.PageSize, total),
		Filters: ListFilters{
			Status: string(status),
			Type:   wishType,
			Search: opts.Search,
			Sort:   string(sort),
		},
		Statistics: ListStatistics{
			Total:         total,
			TypeBreakdown: breakdown,
		},
	}, nil
}

type CreateWishRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	WishType    *string `json:"wishType"`
	TargetDate  *string `json:"targetDate"`
	CreatedBy   *string `json:"createdBy"`
}

// Create validates and inserts a new wish together with its audit
// entry.
func (s *WishService) Create(ctx context.Context, coupleCode string, req CreateWishRequest) (*WishDTO, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}

	description, err := validateDescription(req.Description)
	if err != nil {
		return nil, err
	}

	wishType := domain.WishTypeOther
	if req.WishType != nil && strings.TrimSpace(*req.WishType) != "" {
		t := strings.TrimSpace(*req.WishType)
		if !domain.ValidWishType(t) {
			return nil, domain.ErrInvalidWishType
		}
		wishType = domain.WishType(t)
	}

	var targetDate *time.Time
	if req.TargetDate != nil && strings.TrimSpace(*req.TargetDate) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(*req.TargetDate))
		if err != nil {
			return nil, domain.ErrInvalidTargetDate
		}
		// One-day grace window: client clocks may lag a day behind.
		yesterday := time.Now().AddDate(0, 0, -1)
		if parsed.Before(time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, parsed.Location())) {
			return nil, domain.ErrPastTargetDate
		}
		targetDate = &parsed
	}

	duplicate, err := s.wishRepo.HasPendingTitle(ctx, coupleCode, title)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, domain.ErrDuplicateWish
	}

	wish := &domain.Wish{
		CoupleCode:  coupleCode,
		Title:       title,
		Description: description,
		Type:        wishType,
		TargetDate:  targetDate,
		CreatedBy:   trimOptional(req.CreatedBy),
	}

	entry := &domain.ActivityLog{
		CoupleCode:  coupleCode,
		ActionType:  domain.ActionCreateWish,
		Description: fmt.Sprintf("added wish: %s", title),
	}

	if err := s.wishRepo.Create(ctx, wish, entry); err != nil {
		return nil, err
	}

	dto := wishDTO(wish, time.Now())
	return &dto, nil
}

type UpdateWishRequest struct {
	Completed   *bool   `json:"completed"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	WishType    *string `json:"wishType"`
	TargetDate  *string `json:"targetDate"`
}

// Update applies a partial update: absent fields stay untouched, an
// empty targetDate clears the date, and a completed toggle always pairs
// with its completedAt timestamp.
func (s *WishService) Update(ctx context.Context, coupleCode string, id int64, req UpdateWishRequest) (*WishDTO, error) {
	var changes domain.WishChanges

	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		changes.Title = &title
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if utf8.RuneCountInString(description) > domain.MaxDescriptionLen {
			return nil, domain.ErrDescTooLong
		}
		changes.Description = &description
	}

	if req.WishType != nil {
		t := strings.TrimSpace(*req.WishType)
		if !domain.ValidWishType(t) {
			return nil, domain.ErrInvalidWishType
		}
		wishType := domain.WishType(t)
		changes.Type = &wishType
	}

	if req.TargetDate != nil {
		value := strings.TrimSpace(*req.TargetDate)
		if value == "" {
			changes.ClearTargetDate = true
		} else {
			parsed, err := time.Parse(dateLayout, value)
			if err != nil {
				return nil, domain.ErrInvalidTargetDate
			}
			changes.TargetDate = &parsed
		}
	}

	changes.Completed = req.Completed

	if changes.Empty() {
		return nil, domain.ErrNoUpdateFields
	}

	entry := &domain.ActivityLog{
		CoupleCode: coupleCode,
		ActionType: domain.ActionUpdateWish,
	}

	wish, err := s.wishRepo.Update(ctx, id, coupleCode, changes, entry)
	if err != nil {
		return nil, err
	}

	dto := wishDTO(wish, time.Now())
	return &dto, nil
}

type DeleteWishResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Delete removes a wish and returns its identifying fields for
// confirmation messaging.
func (s *WishService) Delete(ctx context.Context, coupleCode string, id int64) (*DeleteWishResponse, error) {
	entry := &domain.ActivityLog{
		CoupleCode: coupleCode,
		ActionType: domain.ActionDeleteWish,
	}

	wish, err := s.wishRepo.Delete(ctx, id, coupleCode, entry)
	if err != nil {
		return nil, err
	}

	return &DeleteWishResponse{ID: wish.ID, Title: wish.Title}, nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", domain.ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLen {
		return "", domain.ErrTitleTooLong
	}
	return title, nil
}

func validateDescription(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	description := strings.TrimSpace(*raw)
	if description == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLen {
		return nil, domain.ErrDescTooLong
	}
	return &description, nil
}

func wishDTO(wish *domain.Wish, now time.Time) WishDTO {
	var targetDate *string
	if wish.TargetDate != nil {
		formatted := wish.TargetDate.Format(dateLayout)
		targetDate = &formatted
	}

	return WishDTO{
		ID:              wish.ID,
		Title:           wish.Title,
		Description:     wish.Description,
		Type:            wish.Type,
		TargetDate:      targetDate,
		Completed:       wish.Completed,
		CompletedAt:     wish.CompletedAt,
		CreatedBy:       wish.CreatedBy,
		CreatedAt:       wish.CreatedAt,
		UpdatedAt:       wish.UpdatedAt,
		DaysUntilTarget: wish.DaysUntilTarget(now),
		IsOverdue:       wish.IsOverdue(now),
	}
}
