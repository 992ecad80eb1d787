package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/domains/link/model"
	"vocalhub-backend/internal/domains/link/repository"
	"vocalhub-backend/internal/shared/apperror"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateLinkRequest) (*model.Link, error)
	List(ctx context.Context, category *model.Category) ([]*model.Link, error)
}

type linkService struct {
	repo repository.Repository
}

func NewLinkService(repo repository.Repository) ServiceInterface {
	return &linkService{repo: repo}
}

// Create - Add a community link (admin route)
func (s *linkService) Create(ctx context.Context, req *model.CreateLinkRequest) (*model.Link, error) {
	// 1. Normalize; category is matched case-insensitively
	req.Name = strings.TrimSpace(req.Name)
	req.URL = strings.TrimSpace(req.URL)
	req.Category = model.Category(strings.ToUpper(strings.TrimSpace(string(req.Category))))

	// 2. Validate
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// 3. Build and save
	link := &model.Link{
		ID:          uuid.New(),
		Name:        req.Name,
		URL:         req.URL,
		Category:    req.Category,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}

	log.Info().Str("link_id", link.ID.String()).Str("category", string(link.Category)).Msg("link created")
	return link, nil
}

func (s *linkService) List(ctx context.Context, category *model.Category) ([]*model.Link, error) {
	links, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}

	// category ASC, name ASC
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].Category != links[j].Category {
			return links[i].Category < links[j].Category
		}
		return links[i].Name < links[j].Name
	})
	return links, nil
}
