package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/domain/entity"
	domaininv "github.com/jhoicas/storetrack-api/internal/domain/inventory"
	"github.com/jhoicas/storetrack-api/internal/domain/repository"
)

// CategoryUseCase árbol de categorías. Las lecturas arman el árbol en memoria desde la lista de adyacencia.
type CategoryUseCase struct {
	txRunner CategoryTxRunner
	repo     repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(txRunner CategoryTxRunner, repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{txRunner: txRunner, repo: repo}
}

// Tree devuelve las categorías raíz con todos sus descendientes anidados.
func (uc *CategoryUseCase) Tree(ctx context.Context) ([]dto.CategoryResponse, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	roots, _ := domaininv.BuildTree(all)
	out := make([]dto.CategoryResponse, 0, len(roots))
	for _, r := range roots {
		out = append(out, *dto.NewCategoryResponse(r))
	}
	return out, nil
}

// GetByID devuelve la categoría con su subárbol completo.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	_, nodes := domaininv.BuildTree(all)
	node, ok := nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return dto.NewCategoryResponse(node), nil
}

// Create crea una categoría. parentId vacío o nil = raíz.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description es requerida", domain.ErrInvalidInput)
	}
	category := &entity.Category{ID: uuid.New().String(), Description: description}
	if in.ParentID != nil && *in.ParentID != "" {
		if err := requireParent(ctx, uc.repo, *in.ParentID); err != nil {
			return nil, err
		}
		parent := *in.ParentID
		category.ParentID = &parent
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return dto.NewCategoryResponse(category), nil
}

// Update cambia descripción y/o padre. Rechaza un padre que cierre un ciclo.
// La validación del árbol y la escritura corren en la misma transacción.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var description string
	if in.Description != nil {
		description = strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: description no puede estar vacía", domain.ErrInvalidInput)
		}
	}
	err := uc.txRunner.RunCategories(ctx, func(repo repository.CategoryRepository) error {
		category, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
		}
		if in.Description != nil {
			category.Description = description
		}
		if in.ParentID != nil {
			if *in.ParentID == "" {
				category.ParentID = nil
			} else {
				if err := requireParent(ctx, repo, *in.ParentID); err != nil {
					return err
				}
				all, err := repo.ListAll(ctx)
				if err != nil {
					return err
				}
				if domaininv.WouldCreateCycle(all, id, *in.ParentID) {
					return fmt.Errorf("%w: %s no puede ser padre de %s (ciclo)", domain.ErrInvalidInput, *in.ParentID, id)
				}
				parent := *in.ParentID
				category.ParentID = &parent
			}
		}
		return repo.Update(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func requireParent(ctx context.Context, repo repository.CategoryRepository, id string) error {
	parent, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("%w: categoría padre %s", domain.ErrNotFound, id)
	}
	return nil
}
