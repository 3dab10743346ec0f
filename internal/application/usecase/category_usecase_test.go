package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jhoicas/storetrack-api/internal/application/dto"
	"github.com/jhoicas/storetrack-api/internal/application/usecase"
	"github.com/jhoicas/storetrack-api/internal/domain"
	"github.com/jhoicas/storetrack-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTree_AnidaDescendientes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewCategoryUseCase(store, store.Categories())
	root := createCategory(t, uc, "Herramientas", nil)
	child := createCategory(t, uc, "Eléctricas", &root)
	createCategory(t, uc, "Inalámbricas", &child)
	createCategory(t, uc, "Jardín", nil)

	tree, err := uc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Herramientas", tree[0].Description)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Inalámbricas", tree[0].Children[0].Children[0].Description)

	sub, err := uc.GetByID(ctx, child)
	require.NoError(t, err)
	assert.Len(t, sub.Children, 1)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUpdate_RechazaCiclos(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewCategoryUseCase(store, store.Categories())
	root := createCategory(t, uc, "Herramientas", nil)
	child := createCategory(t, uc, "Eléctricas", &root)
	grandchild := createCategory(t, uc, "Inalámbricas", &child)

	_, err := uc.Update(ctx, root, dto.UpdateCategoryRequest{ParentID: &grandchild})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, root, dto.UpdateCategoryRequest{ParentID: &root})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	empty := ""
	moved, err := uc.Update(ctx, grandchild, dto.UpdateCategoryRequest{ParentID: &empty})
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Description: "Huérfana", ParentID: strPtr("no-existe")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Description: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate_CambiosCruzadosConcurrentesNoFormanCiclo(t *testing.T) {
	ctx := context.Background()
	for round := 0; round < 20; round++ {
		store := memory.NewStore()
		uc := usecase.NewCategoryUseCase(store, store.Categories())
		a := createCategory(t, uc, "Herramientas", nil)
		b := createCategory(t, uc, "Jardín", nil)

		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for _, move := range [][2]string{{a, b}, {b, a}} {
			wg.Add(1)
			go func(id, parent string) {
				defer wg.Done()
				_, err := uc.Update(ctx, id, dto.UpdateCategoryRequest{ParentID: &parent})
				errs <- err
			}(move[0], move[1])
		}
		wg.Wait()
		close(errs)

		successes := 0
		for err := range errs {
			if err == nil {
				successes++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
		require.Equal(t, 1, successes)

		tree, err := uc.Tree(ctx)
		require.NoError(t, err)
		require.Len(t, tree, 1)
		require.Len(t, tree[0].Children, 1)
	}
}

func strPtr(s string) *string { return &s }
