package services

import (
	"context"

	"github.com/taskbay/api/internal/models"
)

type CategoryService struct {
	categories models.CategoryRepo
}

func NewCategoryService(categories models.CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

func (cs *CategoryService) ListCategories(ctx context.Context) ([]models.CategoryResponse, error) {
	categories, err := cs.categories.ListCategories(ctx)
	if err != nil {
		return nil, models.InternalError("Failed to list categories")
	}
	return categories, nil
}

func (cs *CategoryService) ListSubcategories(ctx context.Context, categoryName string) ([]models.SubCategoryResponse, error) {
	subs, err := cs.categories.ListSubcategoriesByCategoryName(ctx, categoryName)
	if err != nil {
		return nil, models.InternalError("Failed to list subcategories")
	}
	if len(subs) == 0 {
		return nil, models.NotFound("Category not found")
	}
	return subs, nil
}
