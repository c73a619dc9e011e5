package models

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	MainCategoriesColName = "main_categories"
	SubCategoriesColName  = "sub_categories"
)

type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	ListSubcategoriesByCategoryName(ctx context.Context, name string) ([]SubCategoryResponse, error)
}

func (mdb *MongodbRepo) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	mainCol, err := mdb.GetCollection(ctx, DBName, MainCategoriesColName)
	if err != nil {
		return nil, err
	}
	subCol, err := mdb.GetCollection(ctx, DBName, SubCategoriesColName)
	if err != nil {
		return nil, err
	}

	cursor, err := mainCol.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var mains []MainCategory
	if err := cursor.All(ctx, &mains); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	categories := make([]CategoryResponse, 0, len(mains))
	for _, main := range mains {
		subCursor, err := subCol.Find(ctx, bson.M{"main_category_id": main.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to list subcategories: %w", err)
		}

		var subs []SubCategory
		if err := subCursor.All(ctx, &subs); err != nil {
			return nil, fmt.Errorf("failed to decode subcategories: %w", err)
		}

		subResponses := make([]SubCategoryResponse, 0, len(subs))
		for _, sub := range subs {
			subResponses = append(subResponses, SubCategoryResponse{
				ID:          sub.ID.Hex(),
				Name:        sub.Name,
				Description: sub.Description,
			})
		}

		categories = append(categories, CategoryResponse{
			ID:            main.ID.Hex(),
			Name:          main.Name,
			Description:   main.Description,
			Icon:          main.Icon,
			Subcategories: subResponses,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

func (mdb *MongodbRepo) ListSubcategoriesByCategoryName(ctx context.Context, name string) ([]SubCategoryResponse, error) {
	mainCol, err := mdb.GetCollection(ctx, DBName, MainCategoriesColName)
	if err != nil {
		return nil, err
	}
	subCol, err := mdb.GetCollection(ctx, DBName, SubCategoriesColName)
	if err != nil {
		return nil, err
	}

	var main MainCategory
	if err := mainCol.FindOne(ctx, bson.M{"name": name}).Decode(&main); err != nil {
		return nil, nil
	}

	cursor, err := subCol.Find(ctx, bson.M{"main_category_id": main.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []SubCategory
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subcategories: %w", err)
	}

	responses := make([]SubCategoryResponse, 0, len(subs))
	for _, sub := range subs {
		responses = append(responses, SubCategoryResponse{
			ID:          sub.ID.Hex(),
			Name:        sub.Name,
			Description: sub.Description,
		})
	}
	return responses, nil
}
