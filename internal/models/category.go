package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MainCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
}

type SubCategory struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MainCategoryID primitive.ObjectID `bson:"main_category_id" json:"main_category_id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
}

type SubCategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CategoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	Icon          string                `json:"icon,omitempty"`
	Subcategories []SubCategoryResponse `json:"subcategories"`
}
