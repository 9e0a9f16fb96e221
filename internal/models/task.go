package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Priority    string             `bson:"priority" json:"priority"`
	DueDate     string             `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
}
