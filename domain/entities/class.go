package entities

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class is a class document from the classes collection. Membership is
// authoritative on the class side: the class owns the list of student
// identifiers, students do not mirror it.
type Class struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name       string               `json:"name" bson:"name"`
	StudentIDs []primitive.ObjectID `json:"student_ids" bson:"student_ids"`
}
