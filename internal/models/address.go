package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RememberedAddress - запомненный адрес для подсказок в форме отзыва.
// Тройка (city, street, building) уникальна, повторное использование
// увеличивает счётчик.
type RememberedAddress struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id"`
	City               string        `bson:"city" json:"city"`
	Street             string        `bson:"street" json:"street"`
	Building           string        `bson:"building" json:"building"`
	ResidentialComplex string        `bson:"residential_complex,omitempty" json:"residentialComplex,omitempty"`
	UsageCount         int           `bson:"usage_count" json:"usageCount"`
	LastUsed           time.Time     `bson:"last_used" json:"lastUsed"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
}

// Label возвращает адрес одной строкой для подсказок и заголовков.
func (a *RememberedAddress) Label() string {
	return a.City + ", " + a.Street + ", " + a.Building
}
