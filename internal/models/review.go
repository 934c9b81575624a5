package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Ratings - покритериальные оценки отзыва о жилье по шкале 1-5.
// Обязательна только оценка квартиры, остальные критерии опциональны.
type Ratings struct {
	Apartment          int  `bson:"apartment" json:"apartment"`
	ResidentialComplex *int `bson:"residential_complex,omitempty" json:"residentialComplex,omitempty"`
	Courtyard          *int `bson:"courtyard,omitempty" json:"courtyard,omitempty"`
	Parking            *int `bson:"parking,omitempty" json:"parking,omitempty"`
	Infrastructure     *int `bson:"infrastructure,omitempty" json:"infrastructure,omitempty"`
}

// Overall выводит итоговую оценку: среднее заполненных критериев,
// округлённое сначала до десятых, затем до целого.
func (r Ratings) Overall() int {
	sum := float64(r.Apartment)
	n := 1.0
	for _, v := range []*int{r.ResidentialComplex, r.Courtyard, r.Parking, r.Infrastructure} {
		if v != nil {
			sum += float64(*v)
			n++
		}
	}
	avg := math.Round(sum/n*10) / 10
	return int(math.Round(avg))
}

// YearMonth - точка периода аренды с точностью до месяца.
type YearMonth struct {
	Month int `bson:"month" json:"month"`
	Year  int `bson:"year" json:"year"`
}

// Before сообщает, предшествует ли точка периода другой.
func (m YearMonth) Before(o YearMonth) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// RentalPeriod - период аренды, границы задаются месяцем и годом.
type RentalPeriod struct {
	From YearMonth `bson:"from" json:"from"`
	To   YearMonth `bson:"to" json:"to"`
}

// Comment - встроенный комментарий к отзыву со своим циклом модерации.
type Comment struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Author      bson.ObjectID `bson:"author" json:"author"`
	Text        string        `bson:"text" json:"text"`
	IsApproved  bool          `bson:"is_approved" json:"isApproved"`
	IsReported  bool          `bson:"is_reported" json:"isReported"`
	ReportCount int           `bson:"report_count" json:"reportCount"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`

	// AuthorName заполняется при выдаче наружу, в базе не хранится.
	AuthorName string `bson:"-" json:"authorName,omitempty"`
}

// PropertyReview - отзыв, привязанный к адресу: о квартире, ЖК или арендодателе.
// Тип различается полем ReviewType; пустое значение означает отзыв о квартире
// (исторические записи сохранялись без типа).
type PropertyReview struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Author             bson.ObjectID `bson:"author" json:"author"`
	ReviewType         string        `bson:"review_type,omitempty" json:"reviewType,omitempty"`
	City               string        `bson:"city" json:"city"`
	Street             string        `bson:"street" json:"street"`
	Building           string        `bson:"building" json:"building"`
	Floor              *int          `bson:"floor,omitempty" json:"floor,omitempty"`
	Apartment          string        `bson:"apartment,omitempty" json:"apartment,omitempty"`
	ResidentialComplex string        `bson:"residential_complex,omitempty" json:"residentialComplex,omitempty"`
	NumberOfRooms      int           `bson:"number_of_rooms,omitempty" json:"numberOfRooms,omitempty"`
	RentalPeriod       *RentalPeriod `bson:"rental_period,omitempty" json:"rentalPeriod,omitempty"`
	LandlordName       string        `bson:"landlord_name,omitempty" json:"landlordName,omitempty"`
	Ratings            Ratings       `bson:"ratings" json:"ratings"`
	Rating             int           `bson:"rating" json:"rating"`
	ReviewText         string        `bson:"review_text" json:"reviewText"`
	IsApproved         bool          `bson:"is_approved" json:"isApproved"`
	IsReported         bool          `bson:"is_reported" json:"isReported"`
	ReportCount        int           `bson:"report_count" json:"reportCount"`
	Comments           []Comment     `bson:"comments" json:"comments"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updatedAt"`

	// Поля выдачи, в базе не хранятся.
	Title      string `bson:"-" json:"title,omitempty"`
	AuthorName string `bson:"-" json:"authorName,omitempty"`
}

// Kind возвращает нормализованный тип отзыва с учётом исторических записей.
func (r *PropertyReview) Kind() string {
	if r.ReviewType == "" {
		return ReviewKindProperty
	}
	return r.ReviewType
}

// TenantReview - отзыв арендодателя об арендаторе.
// Арендатор идентифицируется ФИО и последними цифрами документов,
// полные номера не хранятся.
type TenantReview struct {
	ID                   bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Author               bson.ObjectID `bson:"author" json:"author"`
	TenantFullName       string        `bson:"tenant_full_name" json:"tenantFullName"`
	TenantIDLastFour     string        `bson:"tenant_id_last_four,omitempty" json:"tenantIdLastFour,omitempty"`
	TenantPhoneLastFour  string        `bson:"tenant_phone_last_four,omitempty" json:"tenantPhoneLastFour,omitempty"`
	RentalPeriod         RentalPeriod  `bson:"rental_period" json:"rentalPeriod"`
	Rating               int           `bson:"rating,omitempty" json:"rating,omitempty"`
	ReviewText           string        `bson:"review_text" json:"reviewText"`
	IsApproved           bool          `bson:"is_approved" json:"isApproved"`
	IsReported           bool          `bson:"is_reported" json:"isReported"`
	ReportCount          int           `bson:"report_count" json:"reportCount"`
	Comments             []Comment     `bson:"comments" json:"comments"`
	CreatedAt            time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time     `bson:"updated_at" json:"updatedAt"`

	// Поля выдачи, в базе не хранятся. Адрес подставляется из последнего
	// адресного отзыва того же автора при смешанном поиске.
	Title      string `bson:"-" json:"title,omitempty"`
	AuthorName string `bson:"-" json:"authorName,omitempty"`
	City       string `bson:"-" json:"city,omitempty"`
	Street     string `bson:"-" json:"street,omitempty"`
	Building   string `bson:"-" json:"building,omitempty"`
}
