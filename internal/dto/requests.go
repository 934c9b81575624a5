package dto

// RegisterRequest - тело запроса регистрации.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest - тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailRequest - тело запроса подтверждения email.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// NotificationsRequest - переключение почтовых уведомлений.
type NotificationsRequest struct {
	EmailNotifications *bool `json:"emailNotifications" binding:"required"`
}

// RatingsRequest - покритериальные оценки в запросе создания отзыва.
type RatingsRequest struct {
	Apartment          int  `json:"apartment"`
	ResidentialComplex *int `json:"residentialComplex"`
	Courtyard          *int `json:"courtyard"`
	Parking            *int `json:"parking"`
	Infrastructure     *int `json:"infrastructure"`
}

// YearMonthRequest - граница периода аренды.
type YearMonthRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// RentalPeriodRequest - период аренды с точностью до месяца.
type RentalPeriodRequest struct {
	From YearMonthRequest `json:"from"`
	To   YearMonthRequest `json:"to"`
}

// CreatePropertyReviewRequest - создание отзыва о жилье, ЖК или арендодателе.
type CreatePropertyReviewRequest struct {
	ReviewType         string               `json:"reviewType"`
	City               string               `json:"city"`
	Street             string               `json:"street"`
	Building           string               `json:"building"`
	Floor              *int                 `json:"floor"`
	Apartment          string               `json:"apartment"`
	ResidentialComplex string               `json:"residentialComplex"`
	NumberOfRooms      int                  `json:"numberOfRooms"`
	RentalPeriod       *RentalPeriodRequest `json:"rentalPeriod"`
	LandlordName       string               `json:"landlordName"`
	Ratings            RatingsRequest       `json:"ratings"`
	ReviewText         string               `json:"reviewText"`
}

// CreateTenantReviewRequest - создание отзыва об арендаторе.
// Оценка необязательна: отзыв может быть чисто текстовым.
type CreateTenantReviewRequest struct {
	TenantFullName      string              `json:"tenantFullName"`
	TenantIDLastFour    string              `json:"tenantIdLastFour"`
	TenantPhoneLastFour string              `json:"tenantPhoneLastFour"`
	RentalPeriod        RentalPeriodRequest `json:"rentalPeriod"`
	Rating              *int                `json:"rating"`
	ReviewText          string              `json:"reviewText"`
}

// CreateCommentRequest - текст нового комментария.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// SaveAddressRequest - явное сохранение адреса.
type SaveAddressRequest struct {
	City               string `json:"city"`
	Street             string `json:"street"`
	Building           string `json:"building"`
	ResidentialComplex string `json:"residentialComplex"`
}

// ModerateRequest - действие модератора над отзывом.
type ModerateRequest struct {
	Action string `json:"action"`
}

// UserStatusRequest - включение или блокировка учётной записи.
type UserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// PropertySearchQuery - параметры поиска адресных отзывов.
type PropertySearchQuery struct {
	City     string `form:"city"`
	Street   string `form:"street"`
	Building string `form:"building"`
	Rooms    int    `form:"rooms"`
	Page     int64  `form:"page"`
	Limit    int64  `form:"limit"`
}

// TenantSearchQuery - параметры поиска отзывов об арендаторах.
type TenantSearchQuery struct {
	TenantFullName string `form:"tenantFullName"`
	IDLastFour     string `form:"idLastFour"`
	PhoneLastFour  string `form:"phoneLastFour"`
	Page           int64  `form:"page"`
	Limit          int64  `form:"limit"`
}

// MixedSearchQuery - параметры смешанного поиска по всем видам отзывов.
type MixedSearchQuery struct {
	City           string `form:"city"`
	Street         string `form:"street"`
	Building       string `form:"building"`
	TenantFullName string `form:"tenantFullName"`
	IDLastFour     string `form:"idLastFour"`
	PhoneLastFour  string `form:"phoneLastFour"`
	Page           int64  `form:"page"`
	Limit          int64  `form:"limit"`
}
