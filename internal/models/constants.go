package models

// Роли пользователей.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// Типы отзывов в адресной коллекции.
const (
	ReviewKindProperty           = "property"
	ReviewKindResidentialComplex = "residentialComplex"
	ReviewKindLandlord           = "landlord"
	ReviewKindTenant             = "tenant"
)

// Действия модерации.
const (
	ModerationApprove = "approve"
	ModerationReject  = "reject"
)

// Действия по зарепорченному контенту.
const (
	ReportActionDismiss = "dismiss"
	ReportActionApprove = "approve"
	ReportActionDelete  = "delete"
)

// ReportThreshold - число жалоб, после которого контент скрывается до решения модератора.
const ReportThreshold = 3

// ValidRole проверяет, что роль входит в список допустимых.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// ValidAddressReviewKind проверяет тип отзыва, привязанного к адресу.
func ValidAddressReviewKind(kind string) bool {
	switch kind {
	case ReviewKindProperty, ReviewKindResidentialComplex, ReviewKindLandlord:
		return true
	}
	return false
}

// ValidModerationAction проверяет действие модератора над отзывом на премодерации.
func ValidModerationAction(action string) bool {
	return action == ModerationApprove || action == ModerationReject
}

// ValidReportAction проверяет действие по зарепорченному контенту.
func ValidReportAction(action string) bool {
	switch action {
	case ReportActionDismiss, ReportActionApprove, ReportActionDelete:
		return true
	}
	return false
}
