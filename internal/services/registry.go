package services

// ServiceContainer holds every service the handlers use.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	GigService          GigService
	ApplicationService  ApplicationService
	AgreementService    AgreementService
	ReviewService       ReviewService
	MonitoringService   MonitoringService
	NotificationService NotificationService
}
