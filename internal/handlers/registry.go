package handlers

// AppHandlers holds every HTTP handler.
type AppHandlers struct {
	HealthHandler      *HealthHandler
	AuthHandler        *AuthHandler
	ProfileHandler     *ProfileHandler
	GigHandler         *GigHandler
	ApplicationHandler *ApplicationHandler
	AgreementHandler   *AgreementHandler
	ReviewHandler      *ReviewHandler
	MonitoringHandler  *MonitoringHandler
}
