package models

type Role string
type ApplicationStatus string
type AgreementStatus string
type MonitoringStatus string
type MatchStatus string

const (
	RoleModel        Role = "Model"
	RolePhotographer Role = "Photographer"
	RoleMakeupArtist Role = "Makeup Artist"
	RoleSetArtist    Role = "Set Artist"
	RoleArtist       Role = "Artist"

	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusAccepted ApplicationStatus = "Accepted"
	ApplicationStatusRejected ApplicationStatus = "Rejected"

	AgreementStatusPending AgreementStatus = "Pending"
	AgreementStatusSigned  AgreementStatus = "Signed"

	// MonitoringStatusIdle is what the API reports for an image that was never scanned.
	MonitoringStatusIdle      MonitoringStatus = "Idle"
	MonitoringStatusScanning  MonitoringStatus = "Scanning"
	MonitoringStatusMonitored MonitoringStatus = "Monitored"

	MatchStatusFound    MatchStatus = "Found"
	MatchStatusReviewed MatchStatus = "Reviewed"
)

// Roles lists every creative role in display order.
var Roles = []Role{RoleModel, RolePhotographer, RoleMakeupArtist, RoleSetArtist, RoleArtist}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (s MatchStatus) Valid() bool {
	return s == MatchStatusFound || s == MatchStatusReviewed
}
