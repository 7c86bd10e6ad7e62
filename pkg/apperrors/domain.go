package apperrors

import "net/http"

// --- System ---

var ErrDuplicateRecord = New(CodeConflict, "system", "The record already exists", http.StatusConflict)

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeValidationFailed,
	"auth",
	"User already exists",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// --- Profile ---

var ErrProfileNotFound = New(CodeNotFound, "profile", "Profile not found", http.StatusNotFound)

var ErrInvalidRole = New(CodeValidationFailed, "profile", "Unknown creative role", http.StatusBadRequest)

// --- Gig ---

var ErrGigNotFound = New(CodeNotFound, "gig", "Gig not found", http.StatusNotFound)

// --- Application ---

var ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)

var ErrApplicantProfileNotFound = New(CodeNotFound, "application", "Applicant profile not found", http.StatusNotFound)

var ErrAlreadyApplied = New(CodeConflict, "application", "You have already applied to this gig", http.StatusConflict)

var ErrNotGigPoster = New(CodeForbidden, "application", "Only the gig poster can manage its applications", http.StatusForbidden)

var ErrApplicationNotPending = New(CodeConflict, "application", "Application has already been decided", http.StatusConflict)

var ErrGigAlreadyFilled = New(CodeConflict, "application", "Another application for this gig has already been accepted", http.StatusConflict)

// --- Agreement ---

var ErrAgreementNotFound = New(CodeNotFound, "agreement", "Agreement not found", http.StatusNotFound)

var ErrNotHiredCreative = New(CodeForbidden, "agreement", "Only the hired creative can sign this agreement.", http.StatusForbidden)

var ErrAgreementAlreadySigned = New(CodeConflict, "agreement", "Agreement already signed.", http.StatusConflict)

var ErrAgreementAccessDenied = New(CodeForbidden, "agreement", "You are not a party to this agreement", http.StatusForbidden)

// --- Review ---

var ErrReviewAlreadyExists = New(CodeConflict, "review", "You have already submitted a review for this collaboration.", http.StatusConflict)

var ErrInvalidRating = New(CodeValidationFailed, "review", "Please select a star rating between 1 and 5", http.StatusBadRequest)

var ErrRevieweeNotFound = New(CodeNotFound, "review", "Reviewed profile not found", http.StatusNotFound)

// --- Monitoring ---

var ErrMonitoredImageNotFound = New(CodeNotFound, "monitoring", "Monitored image not found", http.StatusNotFound)

var ErrMatchNotFound = New(CodeNotFound, "monitoring", "Infringement match not found", http.StatusNotFound)

var ErrPortfolioImageNotFound = New(CodeNotFound, "monitoring", "Portfolio image not found", http.StatusNotFound)

var ErrInvalidMatchStatus = New(CodeValidationFailed, "monitoring", "Match status must be Found or Reviewed", http.StatusBadRequest)

var ErrMonitoringAccessDenied = New(CodeForbidden, "monitoring", "This image belongs to another user", http.StatusForbidden)
