package session

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// UserRole is the user's role on the platform
type UserRole = string

const (
	// RoleCandidate is a job seeker
	RoleCandidate UserRole = "candidate"
	// RoleRecruiter posts and manages job listings
	RoleRecruiter UserRole = "recruiter"
)

// User is the server-confirmed identity attached to an authenticated session.
// Instances come from the login response or the profile fetch, never from
// client-decoded token claims.
type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	UserType UserRole `json:"user_type"`
	IsActive bool     `json:"is_active"`
}

// Profile is the candidate/recruiter profile returned by /profile/me with the
// user embedded.
type Profile struct {
	ID                    int64   `json:"id"`
	UserID                int64   `json:"user_id"`
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	Bio                   *string `json:"bio"`
	Location              string  `json:"location"`
	HasDisability         bool    `json:"has_disability"`
	DisabilityType        *string `json:"disability_type,omitempty"`
	DisabilityDescription *string `json:"disability_description,omitempty"`
	AccessibilityNeeds    *string `json:"accessibility_needs,omitempty"`
	ExperienceSummary     string  `json:"experience_summary"`
	CreatedAt             string  `json:"created_at"`
	User                  User    `json:"user"`
}

// ProfileUpdate carries the mutable subset of Profile for PUT /profile/me.
type ProfileUpdate struct {
	FirstName             *string `json:"first_name,omitempty"`
	LastName              *string `json:"last_name,omitempty"`
	Bio                   *string `json:"bio,omitempty"`
	Location              *string `json:"location,omitempty"`
	HasDisability         *bool   `json:"has_disability,omitempty"`
	DisabilityType        *string `json:"disability_type,omitempty"`
	DisabilityDescription *string `json:"disability_description,omitempty"`
	AccessibilityNeeds    *string `json:"accessibility_needs,omitempty"`
	ExperienceSummary     *string `json:"experience_summary,omitempty"`
}

// CVAnalysis is the AI-generated resume feedback for the logged-in candidate.
type CVAnalysis struct {
	Strengths          []string        `json:"strengths"`
	Improvements       []string        `json:"improvements"`
	SuggestedSkills    []string        `json:"suggested_skills"`
	AccessibilityNotes []string        `json:"accessibility_notes"`
	KeywordAnalysis    KeywordAnalysis `json:"keyword_analysis"`
	OverallFeedback    string          `json:"overall_feedback"`
}

type KeywordAnalysis struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// UploadCVResponse is returned after submitting a resume for analysis.
type UploadCVResponse struct {
	Message       string     `json:"message"`
	Analysis      CVAnalysis `json:"analysis"`
	ExtractedText string     `json:"extracted_text"`
}

// AuthResponse is the shape shared by login and registration.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// LoginRequest carries credentials for the form-encoded token exchange.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// RegisterRequest carries the JSON payload for account creation.
type RegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	UserType UserRole `json:"user_type"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.UserType, validation.Required, validation.In(RoleCandidate, RoleRecruiter)),
	)
}
