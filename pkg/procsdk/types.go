package procsdk

import "time"

// ErrorResponse is the standard error envelope returned by every
// endpoint on failure.
type ErrorResponse struct {
	// Error is a short machine-readable code (e.g. "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// TokenResponse is returned from POST /v1/auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "Bearer"
	ExpiresIn   int    `json:"expires_in"` // lifetime in seconds
	Scope       string `json:"scope"`      // space-delimited granted scopes
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /v1/auth/register. Suppliers may
// declare their business categories at signup.
type RegisterRequest struct {
	Username    string   `json:"username"` // email address
	Name        string   `json:"name"`     // display name
	Password    string   `json:"password"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}

// BootstrapRequest creates the first Admin on an empty system. Token is
// the pre-shared bootstrap token.
type BootstrapRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type BootstrapResponse struct {
	AdminID string `json:"admin_id"`
}

// UserInfo is the public representation of an account.
type UserInfo struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Verified    bool      `json:"verified"`
	CategoryIDs []string  `json:"category_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
}

// UpdateUserRequest carries the mutable profile fields. Only non-nil
// fields are applied.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ApproveUserRequest assigns a real role to a Pending account.
type ApproveUserRequest struct {
	Role string `json:"role"`
}

// SetUserCategoriesRequest replaces a supplier's category associations.
type SetUserCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

// CategoryInfo is one business category.
type CategoryInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListCategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

type UpsertCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateProjectRequest is the body for POST /v1/projects.
type CreateProjectRequest struct {
	Title                  string    `json:"title"`
	Description            string    `json:"description"`
	ClosingTime            time.Time `json:"closing_time"`
	Currency               string    `json:"currency"` // defaults to TWD
	Attachments            []string  `json:"attachments,omitempty"`
	RequiresAuditorOpening bool      `json:"requires_auditor_opening"`
}

// ProjectInfo is the public representation of a project.
type ProjectInfo struct {
	ID                     string     `json:"id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Status                 string     `json:"status"`
	CreatedBy              string     `json:"created_by"`
	CreatedAt              time.Time  `json:"created_at"`
	ClosingTime            time.Time  `json:"closing_time"`
	Currency               string     `json:"currency"`
	Attachments            []string   `json:"attachments,omitempty"`
	RequiresAuditorOpening bool       `json:"requires_auditor_opening"`
	OpenedBy               *string    `json:"opened_by,omitempty"`
	OpenedAt               *time.Time `json:"opened_at,omitempty"`
}

type ListProjectsResponse struct {
	Projects []ProjectInfo `json:"projects"`
}

// InviteRequest adds a supplier to a project's invitation set.
type InviteRequest struct {
	SupplierID string `json:"supplier_id"`
}

type InvitationInfo struct {
	SupplierID string    `json:"supplier_id"`
	InvitedAt  time.Time `json:"invited_at"`
}

type ListInvitationsResponse struct {
	Invitations []InvitationInfo `json:"invitations"`
}

// SubmitBidRequest is the body for POST /v1/projects/{id}/bids. Amount
// is a decimal string with at most two fractional digits, e.g. "500.00".
type SubmitBidRequest struct {
	Amount      string   `json:"amount"`
	Attachments []string `json:"attachments,omitempty"`
}

// BidInfo is one ledger entry.
type BidInfo struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	SupplierID  string    `json:"supplier_id"`
	Amount      string    `json:"amount"`
	SubmittedAt time.Time `json:"submitted_at"`
	Attachments []string  `json:"attachments,omitempty"`
}

type ListBidsResponse struct {
	Bids []BidInfo `json:"bids"`
}

// OpeningEntryInfo is one supplier line in an opening record. Suppliers
// who never bid carry HasBid=false and null amount/bid_time.
type OpeningEntryInfo struct {
	SupplierID  string     `json:"supplier_id"`
	DisplayName string     `json:"display_name"`
	HasBid      bool       `json:"has_bid"`
	BidTime     *time.Time `json:"bid_time,omitempty"`
	Amount      *string    `json:"amount,omitempty"`
	Attachments []string   `json:"attachments,omitempty"`
}

// OpeningRecordResponse is the audit snapshot returned by the open and
// record endpoints. Identical data yields an identical record; there is
// no generation timestamp.
type OpeningRecordResponse struct {
	ProjectID   string             `json:"project_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Currency    string             `json:"currency"`
	ClosingTime time.Time          `json:"closing_time"`
	OpenerName  string             `json:"opener_name"`
	OpenedAt    *time.Time         `json:"opened_at,omitempty"`
	Entries     []OpeningEntryInfo `json:"entries"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Uptime  string        `json:"uptime"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks carries per-dependency readiness states.
type HealthChecks struct {
	Database string `json:"database"`
}
