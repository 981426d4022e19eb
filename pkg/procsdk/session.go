package procsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Session is an authenticated client carrying a bearer token.
type Session struct {
	client      *Client
	accessToken string
}

// AccessToken exposes the raw bearer token, e.g. for storage.
func (s *Session) AccessToken() string { return s.accessToken }

func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	return s.client.do(ctx, method, path, s.accessToken, body, out)
}

// ---- Users ----

func (s *Session) ListUsers(ctx context.Context) (ListUsersResponse, error) {
	var out ListUsersResponse
	err := s.do(ctx, http.MethodGet, "/v1/users", nil, &out)
	return out, err
}

func (s *Session) GetUser(ctx context.Context, userID string) (UserInfo, error) {
	var out UserInfo
	err := s.do(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (s *Session) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) error {
	return s.do(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(userID), req, nil)
}

func (s *Session) ApproveUser(ctx context.Context, userID, role string) error {
	path := fmt.Sprintf("/v1/users/%s/approve", url.PathEscape(userID))
	return s.do(ctx, http.MethodPost, path, ApproveUserRequest{Role: role}, nil)
}

func (s *Session) DeleteUser(ctx context.Context, userID string) error {
	return s.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(userID), nil, nil)
}

func (s *Session) SetUserCategories(ctx context.Context, userID string, categoryIDs []string) error {
	path := fmt.Sprintf("/v1/users/%s/categories", url.PathEscape(userID))
	return s.do(ctx, http.MethodPut, path, SetUserCategoriesRequest{CategoryIDs: categoryIDs}, nil)
}

// ---- Categories ----

func (s *Session) ListCategories(ctx context.Context) (ListCategoriesResponse, error) {
	var out ListCategoriesResponse
	err := s.do(ctx, http.MethodGet, "/v1/categories", nil, &out)
	return out, err
}

func (s *Session) CreateCategory(ctx context.Context, name, description string) (CategoryInfo, error) {
	var out CategoryInfo
	err := s.do(ctx, http.MethodPost, "/v1/categories", UpsertCategoryRequest{
		Name:        name,
		Description: description,
	}, &out)
	return out, err
}

func (s *Session) UpdateCategory(ctx context.Context, id, name, description string) error {
	return s.do(ctx, http.MethodPut, "/v1/categories/"+url.PathEscape(id), UpsertCategoryRequest{
		Name:        name,
		Description: description,
	}, nil)
}

func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/categories/"+url.PathEscape(id), nil, nil)
}

// ---- Projects ----

func (s *Session) CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectInfo, error) {
	var out ProjectInfo
	err := s.do(ctx, http.MethodPost, "/v1/projects", req, &out)
	return out, err
}

func (s *Session) ListProjects(ctx context.Context) (ListProjectsResponse, error) {
	var out ListProjectsResponse
	err := s.do(ctx, http.MethodGet, "/v1/projects", nil, &out)
	return out, err
}

func (s *Session) GetProject(ctx context.Context, projectID string) (ProjectInfo, error) {
	var out ProjectInfo
	err := s.do(ctx, http.MethodGet, "/v1/projects/"+url.PathEscape(projectID), nil, &out)
	return out, err
}

func (s *Session) InviteSupplier(ctx context.Context, projectID, supplierID string) error {
	path := fmt.Sprintf("/v1/projects/%s/invitations", url.PathEscape(projectID))
	return s.do(ctx, http.MethodPost, path, InviteRequest{SupplierID: supplierID}, nil)
}

func (s *Session) ListInvitations(ctx context.Context, projectID string) (ListInvitationsResponse, error) {
	var out ListInvitationsResponse
	path := fmt.Sprintf("/v1/projects/%s/invitations", url.PathEscape(projectID))
	err := s.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (s *Session) CancelProject(ctx context.Context, projectID string) error {
	path := fmt.Sprintf("/v1/projects/%s/cancel", url.PathEscape(projectID))
	return s.do(ctx, http.MethodPost, path, nil, nil)
}

// ---- Bids ----

func (s *Session) SubmitBid(ctx context.Context, projectID string, req SubmitBidRequest) (BidInfo, error) {
	var out BidInfo
	path := fmt.Sprintf("/v1/projects/%s/bids", url.PathEscape(projectID))
	err := s.do(ctx, http.MethodPost, path, req, &out)
	return out, err
}

func (s *Session) ListBids(ctx context.Context, projectID string) (ListBidsResponse, error) {
	var out ListBidsResponse
	path := fmt.Sprintf("/v1/projects/%s/bids", url.PathEscape(projectID))
	err := s.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ---- Opening ----

// OpenProject performs (or repeats) the bid opening and returns the
// opening record.
func (s *Session) OpenProject(ctx context.Context, projectID string) (OpeningRecordResponse, error) {
	var out OpeningRecordResponse
	path := fmt.Sprintf("/v1/projects/%s/open", url.PathEscape(projectID))
	err := s.do(ctx, http.MethodPost, path, nil, &out)
	return out, err
}

// GetOpeningRecord re-downloads the opening record of an Opened project.
func (s *Session) GetOpeningRecord(ctx context.Context, projectID string) (OpeningRecordResponse, error) {
	var out OpeningRecordResponse
	path := fmt.Sprintf("/v1/projects/%s/record", url.PathEscape(projectID))
	err := s.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}
