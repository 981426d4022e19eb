package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/procsdk"
	"github.com/upvn/procure/pkg/slogx"
)

type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

// HandleList handles the list categories endpoint.
//
//	@Summary	List business categories
//	@Tags		Categories
//	@Produce	json
//	@Success	200	{object}	procsdk.ListCategoriesResponse
//	@Security	BearerAuth
//	@Router		/v1/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	categories, err := h.CategoryService.ListCategories(ctx)
	if err != nil {
		log.Error("failed to list categories", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Failed to retrieve categories",
		})
		return
	}

	resp := procsdk.ListCategoriesResponse{Categories: make([]procsdk.CategoryInfo, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = toCategoryInfo(c)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles category creation.
//
//	@Summary	Create a business category
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		request	body		procsdk.UpsertCategoryRequest	true	"Category"
//	@Success	201		{object}	procsdk.CategoryInfo
//	@Failure	409		{object}	procsdk.ErrorResponse	"Name already in use"
//	@Security	BearerAuth
//	@Router		/v1/categories [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req procsdk.UpsertCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	c, err := h.CategoryService.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		writeCategoryError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCategoryInfo(c))
}

// HandleUpdate handles category updates.
//
//	@Summary	Update a business category
//	@Tags		Categories
//	@Accept		json
//	@Param		id		path	string							true	"Category ID"
//	@Param		request	body	procsdk.UpsertCategoryRequest	true	"Category"
//	@Success	204		"Updated"
//	@Failure	404		{object}	procsdk.ErrorResponse	"Unknown category"
//	@Security	BearerAuth
//	@Router		/v1/categories/{id} [put].
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req procsdk.UpsertCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Malformed JSON body",
		})
		return
	}

	if err := h.CategoryService.UpdateCategory(ctx, r.PathValue("id"), req.Name, req.Description); err != nil {
		writeCategoryError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles category deletion.
//
//	@Summary	Delete a business category
//	@Tags		Categories
//	@Param		id	path	string	true	"Category ID"
//	@Success	204	"Deleted"
//	@Failure	404	{object}	procsdk.ErrorResponse	"Unknown category"
//	@Security	BearerAuth
//	@Router		/v1/categories/{id} [delete].
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CategoryService.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeCategoryError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCategoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, procsdk.ErrorResponse{
			Error:            "category_not_found",
			ErrorDescription: "Unknown category",
		})
	case errors.Is(err, service.ErrCategoryNameTaken):
		httpx.WriteJSON(w, http.StatusConflict, procsdk.ErrorResponse{
			Error:            "name_taken",
			ErrorDescription: "Category name already in use",
		})
	case errors.Is(err, service.ErrCategoryInvalid):
		httpx.WriteJSON(w, http.StatusBadRequest, procsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Category name is required",
		})
	default:
		slogx.FromContext(r.Context()).Error("category operation failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, procsdk.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Operation failed",
		})
	}
}
