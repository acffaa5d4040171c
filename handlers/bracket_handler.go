package handlers

import (
	"net/http"

	"github.com/winsonteo/GripRank-next-sub000/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

// Regenerate godoc
// @Summary Seed (or reseed) the finals bracket from qualifier standings
// @Description Destroys any existing bracket for the category. Requires confirm=true.
// @Tags bracket
// @Produce json
// @Param categoryID path int true "Category ID"
// @Param confirm query bool true "Must be true to overwrite an existing bracket"
// @Success 201 {object} services.BracketView
// @Router /categories/{categoryID}/bracket [post]
func (h *BracketHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlParamInt(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		mapServiceErrorToHTTP(w, r, services.ErrRegenerationNotConfirmed)
		return
	}

	bracket, err := h.bracketService.Regenerate(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlParamInt(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.GetBracket(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
