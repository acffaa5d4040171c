package handlers

import (
	"net/http"

	"github.com/winsonteo/GripRank-next-sub000/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// GetStandings godoc
// @Summary Qualifier standings for a category
// @Tags standings
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {array} models.QualifierStandingRow
// @Router /categories/{categoryID}/standings [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlParamInt(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.BuildQualifierStandings(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SaveQualifierResult godoc
// @Summary Record the two qualifier runs of an athlete
// @Tags standings
// @Accept json
// @Produce json
// @Param athleteID path int true "Athlete ID"
// @Param input body services.QualifierResultInput true "Run results"
// @Success 200 {object} models.QualifierResult
// @Router /athletes/{athleteID}/qualifier [put]
func (h *StandingsHandler) SaveQualifierResult(w http.ResponseWriter, r *http.Request) {
	athleteID, err := urlParamInt(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.QualifierResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.standingsService.SaveQualifierResult(r.Context(), athleteID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"qualifier_result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
