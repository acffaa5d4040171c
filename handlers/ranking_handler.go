package handlers

import (
	"net/http"

	"github.com/winsonteo/GripRank-next-sub000/services"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rankingService services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// GetOverallRanking godoc
// @Summary Overall ranking merging finals placement with qualifier times
// @Tags ranking
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {array} models.OverallRankingRow
// @Router /categories/{categoryID}/ranking [get]
func (h *RankingHandler) GetOverallRanking(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlParamInt(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ranking, err := h.rankingService.BuildOverallRanking(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
