package handlers

import (
	"net/http"

	"studiosite/internal/recommend"
)

type RecommendationRequest struct {
	Answers []string `json:"answers" validate:"required,min=1,max=20,dive,max=100"`
}

type RecommendationResponse struct {
	PackageID string            `json:"packageId"`
	Package   recommend.Package `json:"package"`
}

func (h *Handlers) GetQuestions(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"questions": recommend.Questions()})
}

func (h *Handlers) GetPackages(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"packages": recommend.Packages()})
}

func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, pkg := recommend.Recommend(req.Answers)
	writeSuccess(w, http.StatusOK, "", RecommendationResponse{PackageID: id, Package: pkg})
}
