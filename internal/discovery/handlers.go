package discovery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/gamelink-backend/internal/common/utils"
)

const defaultSearchLimit = 20

type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var dto SearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var criteria *FilterCriteria
	if dto.Criteria != nil {
		criteria = dto.Criteria.ToCriteria()
		if err := criteria.Validate(); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	limit := dto.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	result, err := h.service.DiscoverMatches(r.Context(), userID, criteria, limit)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to run search")
		return
	}

	summary := ""
	if criteria != nil {
		summary = criteria.Summary()
	}
	utils.RespondWithJSON(w, http.StatusOK, SearchResponseDTO{
		Matches:   result.Candidates,
		Survivors: result.Survivors,
		Summary:   summary,
	})
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	candidateID := mux.Vars(r)["userId"]

	score, factors, err := h.service.Compatibility(r.Context(), userID, candidateID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute compatibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, CompatibilityResponseDTO{
		CandidateID: candidateID,
		Score:       score,
		Factors:     factors,
	})
}

func (h *Handler) GetCriteria(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	criteria, err := h.service.GetCriteria(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load filters")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, criteria)
}

func (h *Handler) UpdateCriteria(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var dto CriteriaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	criteria := dto.ToCriteria()
	if err := h.service.UpdateCriteria(r.Context(), userID, criteria); err != nil {
		if errors.Is(err, ErrInvalidAgeRange) || errors.Is(err, ErrInvalidHeightRange) || errors.Is(err, ErrInvalidMaxDistance) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save filters")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, criteria)
}

func (h *Handler) ResetCriteria(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	criteria, err := h.service.ResetCriteria(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset filters")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, criteria)
}

func (h *Handler) SavePreset(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var dto SavePresetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	preset, err := h.service.SavePreset(r.Context(), userID, dto.Name, dto.Criteria.ToCriteria())
	if err != nil {
		if errors.Is(err, ErrPresetLimit) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save preset")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, preset)
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	order := PresetOrder(r.URL.Query().Get("order"))
	if order != PresetOrderMostUsed {
		order = PresetOrderMostRecent
	}

	presets, err := h.service.ListPresets(r.Context(), userID, order)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list presets")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, presets)
}

func (h *Handler) UsePreset(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	presetID := mux.Vars(r)["id"]

	criteria, err := h.service.UsePreset(r.Context(), userID, presetID)
	if err != nil {
		if errors.Is(err, ErrPresetNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to apply preset")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, criteria)
}

func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	presetID := mux.Vars(r)["id"]

	if err := h.service.DeletePreset(r.Context(), userID, presetID); err != nil {
		if errors.Is(err, ErrPresetNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete preset")
		return
	}
	utils.MessageResponse(w, "Preset deleted", http.StatusOK)
}

func (h *Handler) SeedDefaultPresets(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	if err := h.service.SeedDefaultPresets(r.Context(), userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to seed presets")
		return
	}

	presets, err := h.service.ListPresets(r.Context(), userID, PresetOrderMostRecent)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list presets")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, presets)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.service.RecentSearches(r.Context(), userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	if err := h.service.ClearHistory(r.Context(), userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}
	utils.MessageResponse(w, "History cleared", http.StatusOK)
}

func (h *Handler) GetPopularFilters(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	popular, err := h.service.PopularFilters(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load popular filters")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, popular)
}
