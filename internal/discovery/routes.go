package discovery

import (
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/gamelink-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/discovery").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Search
	api.HandleFunc("/search", handler.Search).Methods("POST")
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")

	// Active criteria
	api.HandleFunc("/criteria", handler.GetCriteria).Methods("GET")
	api.HandleFunc("/criteria", handler.UpdateCriteria).Methods("PUT")
	api.HandleFunc("/criteria", handler.ResetCriteria).Methods("DELETE")

	// Presets
	api.HandleFunc("/presets", handler.SavePreset).Methods("POST")
	api.HandleFunc("/presets", handler.ListPresets).Methods("GET")
	api.HandleFunc("/presets/defaults", handler.SeedDefaultPresets).Methods("POST")
	api.HandleFunc("/presets/{id}/use", handler.UsePreset).Methods("POST")
	api.HandleFunc("/presets/{id}", handler.DeletePreset).Methods("DELETE")

	// History
	api.HandleFunc("/history", handler.GetHistory).Methods("GET")
	api.HandleFunc("/history", handler.ClearHistory).Methods("DELETE")
	api.HandleFunc("/history/popular", handler.GetPopularFilters).Methods("GET")
}
