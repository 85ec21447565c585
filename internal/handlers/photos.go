package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"photoshare-api/internal/models"
	"photoshare-api/internal/responses"
	"photoshare-api/internal/services"
	"photoshare-api/internal/utils"

	"github.com/gorilla/mux"
)

// MediaRelay is the upload capability the photo handlers need from the
// object-storage integration.
type MediaRelay interface {
	Store(ctx context.Context, body io.Reader, filename, contentType string) (string, error)
}

func UploadPhoto(photos *services.PhotoService, relay MediaRelay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := callerClaims(r)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		file, header, err := r.FormFile("photo")
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Photo file is required")
			return
		}
		defer file.Close()

		description := r.FormValue("description")

		// The photo record is only written once the relay has a URL for it.
		url, err := relay.Store(r.Context(), file, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to upload photo")
			return
		}

		photo, err := photos.Create(r.Context(), claims.UserID, url, description)
		if err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"photo": photo,
		})
	}
}

func ListPhotos(photos *services.PhotoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := photos.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		responses.SendJSON(w, http.StatusOK, list)
	}
}

func GetPhoto(photos *services.PhotoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		photo, err := photos.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"photo": photo,
		})
	}
}

func UpdateDescription(photos *services.PhotoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := callerClaims(r)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		var req models.DescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		photo, err := photos.UpdateDescription(r.Context(), mux.Vars(r)["id"], claims.UserID, req.Description)
		if err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"photo": photo,
		})
	}
}

func ToggleLike(photos *services.PhotoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := callerClaims(r)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		likes, err := photos.ToggleLike(r.Context(), mux.Vars(r)["id"], claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"likes": likes,
		})
	}
}

func DeletePhoto(photos *services.PhotoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := callerClaims(r)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		if err := photos.Delete(r.Context(), mux.Vars(r)["id"], claims.UserID); err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"message": "Photo deleted successfully",
		})
	}
}
