package handlers

import (
	"encoding/json"
	"net/http"

	"photoshare-api/internal/models"
	"photoshare-api/internal/responses"
	"photoshare-api/internal/services"
	"photoshare-api/internal/utils"

	"github.com/gorilla/mux"
)

func AddComment(comments *services.CommentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := callerClaims(r)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		var req models.CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		list, err := comments.Add(r.Context(), mux.Vars(r)["id"], claims.UserID, req.Text)
		if err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"comments": list,
		})
	}
}

func DeleteComment(comments *services.CommentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := callerClaims(r)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		vars := mux.Vars(r)
		if err := comments.Remove(r.Context(), vars["photoId"], vars["commentId"], claims.UserID); err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"message": "Comment deleted successfully",
		})
	}
}
