package handlers

import (
	"encoding/json"
	"net/http"

	"photoshare-api/internal/models"
	"photoshare-api/internal/responses"
	"photoshare-api/internal/services"
	"photoshare-api/internal/utils"
)

func Signup(users *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		if _, err := users.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusCreated, map[string]interface{}{
			"message": "User registered successfully",
		})
	}
}

func Login(users *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		token, user, err := users.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"token":    token,
			"userId":   user.ID,
			"username": user.Username,
		})
	}
}

func Me(users *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := callerClaims(r)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}

		user, err := users.Profile(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"user": user,
		})
	}
}
