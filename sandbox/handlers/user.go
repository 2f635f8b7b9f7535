package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/sandbox/database"
	"github.com/ray-remotestate/padipos/sandbox/utils"
)

type loginResponse struct {
	Token    string      `json:"token"`
	ID       models.ID   `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	Picture  string      `json:"userPicture"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req request
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.DB.GetUserByPassword(req.Username, req.Password)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := utils.GenerateAccessToken(h.Secret, user, h.Now())
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	logrus.WithField("username", user.Username).Info("user logged in")
	utils.RespondJSON(w, http.StatusOK, "Login successful", loginResponse{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Picture:  user.Picture,
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, "Users fetched", h.DB.ListUsers())
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.DB.GetUser(pathID(r))
	if err != nil {
		notFoundOr(w, err, "User")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "User fetched", user)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserForm
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	role, err := models.ParseRole(string(req.Role))
	switch {
	case req.Username == "" || req.Email == "" || req.Password == "":
		utils.RespondError(w, http.StatusBadRequest, "All fields are required")
		return
	case len(req.Password) < 6:
		utils.RespondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	case err != nil:
		utils.RespondError(w, http.StatusBadRequest, "Role must be admin or cashier")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	user, err := h.DB.CreateUser(req.Username, req.Email, hashed, role)
	if errors.Is(err, database.ErrConflict) {
		utils.RespondError(w, http.StatusConflict, "Username already exists")
		return
	} else if err != nil {
		logrus.WithError(err).Error("failed to create user")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, "User created successfully", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserUpdate
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	changes := database.UserChanges{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
	}
	if req.Role != "" {
		role, err := models.ParseRole(string(req.Role))
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Role must be admin or cashier")
			return
		}
		changes.Role = role
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			utils.RespondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		changes.HashedPassword = hashed
	}

	h.applyUserChanges(w, pathID(r), changes, "User updated successfully")
}

func (h *Handler) applyUserChanges(w http.ResponseWriter, id models.ID, changes database.UserChanges, msg string) {
	user, err := h.DB.UpdateUser(id, changes)
	if errors.Is(err, database.ErrConflict) {
		utils.RespondError(w, http.StatusConflict, "Username already exists")
		return
	} else if err != nil {
		notFoundOr(w, err, "User")
		return
	}
	utils.RespondJSON(w, http.StatusOK, msg, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if self, err := currentUser(r); err == nil && self == id {
		utils.RespondError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}
	if err := h.DB.DeleteUser(id); err != nil {
		notFoundOr(w, err, "User")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "User deleted successfully", nil)
}

// EditProfile updates the caller's own account from a multipart form.
func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request) {
	self, err := currentUser(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !parseMultipart(w, r) {
		return
	}

	var changes database.UserChanges
	changes.Username, _ = formValue(r, "username")
	changes.Email, _ = formValue(r, "email")
	if pw, ok := formValue(r, "password"); ok && pw != "" {
		if len(pw) < 6 {
			utils.RespondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}
		hashed, err := utils.HashPassword(pw)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		changes.HashedPassword = hashed
	}
	picture, sent, err := h.saveImage(r, "userPicture")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if sent {
		changes.Picture = &picture
	}

	h.applyUserChanges(w, self, changes, "Profile updated successfully")
}

func (h *Handler) RemoveProfilePicture(w http.ResponseWriter, r *http.Request) {
	self, err := currentUser(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	empty := ""
	if _, err := h.DB.UpdateUser(self, database.UserChanges{Picture: &empty}); err != nil {
		notFoundOr(w, err, "User")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Profile picture removed", nil)
}
