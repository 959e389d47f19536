package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/victorrChoi/dalgubul/config"
	"github.com/victorrChoi/dalgubul/models"
	"github.com/victorrChoi/dalgubul/services"
)

type AuthHandler struct {
	cfg      *config.Config
	students *services.StudentService
}

func NewAuthHandler(cfg *config.Config, students *services.StudentService) *AuthHandler {
	return &AuthHandler{cfg: cfg, students: students}
}

func (h *AuthHandler) signJWT(sub int, role, name string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": name,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.cfg.JWTSecret))
}

type AdminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type StudentLoginReq struct {
	StudentNo string `json:"student_no"`
	Password  string `json:"password"`
}

// POST /auth/admin/login — fixed credential pair from config. When
// ADMIN_PW_HASH is set the password is checked against the bcrypt hash,
// otherwise against ADMIN_PW directly.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req AdminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(h.cfg.AdminID)) != 1 || !h.adminPasswordOK(req.Password) {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(0, models.RoleAdmin, "관리자", 7*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]any{"role": models.RoleAdmin, "username": username},
	})
}

func (h *AuthHandler) adminPasswordOK(pw string) bool {
	if h.cfg.AdminPWHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPWHash), []byte(pw)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pw), []byte(h.cfg.AdminPW)) == 1
}

// POST /auth/student/login — (학번, 비밀번호) against the Students table.
func (h *AuthHandler) StudentLogin(c echo.Context) error {
	var req StudentLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	no := strings.TrimSpace(req.StudentNo)
	if no == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	st, err := h.students.Authenticate(no, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	token, err := h.signJWT(st.ID, models.RoleStudent, st.Name, 7*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]any{"id": st.ID, "role": models.RoleStudent, "student_no": st.StudentNo, "name": st.Name},
	})
}
