package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"github.com/krushna001m/RentEasy-sub000/internal/app/dto"
	"github.com/krushna001m/RentEasy-sub000/internal/app/services/auth"
	domainuser "github.com/krushna001m/RentEasy-sub000/internal/domain/user"
)

type AuthHandler struct {
	Service *auth.Service
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Register(c.Request.Context(), auth.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(registerStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthResponse(result.User, result.Token))
}

func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Login(c.Request.Context(), auth.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse(result.User, result.Token))
}

func (h AuthHandler) Logout(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := h.Service.Logout(c.Request.Context(), p.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AuthHandler) Me(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.UserProfile{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}

func registerStatus(err error) int {
	switch {
	case errors.Is(err, domainuser.ErrEmailAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, domainuser.ErrEmailRequired),
		errors.Is(err, domainuser.ErrNameRequired),
		errors.Is(err, auth.ErrPasswordTooShort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var _ AuthHTTP = AuthHandler{}
