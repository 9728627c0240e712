package handler

import (
	"net/http"

	"github.com/blues/dfs/internal/logic"
	"github.com/blues/dfs/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authLogic *logic.AuthLogic
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authLogic *logic.AuthLogic) *AuthHandler {
	return &AuthHandler{authLogic: authLogic}
}

// Register 注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authLogic.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册成功", gin.H{"user": user})
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.authLogic.Login(req.Email, req.Password)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "登录成功", gin.H{
		"token": token,
		"user":  user,
	})
}

// Me 当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authLogic.GetUser(middleware.UserId(c))
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取用户信息成功", gin.H{"user": user})
}
