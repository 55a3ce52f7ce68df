package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-manager/internal/auth"
	"finance-manager/internal/services"
)

type UserController struct {
	Users *services.UserService
}

type registerRequest struct {
	Login           string `json:"login" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	DefaultCurrency string `json:"defaultCurrency"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Login           *string `json:"login"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	DefaultCurrency *string `json:"defaultCurrency"`
}

func (uc UserController) Register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	err := uc.Users.Register(services.RegisterInput{
		Login:           body.Login,
		Email:           body.Email,
		Password:        body.Password,
		DefaultCurrency: body.DefaultCurrency,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (uc UserController) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	token, user, err := uc.Users.Authenticate(body.Login, body.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid login or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":              user.ID,
			"login":           user.Login,
			"email":           user.Email,
			"defaultCurrency": user.DefaultCurrency,
		},
	})
}

func (uc UserController) Me(c *gin.Context) {
	user, err := uc.Users.GetByID(auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc UserController) UpdateMe(c *gin.Context) {
	var body updateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	err := uc.Users.Update(auth.UserID(c), services.UpdateUserInput{
		Login:           body.Login,
		Email:           body.Email,
		Password:        body.Password,
		DefaultCurrency: body.DefaultCurrency,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (uc UserController) DeleteMe(c *gin.Context) {
	if err := uc.Users.Delete(auth.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
