package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-manager/internal/auth"
	"finance-manager/internal/services"
)

type CategoryController struct {
	Categories *services.CategoryService
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color" binding:"required,hexcolor"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

func (cc CategoryController) List(c *gin.Context) {
	categories, err := cc.Categories.ListByOwner(auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (cc CategoryController) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	category, err := cc.Categories.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	if category.OwnerID != auth.UserID(c) {
		fail(c, services.ErrAccessDenied)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (cc CategoryController) Create(c *gin.Context) {
	var body createCategoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	category, err := cc.Categories.Create(services.CreateCategoryInput{
		Name:        body.Name,
		Color:       body.Color,
		Description: body.Description,
	}, auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (cc CategoryController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body updateCategoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	err := cc.Categories.Update(id, services.UpdateCategoryInput{
		Name:        body.Name,
		Color:       body.Color,
		Description: body.Description,
	}, auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (cc CategoryController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := cc.Categories.Delete(id, auth.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
