package controller

import (
	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// List godoc
// @Summary List users
// @Description Lists all users, optionally filtered by role
// @Tags users
// @Produce  json
// @Security BearerAuth
// @Param   role query string false "admin | evaluator | evaluatee"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	var users []model.User
	var err error
	if role := ctx.Query("role"); role != "" {
		users, err = c.UserService.ListByRole(model.UserRole(role))
	} else {
		users, err = c.UserService.List()
	}
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, users, len(users))
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "user id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	user, err := c.UserService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// Update godoc
// @Summary Update a user
// @Description Partially updates name, email, password, role or active flag
// @Tags users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "user id"
// @Param   body body service.UserUpdate true "fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var update service.UserUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, err := c.UserService.Update(id, update)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "user id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.UserService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
