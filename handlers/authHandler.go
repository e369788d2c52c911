package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/margh00b/woodtrack_backend/middlewares"
	"github.com/margh00b/woodtrack_backend/models"
	"github.com/margh00b/woodtrack_backend/utils"
)

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func LoginHandler(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	info, err := models.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func LogoutHandler(c *gin.Context) {
	ok, err := models.Logout(c.Request.Context())
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func CreateUserHandler(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "authHandler.go", "CreateUserHandler", "CreateUser", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func GetUsersHandler(c *gin.Context) {
	users, err := models.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, "authHandler.go", "GetUsersHandler", "GetAllUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func GetUserHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	user, err := models.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, "authHandler.go", "GetUserHandler", "GetUser", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetMeHandler reports the caller's identity: jwt claims when a bearer token
// was presented, otherwise the redis session username.
func GetMeHandler(c *gin.Context) {
	if claims := middlewares.CtxValue(c.Request.Context()); claims != nil {
		c.JSON(http.StatusOK, gin.H{"id": claims.ID, "role": claims.Role})
		return
	}
	if username, ok := utils.GetUsernameFromContext(c.Request.Context()); ok && username != "" {
		c.JSON(http.StatusOK, gin.H{"username": username})
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/login", LoginHandler)
	r.POST("/logout", LogoutHandler)
	r.GET("/me", GetMeHandler)
	r.POST("/users", CreateUserHandler)
	r.GET("/users", GetUsersHandler)
	r.GET("/users/:id", GetUserHandler)
}
