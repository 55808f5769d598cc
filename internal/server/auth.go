package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"chakula/internal/models"
)

const tokenLifetime = 24 * time.Hour

type registerRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	TenantName string `json:"tenant_name" binding:"required"`
}

// AuthRequired validates the bearer token and loads the user into the
// request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		email, _ := claims["sub"].(string)

		var user models.User
		if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}

		c.Set("user", &user)
		c.Next()
	}
}

// Login exchanges form-encoded credentials for a bearer token.
func (s *Server) Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := s.issueToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// Register creates a tenant with its first admin user and logs them in.
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tenant := models.Tenant{Name: req.TenantName}
	if err := s.db.Create(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		TenantID:       tenant.ID,
		Email:          req.Email,
		HashedPassword: string(hashed),
		Role:           models.RoleAdmin,
	}
	if err := s.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := s.issueToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// Me returns the authenticated user's profile.
func (s *Server) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
}

func (s *Server) issueToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func currentUser(c *gin.Context) *models.User {
	u, _ := c.Get("user")
	return u.(*models.User)
}

// currentRestaurant resolves the caller's restaurant, creating one for
// the tenant on first use.
func (s *Server) currentRestaurant(c *gin.Context) (*models.Restaurant, error) {
	user := currentUser(c)

	var restaurant models.Restaurant
	err := s.db.Where("tenant_id = ?", user.TenantID).First(&restaurant).Error
	if err == nil {
		return &restaurant, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, user.TenantID).Error; err != nil {
		return nil, err
	}
	restaurant = models.Restaurant{
		TenantID: user.TenantID,
		Name:     tenant.Name + "'s Restaurant",
	}
	if err := s.db.Create(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}
