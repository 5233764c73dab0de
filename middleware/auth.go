package middleware

import (
	"fmt"
	"strings"
	"time"

	"medtrain/apierror"
	"medtrain/config"
	"medtrain/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// PrincipalKey is the locals key under which Authenticate stores the
// resolved *models.User.
const PrincipalKey = "user"

// Guard resolves principals from bearer credentials and enforces role and
// ownership constraints. Authenticate must run before any other check.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// GenerateJWT generates a signed token carrying the user's id, email and
// role with a 24h expiry.
func GenerateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// Authenticate verifies the bearer token from the Authorization header or
// the "jwt" cookie, loads the referenced user and stores it in locals.
// Any failure yields 401.
func (g *Guard) Authenticate(c *fiber.Ctx) error {
	tokenString := ""
	if authHeader := c.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = authHeader[len("Bearer "):]
	} else if cookie := c.Cookies("jwt"); cookie != "" {
		tokenString = cookie
	}
	if tokenString == "" {
		return apierror.Unauthorized("Not authorized: token missing")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return apierror.Unauthorized("Not authorized: invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return apierror.Unauthorized("Not authorized: invalid token")
	}
	// JWT numeric claims decode as float64
	idClaim, ok := claims["id"].(float64)
	if !ok {
		return apierror.Unauthorized("Not authorized: invalid token")
	}
	userID := uint(idClaim)

	var user models.User
	if err := g.db.First(&user, userID).Error; err != nil {
		return apierror.Unauthorized("User not found")
	}

	c.Locals(PrincipalKey, &user)
	return c.Next()
}

// Principal returns the authenticated user stored by Authenticate.
func Principal(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(PrincipalKey).(*models.User)
	return user
}

// RestrictToAdmin rejects non-admin principals with 403.
func (g *Guard) RestrictToAdmin(c *fiber.Ctx) error {
	user := Principal(c)
	if user == nil || user.Role != models.RoleAdmin {
		return apierror.Forbidden("Access denied: admin rights required")
	}
	return c.Next()
}

// RestrictTo allows only principals whose role is in the given set.
func (g *Guard) RestrictTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := Principal(c)
		if user == nil {
			return apierror.Unauthorized("")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return apierror.Forbidden("Access denied: required roles " + strings.Join(roles, ", "))
	}
}
