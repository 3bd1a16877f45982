package controllers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/RAMIR007/konfort-total2/models"
	"github.com/RAMIR007/konfort-total2/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	bcryptCost = 12

	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user already exists"
	msgInvalidCredentials    = "invalid email or password"
	msgInternalServerError   = "internal server error"
	msgFailedToGenerateToken = "failed to generate token"
	msgUserNotFound          = "user with this email does not exist"
	msgResetLinkSent         = "Check your email for a password reset link."
	msgInvalidResetLink      = "Invalid or expired password reset link"
	msgPasswordReset         = "Password has been reset successfully."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    string(user.Role),
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByEmail(db *gorm.DB, email string) (models.User, error) {
	var user models.User
	result := db.Where("email = ?", email).First(&user)
	return user, result.Error
}

// Signup handles purchaser registration
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var signUpData models.SignupData
		if err := ctx.ShouldBindJSON(&signUpData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		if _, err := findUserByEmail(db, signUpData.Email); err == nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Database error during user check:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		hashedPassword, err := hashPassword(signUpData.Password)
		if err != nil {
			log.Println("Password hashing error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		user := models.User{
			Name:     signUpData.Name,
			Email:    signUpData.Email,
			Password: hashedPassword,
			Phone:    signUpData.Phone,
			Address:  signUpData.Address,
			Role:     models.RoleCustomer,
		}
		if result := db.Create(&user); result.Error != nil {
			log.Println("User creation error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{"user": user.Summary()})
	}
}

// Login authenticates a purchaser and issues a JWT
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var loginData models.LoginData
		if err := ctx.ShouldBindJSON(&loginData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		user, err := findUserByEmail(db, loginData.Email)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
			return
		}

		if err := comparePasswords(user.Password, loginData.Password); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
			return
		}

		tokenString, err := generateJWT(user)
		if err != nil {
			log.Println("JWT generation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
	}
}

// SendPasswordResetLink emails a reset token to the user
func SendPasswordResetLink(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		user, err := findUserByEmail(db, body.Email)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserNotFound)
			return
		}

		resetToken, err := utils.GenerateCode(16)
		if err != nil {
			log.Println("Token generation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		user.PasswordResetToken = resetToken
		user.ResetTokenExpires = time.Now().Add(time.Hour)
		if result := db.Save(&user); result.Error != nil {
			log.Println("Reset token save error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		resetURL := os.Getenv("FRONTEND_URL") + "/auth/reset-password?token=" + url.QueryEscape(resetToken)
		if err := utils.SendPasswordResetEmail(user.Email, user.Name, resetURL); err != nil {
			log.Println("Error sending password reset email:", err)
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
	}
}

// ResetPassword sets a new password given a valid reset token
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body struct {
			Password string `json:"password" binding:"required,min=6"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		resetToken := ctx.Param("resetToken")

		var user models.User
		result := db.Where("password_reset_token = ? AND reset_token_expires > ?", resetToken, time.Now()).First(&user)
		if result.Error != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidResetLink)
			return
		}

		hashedPassword, err := hashPassword(body.Password)
		if err != nil {
			log.Println("Password hashing error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		user.Password = hashedPassword
		user.PasswordResetToken = ""
		if result := db.Save(&user); result.Error != nil {
			log.Println("Password reset error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgPasswordReset})
	}
}
