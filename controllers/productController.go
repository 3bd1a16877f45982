package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/RAMIR007/konfort-total2/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// GetProducts lists active products, optionally filtered by category, with
// limit/offset pagination and a has-more flag.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 {
			limit = 20
		}
		offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		query := db.Model(&models.Product{}).Where("is_active = ?", true)
		if categoryID := ctx.Query("categoryId"); categoryID != "" {
			query = query.Where("category_id = ?", categoryID)
		}

		var total int64
		if result := query.Count(&total); result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to count products", result.Error)
			return
		}

		var products []models.Product
		result := query.Preload("Category").
			Order("created_at desc").
			Limit(limit).Offset(offset).
			Find(&products)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"products": products,
			"total":    total,
			"hasMore":  int64(offset+limit) < total,
		})
	}
}

// GetProduct returns one active product by id.
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product id", err)
			return
		}

		var product models.Product
		result := db.Preload("Category").Where("is_active = ?", true).First(&product, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product", result.Error)
			}
			return
		}

		ctx.JSON(http.StatusOK, product)
	}
}

func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var categories []models.Category
		if result := db.Order("name asc").Find(&categories); result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var product models.Product
		if err := ctx.ShouldBindJSON(&product); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		if err := db.Create(&product).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
			return
		}

		ctx.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product id", err)
			return
		}

		var product models.Product
		if result := db.First(&product, id); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product", result.Error)
			}
			return
		}

		var updates models.Product
		if err := ctx.ShouldBindJSON(&updates); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		updates.ID = product.ID
		if result := db.Model(&product).Updates(updates); result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", result.Error)
			return
		}

		ctx.JSON(http.StatusOK, product)
	}
}

// DeleteProduct deactivates a product; orders keep referencing it.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product id", err)
			return
		}

		result := db.Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to deactivate product", result.Error)
			return
		}
		if result.RowsAffected == 0 {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"message": "Product deactivated successfully"})
	}
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func uploadToS3(uploader *manager.Uploader, file *multipart.FileHeader, productID int) (string, error) {
	opened, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer opened.Close()

	bucket := os.Getenv("AWS_BUCKET_NAME")
	key := fmt.Sprintf("products/%d/%d-%s", productID, time.Now().UnixNano(), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   opened,
	})
	if err != nil {
		return "", fmt.Errorf("error uploading to S3: %w", err)
	}

	return result.Location, nil
}

// UploadProductImages pushes the uploaded files to S3 and appends their
// URLs to the product's images array.
func UploadProductImages(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product id", err)
			return
		}

		var product models.Product
		if result := db.First(&product, id); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch product", result.Error)
			}
			return
		}

		form, err := ctx.MultipartForm()
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
			return
		}

		files := form.File["images"]
		if len(files) == 0 {
			respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
			return
		}

		uploader, err := getAWSUploader()
		if err != nil {
			log.Println("AWS config error:", err)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to configure uploader", nil)
			return
		}

		var images []string
		if len(product.Images) > 0 {
			if err := json.Unmarshal(product.Images, &images); err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Corrupt product images", err)
				return
			}
		}

		for _, file := range files {
			location, err := uploadToS3(uploader, file, id)
			if err != nil {
				log.Println("Upload error:", err)
				respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
				return
			}
			images = append(images, location)
		}

		encoded, err := json.Marshal(images)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to encode images", err)
			return
		}

		if result := db.Model(&product).Update("images", encoded); result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to save images", result.Error)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"message": "Images uploaded successfully", "images": images})
	}
}
