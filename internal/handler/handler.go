package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/josephkmh/photoblog-api/internal/model"
	"github.com/josephkmh/photoblog-api/internal/service"
	"github.com/josephkmh/photoblog-api/internal/shared"
)

type Handler struct {
	photos *service.PhotoService
	update *service.UpdateService
	upload *service.UploadService
}

func NewHandler(photos *service.PhotoService, update *service.UpdateService, upload *service.UploadService) *Handler {
	return &Handler{
		photos: photos,
		update: update,
		upload: upload,
	}
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) GetPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo id"})
		return
	}
	photo, err := h.photos.GetPhoto(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": "No photo found"})
		return
	}
	c.JSON(http.StatusOK, photo)
}

func (h *Handler) UpdatePhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo id"})
		return
	}
	var input model.AssembledPhoto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	outcome, err := h.update.UpdatePhoto(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": "Photo was not updated"})
		return
	}
	resp := model.PhotoResponse{
		Status:  http.StatusOK,
		Message: "Photo " + strconv.FormatInt(id, 10) + " was updated.",
		Photo:   outcome.Photo,
		Partial: outcome.Partial,
	}
	for _, stepErr := range outcome.StepErrs {
		resp.Warnings = append(resp.Warnings, stepErr.Error())
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image was attached"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image"})
		return
	}

	date, _ := time.Parse("2006-01-02", c.PostForm("date"))
	photo, err := h.upload.UploadPhoto(c.Request.Context(), service.NewPhotoInput{
		Data:        data,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Stream:      c.PostForm("stream") == "true",
		Date:        date,
		Album:       c.PostForm("album"),
		Cover:       c.PostForm("cover") == "true",
	})
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": "Photo was not uploaded"})
		return
	}
	c.JSON(http.StatusOK, model.PhotoResponse{
		Status:  http.StatusOK,
		Message: "Photo was successfully uploaded.",
		Photo:   photo,
	})
}

func (h *Handler) GetAlbum(c *gin.Context) {
	album, err := h.photos.GetAlbum(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No album found"})
			return
		}
		c.JSON(statusFromErr(err), gin.H{"error": "Something went wrong, sorry about that!"})
		return
	}
	c.JSON(http.StatusOK, model.AlbumResponse{Status: http.StatusOK, Album: album})
}

func (h *Handler) SetAlbumCover(c *gin.Context) {
	var input model.SetCoverRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.photos.SetAlbumCover(c.Request.Context(), c.Param("name"), input.PhotoID); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": "Cover was not updated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) GetTag(c *gin.Context) {
	photos, err := h.photos.GetTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No images found with that tag"})
			return
		}
		c.JSON(statusFromErr(err), gin.H{"error": "Something went wrong, sorry about that!"})
		return
	}
	c.JSON(http.StatusOK, model.TagResponse{Tag: c.Param("tag"), Photos: photos})
}

func (h *Handler) GetStream(c *gin.Context) {
	photos, err := h.photos.GetStream(c.Request.Context())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No photos found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, sorry about that!"})
		return
	}
	c.JSON(http.StatusOK, photos)
}

// Register навешивает маршруты фотоблога на роутер.
func (h *Handler) Register(r *gin.Engine) {
	photo := r.Group("/photo")
	{
		photo.GET("", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No photo id was specified"})
		})
		photo.GET("/:id", h.GetPhoto)
		photo.POST("", h.UploadPhoto)
		photo.PUT("/:id", h.UpdatePhoto)
	}
	album := r.Group("/album")
	{
		album.GET("", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No album name was specified"})
		})
		album.GET("/:name", h.GetAlbum)
		album.POST("/:name/cover", h.SetAlbumCover)
	}
	tag := r.Group("/tag")
	{
		tag.GET("", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No tag was specified"})
		})
		tag.GET("/:tag", h.GetTag)
	}
	r.GET("/stream", h.GetStream)
}
