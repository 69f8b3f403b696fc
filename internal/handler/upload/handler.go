package upload

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"athlete-app/internal/handler/response"
	"athlete-app/internal/storage"
)

// sniffLen — количество байт, достаточное для определения MIME-типа содержимого.
const sniffLen = 512

// Handler обрабатывает загрузку изображений профиля.
type Handler struct {
	images  storage.ImageStore
	maxSize int64
}

// NewHandler создаёт новый UploadHandler.
// maxSize ограничивает размер принимаемого файла в байтах.
func NewHandler(images storage.ImageStore, maxSize int64) *Handler {
	return &Handler{
		images:  images,
		maxSize: maxSize,
	}
}

// UploadResponse — ответ успешной загрузки изображения.
type UploadResponse struct {
	URL string `json:"url"`
}

// Photo принимает multipart-файл photo и сохраняет его в хранилище изображений.
//
//	@Summary		Загрузка фотографии профиля
//	@Tags			profile
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			photo	formData	file	true	"Файл изображения (JPEG, PNG, WebP или GIF)"
//	@Success		201		{object}	response.Envelope{data=UploadResponse}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		413		{object}	response.Envelope
//	@Router			/api/profile/me/photo [post]
func (h *Handler) Photo(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Image file is required", nil)
		return
	}

	if fileHeader.Size > h.maxSize {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeValidationError, "Image file is too large", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Printf("failed to open uploaded file: err=%v", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error", nil)
		return
	}
	defer f.Close()

	// Тип определяем по содержимому, а не по расширению или заголовку клиента
	head := make([]byte, sniffLen)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Image file is empty", nil)
		return
	}
	contentType := http.DetectContentType(head[:n])

	if _, err := f.Seek(0, 0); err != nil {
		log.Printf("failed to rewind uploaded file: err=%v", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error", nil)
		return
	}

	url, err := h.images.Save(c.Request.Context(), contentType, f)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			response.Error(c, http.StatusBadRequest, response.CodeValidationError, "Only JPEG, PNG, WebP and GIF images are supported", nil)
			return
		}
		log.Printf("failed to store uploaded image: err=%v", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, "Internal server error", nil)
		return
	}

	response.OK(c, http.StatusCreated, UploadResponse{URL: url})
}
