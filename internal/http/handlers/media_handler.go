package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/family-budget-backend/internal/http/handlers/common"
	"github.com/ignatzorin/family-budget-backend/internal/service"
	"github.com/ignatzorin/family-budget-backend/internal/storage"
)

// Разрешённые типы файлов для загрузки
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler управляет загрузкой аватаров.
type MediaHandler struct {
	profiles *service.ProfileService
	storage  *storage.PhotoStorage
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(profiles *service.ProfileService, storage *storage.PhotoStorage) *MediaHandler {
	return &MediaHandler{profiles: profiles, storage: storage}
}

// UploadAvatar обрабатывает POST /media/avatar.
func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "поле file обязательно"})
		return
	}

	// Валидация размера файла
	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл не может быть пустым"})
		return
	}

	// Валидация расширения файла
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый формат файла. Разрешены: %s", strings.Join(getAllowedExtensions(), ", ")),
		})
		return
	}

	// Открываем файл для проверки магических байтов
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	// Читаем первые 512 байт для проверки магических байтов
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
		return
	}

	// Проверяем магические байты (реальный тип файла)
	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "не удалось определить тип файла. Разрешены только изображения",
		})
		return
	}

	// Проверяем, что это изображение
	contentType := kind.MIME.Value
	if !allowedMimeTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый тип файла (%s)", contentType),
		})
		return
	}

	// Проверяем, что расширение соответствует реальному типу файла
	expectedExt := "." + kind.Extension
	// .jpg и .jpeg - это одно и то же
	if ext != expectedExt && !(ext == ".jpg" && expectedExt == ".jpeg") && !(ext == ".jpeg" && expectedExt == ".jpg") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("расширение файла (%s) не соответствует реальному типу (%s)", ext, expectedExt),
		})
		return
	}

	// Сбрасываем позицию файла для сохранения
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось сбросить позицию файла"})
			return
		}
	}

	relativePath, _, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	avatarURL := "/uploads/" + filepath.ToSlash(relativePath)

	user, err := h.profiles.SetAvatar(c.Request.Context(), userID, avatarURL)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// getAllowedExtensions возвращает список разрешённых расширений.
func getAllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	return exts
}
