package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/attachment"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

// uuidParam читает UUID из параметра пути. Формат уже проверен middleware, но хендлер
// не должен от этого зависеть.
func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("некорректный формат %s", name))
	}
	return id, nil
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// readAttachments читает загруженные файлы целиком. Чтение каждого файла ограничено
// MaxImageSize+1 байт, чего достаточно, чтобы валидатор увидел превышение.
func readAttachments(files []*multipart.FileHeader) ([]attachment.Attachment, error) {
	if len(files) == 0 {
		return nil, nil
	}

	out := make([]attachment.Attachment, 0, len(files))
	for _, fh := range files {
		data, err := readLimited(fh, attachment.MaxImageSize+1)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, fmt.Sprintf("не удалось прочитать файл %q", fh.Filename))
		}
		out = append(out, attachment.Attachment{
			FileName: fh.Filename,
			Size:     fh.Size,
			Data:     data,
		})
	}
	return out, nil
}

func readLimited(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, limit))
}
