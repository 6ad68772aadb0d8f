// Package attachment проверяет вложения предложений до сохранения.
package attachment

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

// MaxImageSize ограничивает размер одного изображения (1 MiB).
const MaxImageSize int64 = 1 << 20

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Attachment описывает загруженный файл: имя, заявленную длину и содержимое.
type Attachment struct {
	FileName string
	Size     int64
	Data     []byte
}

// Length возвращает большую из заявленной и фактической длин.
func (a Attachment) Length() int64 {
	if n := int64(len(a.Data)); n > a.Size {
		return n
	}
	return a.Size
}

// Validate проверяет расширение, затем размер. Останавливается на первом нарушении.
func Validate(a Attachment) error {
	ext := strings.ToLower(filepath.Ext(a.FileName))
	if !allowedExtensions[ext] {
		return apperror.ValidationFailure(apperror.RuleInvalidExtension,
			fmt.Sprintf("недопустимое расширение файла %q. Разрешены: %s", a.FileName, strings.Join(AllowedExtensions(), ", ")))
	}

	if a.Length() > MaxImageSize {
		return apperror.ValidationFailure(apperror.RuleImageTooLarge,
			fmt.Sprintf("файл %q превышает допустимый размер %d байт", a.FileName, MaxImageSize))
	}

	return nil
}

// ValidateAll проверяет все вложения и возвращает первое нарушение.
func ValidateAll(items []Attachment) error {
	for _, item := range items {
		if err := Validate(item); err != nil {
			return err
		}
	}
	return nil
}

// AllowedExtensions возвращает отсортированный список разрешённых расширений.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
