// Package validation проверяет текстовые поля формы предложения до вызова use case'ов.
package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	MaxProposalDescriptionLength = 5000
	MaxReposLinks                = 20
	MaxExternalLinkLength        = 500
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должно быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должно быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateProposalDescription проверяет описание предложения.
func ValidateProposalDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("описание предложения обязательно")
	}
	return ValidateLength("описание предложения", description, 1, MaxProposalDescriptionLength)
}

// ValidateExternalLink проверяет ссылку на репозиторий.
func ValidateExternalLink(link string) error {
	link = strings.TrimSpace(link)
	if err := ValidateLength("ссылка", link, 1, MaxExternalLinkLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("некорректный формат URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("ссылка должна начинаться с http:// или https://")
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("ссылка должна содержать доменное имя")
	}

	return nil
}

// ValidateReposLinks проверяет набор ссылок на репозитории.
func ValidateReposLinks(links []string) error {
	if len(links) > MaxReposLinks {
		return fmt.Errorf("количество ссылок не может превышать %d", MaxReposLinks)
	}
	for _, link := range links {
		if err := ValidateExternalLink(link); err != nil {
			return fmt.Errorf("%q: %w", link, err)
		}
	}
	return nil
}
