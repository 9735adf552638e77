package signature

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osteele/liquid"
)

const (
	DefaultPlaceholderTimeout = 5 * time.Second
	DefaultMaxDocumentSize    = 100 * 1024
)

// PlaceholderData holds the values substituted into a saved signature when
// it is assigned to a user: {{name}}, {{role}}, {{email}} and {{phone}}.
type PlaceholderData struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// bindings escapes every value for both text and quoted attribute positions,
// since a placeholder may sit in an alt, a src or an href.
func (d PlaceholderData) bindings() map[string]interface{} {
	return map[string]interface{}{
		"name":  escapeAttributeValue(d.Name, ""),
		"role":  escapeAttributeValue(d.Role, ""),
		"email": escapeAttributeValue(d.Email, ""),
		"phone": escapeAttributeValue(d.Phone, ""),
	}
}

// PlaceholderEngine renders placeholder tokens with the Liquid engine under
// a size limit and a timeout.
type PlaceholderEngine struct {
	timeout time.Duration
	maxSize int
	engine  *liquid.Engine
}

func NewPlaceholderEngine() *PlaceholderEngine {
	return NewPlaceholderEngineWithOptions(DefaultPlaceholderTimeout, DefaultMaxDocumentSize)
}

func NewPlaceholderEngineWithOptions(timeout time.Duration, maxSize int) *PlaceholderEngine {
	return &PlaceholderEngine{
		timeout: timeout,
		maxSize: maxSize,
		engine:  liquid.NewEngine(),
	}
}

// Apply substitutes the placeholders of a rendered signature. Documents
// without Liquid markup are returned unchanged.
func (e *PlaceholderEngine) Apply(ctx context.Context, htmlContent string, data PlaceholderData) (string, error) {
	if !strings.Contains(htmlContent, "{{") && !strings.Contains(htmlContent, "{%") {
		return htmlContent, nil
	}
	if len(htmlContent) > e.maxSize {
		return "", fmt.Errorf("document size (%d bytes) exceeds maximum allowed size (%d bytes)", len(htmlContent), e.maxSize)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errorChan <- fmt.Errorf("panic during placeholder rendering: %v", r)
			}
		}()

		rendered, err := e.engine.ParseAndRenderString(htmlContent, data.bindings())
		if err != nil {
			errorChan <- fmt.Errorf("placeholder rendering failed: %w", err)
			return
		}
		resultChan <- rendered
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("placeholder rendering aborted: %w", ctx.Err())
	}
}

// ApplyPlaceholders uses a default engine.
func ApplyPlaceholders(ctx context.Context, htmlContent string, data PlaceholderData) (string, error) {
	return NewPlaceholderEngine().Apply(ctx, htmlContent, data)
}
